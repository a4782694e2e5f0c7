package delegate

import "context"

// Kind identifies a row type. It doubles as the host view type and as the
// default identity key when two lists are compared.
type Kind int

// Delegate is a single row of a list.
type Delegate interface {
	// Kind returns the row type. It must be constant for a given row.
	Kind() Kind
}

// ItemIdentifier is implemented by rows that carry a stable ID for hosts
// that track rows across reorders.
type ItemIdentifier interface {
	// ItemID returns the stable ID and true, or false when the row has none.
	ItemID() (int64, bool)
}

// IdentityComparer overrides kind-based identity.
type IdentityComparer interface {
	// SameIdentity reports whether other (the row from the previous list)
	// occupies the same logical slot as the receiver. It must be deterministic.
	SameIdentity(other Delegate) bool
}

// ContentComparer overrides instance-based content equality.
type ContentComparer interface {
	// SameContent reports whether other (the row from the previous list)
	// renders identically to the receiver. Only called after SameIdentity
	// returned true.
	SameContent(other Delegate) bool
}

// PayloadProvider supplies partial update hints.
type PayloadProvider interface {
	// ChangePayload is called on the previous row with its replacement and
	// returns a payload handed to [PayloadBinder.BindPayloads], or nil.
	ChangePayload(other Delegate) any
}

// View is the host container a row renders into.
type View interface {
	// Context returns the context the host associates with the view. It is
	// passed to every lifecycle hook.
	Context() context.Context
}

// Holder is the recycled slot a row is bound to.
type Holder interface {
	// View returns the host view owned by the slot.
	View() View
	// Position returns the adapter position the slot was last bound at.
	Position() int
}

// Binder renders a row into a holder.
type Binder interface {
	Bind(ctx context.Context, h Holder, position int)
}

// PayloadBinder renders a row with partial update payloads. An empty
// payloads slice requests a full bind.
type PayloadBinder interface {
	BindPayloads(ctx context.Context, h Holder, position int, payloads []any)
}

// Attacher is notified when the bound view becomes visible.
type Attacher interface {
	OnAttached(ctx context.Context, h Holder)
}

// Detacher is notified when the bound view leaves the screen.
type Detacher interface {
	OnDetached(ctx context.Context, h Holder)
}

// Unbinder is notified before the slot is recycled or rebound to another row.
type Unbinder interface {
	OnUnbind(ctx context.Context, h Holder)
}

// ActionAware rows receive the adapter's action listener on every submit.
type ActionAware interface {
	SetActionListener(l ActionListener)
}

// ActionListener receives actions raised by rows.
type ActionListener interface {
	OnAction(action any)
}

// ActionListenerFunc adapts a function to [ActionListener].
type ActionListenerFunc func(action any)

// OnAction calls f(action).
func (f ActionListenerFunc) OnAction(action any) {
	f(action)
}
