package delegate

import (
	"context"
	"reflect"
)

// SameIdentity reports whether next occupies the same logical slot as prev.
// Rows implementing [IdentityComparer] decide for themselves; otherwise rows
// of equal kind match.
func SameIdentity(prev, next Delegate) bool {
	if c, ok := next.(IdentityComparer); ok {
		return c.SameIdentity(prev)
	}
	return prev.Kind() == next.Kind()
}

// SameContent reports whether next renders identically to prev.
// Rows implementing [ContentComparer] decide for themselves; otherwise only
// the same instance counts as unchanged.
func SameContent(prev, next Delegate) bool {
	if c, ok := next.(ContentComparer); ok {
		return c.SameContent(prev)
	}
	return SameInstance(prev, next)
}

// ChangePayload returns the partial update hint prev produces for next, or nil.
func ChangePayload(prev, next Delegate) any {
	if p, ok := prev.(PayloadProvider); ok {
		return p.ChangePayload(next)
	}
	return nil
}

// ItemID returns the stable ID of d, if it has one.
func ItemID(d Delegate) (int64, bool) {
	if i, ok := d.(ItemIdentifier); ok {
		return i.ItemID()
	}
	return 0, false
}

// SameInstance reports whether a and b are the same row instance. Pointer rows
// compare by address. Comparable value rows compare with ==, and rows of
// non-comparable value types are never the same instance.
func SameInstance(a, b Delegate) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// Bind runs the bind hook of d. Rows without a payload variant get a full bind
// regardless of payloads.
func Bind(ctx context.Context, d Delegate, h Holder, position int, payloads []any) {
	switch b := d.(type) {
	case PayloadBinder:
		b.BindPayloads(ctx, h, position, payloads)
	case Binder:
		b.Bind(ctx, h, position)
	}
}

// Attach runs the attach hook of d, if any.
func Attach(ctx context.Context, d Delegate, h Holder) {
	if a, ok := d.(Attacher); ok {
		a.OnAttached(ctx, h)
	}
}

// Detach runs the detach hook of d, if any.
func Detach(ctx context.Context, d Delegate, h Holder) {
	if a, ok := d.(Detacher); ok {
		a.OnDetached(ctx, h)
	}
}

// Unbind runs the unbind hook of d, if any.
func Unbind(ctx context.Context, d Delegate, h Holder) {
	if u, ok := d.(Unbinder); ok {
		u.OnUnbind(ctx, h)
	}
}

// SetListener hands l to d when d is [ActionAware].
func SetListener(d Delegate, l ActionListener) {
	if a, ok := d.(ActionAware); ok {
		a.SetActionListener(l)
	}
}
