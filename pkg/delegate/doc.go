// Package delegate defines the row contract used by the recycling list adapter.
//
// A delegate is one row of a heterogeneous list. It carries its own view type
// (its [Kind]), decides how it compares to the row it replaces, and receives
// lifecycle callbacks while it is bound to a recycled view.
//
// # Minimal Delegate
//
// Only [Delegate.Kind] is required. Everything else is an optional capability
// with a default:
//
//	type headerRow struct {
//	    delegate.Base
//	    Title string
//	}
//
//	func (r *headerRow) Kind() delegate.Kind { return kindHeader }
//
// Rows of the same kind are treated as the same logical slot. Their content is
// considered unchanged only when the new row is the same instance as the old
// one, so a freshly built row always triggers an update unless it implements
// [ContentComparer]:
//
//	func (r *headerRow) SameContent(other delegate.Delegate) bool {
//	    o, ok := other.(*headerRow)
//	    return ok && o.Title == r.Title
//	}
//
// # Binding
//
// Rows render themselves into the host view when bound:
//
//	func (r *headerRow) Bind(ctx context.Context, h delegate.Holder, position int) {
//	    h.View().(*myTextView).SetText(r.Title)
//	}
//
// Implement [PayloadBinder] instead to receive partial update payloads
// produced by [PayloadProvider].
//
// # Actions
//
// Embedding [Base] gives a row access to the adapter's [ActionListener].
// The listener is injected again on every submit, including rows that were
// kept from the previous list.
package delegate
