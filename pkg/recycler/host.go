package recycler

import "github.com/go-drift/recycler/pkg/delegate"

// Host is the recycling list view the adapter feeds.
type Host interface {
	// CreateView returns a fresh view for rows of the given kind.
	CreateView(kind delegate.Kind) delegate.View
	// NotifyReset tells the host the whole list changed.
	NotifyReset()
	// NotifyInserted tells the host a row was inserted at pos.
	NotifyInserted(pos int)
	// NotifyRemoved tells the host the row at pos was removed.
	NotifyRemoved(pos int)
	// NotifyMoved tells the host the row at from now sits at to.
	NotifyMoved(from, to int)
	// NotifyChanged tells the host the row at pos needs a rebind. A non-nil
	// payload is handed back through BindSlot for a partial rebind.
	NotifyChanged(pos int, payload any)
}

// hostListener replays a diff script onto a Host.
type hostListener struct {
	host Host
}

func (l hostListener) Inserted(pos int)             { l.host.NotifyInserted(pos) }
func (l hostListener) Removed(pos int)              { l.host.NotifyRemoved(pos) }
func (l hostListener) Moved(from, to int)           { l.host.NotifyMoved(from, to) }
func (l hostListener) Changed(pos int, payload any) { l.host.NotifyChanged(pos, payload) }
