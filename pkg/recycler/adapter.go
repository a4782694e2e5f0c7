package recycler

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-drift/recycler/pkg/delegate"
	"github.com/go-drift/recycler/pkg/diff"
	rerrors "github.com/go-drift/recycler/pkg/errors"
)

// NoID is returned by [Adapter.ItemID] for rows without a stable ID.
const NoID int64 = -1

var (
	// ErrPositionOutOfRange is reported when the host binds a position
	// outside the snapshot.
	ErrPositionOutOfRange = errors.New("position out of range")
	// ErrReentrantSubmit is reported when Submit is called while a previous
	// Submit is still replaying notifications.
	ErrReentrantSubmit = errors.New("submit called during submit")
	// ErrSlotKindMismatch is reported when a slot is bound to a row of a
	// different kind than the slot was created for.
	ErrSlotKindMismatch = errors.New("slot kind does not match row kind")
)

// Adapter owns a list snapshot and mediates between it and a [Host].
type Adapter struct {
	host       Host
	listener   delegate.ActionListener
	items      []delegate.Delegate
	opts       options
	submitting bool
}

// NewAdapter returns an adapter with an empty snapshot. listener is injected
// into every submitted row that is [delegate.ActionAware]; it may be nil.
func NewAdapter(host Host, listener delegate.ActionListener, opts ...Option) *Adapter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Adapter{
		host:     host,
		listener: listener,
		opts:     o,
	}
}

// Submit replaces the snapshot with items and notifies the host.
//
// When the snapshot is empty the list is taken as is and the host receives a
// single reset. Otherwise the lists are diffed, unchanged rows keep their
// previous instance, and the edit script is replayed in order after the new
// snapshot is committed. The caller's slice is not retained.
func (a *Adapter) Submit(items []delegate.Delegate) {
	if a.submitting {
		rerrors.Report(&rerrors.RecyclerError{
			Op:       "recycler.Submit",
			Kind:     rerrors.KindReentrant,
			Position: rerrors.NoPosition,
			Err:      ErrReentrantSubmit,
		})
		return
	}
	a.submitting = true
	defer func() { a.submitting = false }()

	if len(a.items) == 0 {
		if len(items) == 0 {
			return
		}
		a.items = slices.Clone(items)
		a.injectListener()
		a.opts.log.V(1).Info("submit", "mode", "reset", "count", len(a.items))
		a.host.NotifyReset()
		return
	}

	var diffOpts []diff.Option
	if !a.opts.detectMoves {
		diffOpts = append(diffOpts, diff.DetectMoves(false))
	}
	res := diff.Compute(a.items, items, diffOpts...)

	a.items = res.Items
	a.injectListener()
	if log := a.opts.log.V(1); log.Enabled() {
		counts := res.Script.Counts()
		log.Info("submit", "mode", "diff", "count", len(a.items),
			"inserted", counts[diff.OpInsert], "removed", counts[diff.OpRemove],
			"moved", counts[diff.OpMove], "updated", counts[diff.OpUpdate])
	}
	res.Script.Replay(hostListener{host: a.host})
}

func (a *Adapter) injectListener() {
	for _, item := range a.items {
		delegate.SetListener(item, a.listener)
	}
}

// Items returns a copy of the snapshot.
func (a *Adapter) Items() []delegate.Delegate {
	return slices.Clone(a.items)
}

// Count returns the number of rows in the snapshot.
func (a *Adapter) Count() int {
	return len(a.items)
}

// Item returns the row at pos.
func (a *Adapter) Item(pos int) delegate.Delegate {
	return a.items[pos]
}

// ViewType returns the kind of the row at pos.
func (a *Adapter) ViewType(pos int) delegate.Kind {
	return a.items[pos].Kind()
}

// ItemID returns the stable ID of the row at pos, or NoID.
func (a *Adapter) ItemID(pos int) int64 {
	if id, ok := delegate.ItemID(a.items[pos]); ok {
		return id
	}
	return NoID
}

// CreateSlot asks the host for a view of the given kind and wraps it in an
// unbound slot.
func (a *Adapter) CreateSlot(kind delegate.Kind) *Slot {
	return &Slot{
		kind:     kind,
		view:     a.host.CreateView(kind),
		position: -1,
	}
}

// BindSlot binds the row at pos to s and runs its bind hook with payloads.
// An empty payloads slice requests a full bind.
//
// A slot still bound to a different row is unbound from it first; if the slot
// was attached, the old row is detached before and the new row attached after
// the bind. Binding an out-of-range position is reported and leaves the slot
// untouched.
func (a *Adapter) BindSlot(s *Slot, pos int, payloads []any) {
	if pos < 0 || pos >= len(a.items) {
		rerrors.Report(&rerrors.RecyclerError{
			Op:       "recycler.BindSlot",
			Kind:     rerrors.KindContract,
			Position: pos,
			Err:      fmt.Errorf("%w: count is %d", ErrPositionOutOfRange, len(a.items)),
		})
		return
	}
	item := a.items[pos]
	if item.Kind() != s.kind {
		rerrors.Report(&rerrors.RecyclerError{
			Op:       "recycler.BindSlot",
			Kind:     rerrors.KindContract,
			Position: pos,
			Err:      fmt.Errorf("%w: slot %d, row %d", ErrSlotKindMismatch, s.kind, item.Kind()),
		})
		return
	}

	reattach := false
	if s.item != nil && !delegate.SameInstance(s.item, item) {
		reattach = s.attached
		a.DetachSlot(s)
		a.unbind(s, "recycler.BindSlot")
	}
	s.item = item
	s.position = pos
	a.opts.log.V(1).Info("bind", "position", pos, "kind", int(s.kind), "payloads", len(payloads))
	a.runHook("recycler.BindSlot", func() {
		delegate.Bind(s.context(), item, s, pos, payloads)
	}, func() {
		// A half-bound row is never unbound or attached.
		a.opts.log.V(1).Info("bind failed", "position", pos, "kind", int(s.kind))
		s.clear()
	})
	if reattach {
		a.AttachSlot(s)
	}
}

// RecycleSlot runs the unbind hook of the row bound to s and clears the
// association. It does nothing for an unbound slot.
func (a *Adapter) RecycleSlot(s *Slot) {
	if s.item == nil {
		return
	}
	a.unbind(s, "recycler.RecycleSlot")
}

// AttachSlot forwards to the attach hook of the bound row. It does nothing for
// an unbound or already attached slot.
func (a *Adapter) AttachSlot(s *Slot) {
	if s.item == nil || s.attached {
		return
	}
	s.attached = true
	item := s.item
	a.runHook("recycler.AttachSlot", func() {
		delegate.Attach(s.context(), item, s)
	}, nil)
}

// DetachSlot forwards to the detach hook of the bound row. It does nothing for
// an unbound or already detached slot.
func (a *Adapter) DetachSlot(s *Slot) {
	if s.item == nil || !s.attached {
		return
	}
	s.attached = false
	item := s.item
	a.runHook("recycler.DetachSlot", func() {
		delegate.Detach(s.context(), item, s)
	}, nil)
}

// unbind runs the unbind hook and then clears the slot, also when the hook
// panics.
func (a *Adapter) unbind(s *Slot, op string) {
	item := s.item
	a.opts.log.V(1).Info("unbind", "position", s.position, "kind", int(s.kind))
	defer s.clear()
	a.runHook(op, func() {
		delegate.Unbind(s.context(), item, s)
	}, nil)
}

// runHook runs a row hook. With hook recovery enabled a panic is reported
// and onPanic, when set, runs afterwards.
func (a *Adapter) runHook(op string, hook, onPanic func()) {
	if !a.opts.recoverHooks {
		hook()
		return
	}
	defer rerrors.RecoverWithCallback(op, func(any) {
		if onPanic != nil {
			onPanic()
		}
	})
	hook()
}
