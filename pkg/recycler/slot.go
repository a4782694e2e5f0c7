package recycler

import (
	"context"

	"github.com/go-drift/recycler/pkg/delegate"
)

// SlotState is the binding state of a [Slot].
type SlotState int

const (
	// SlotUnbound means no row is associated with the slot.
	SlotUnbound SlotState = iota
	// SlotBound means a row is associated with the slot.
	SlotBound
)

func (s SlotState) String() string {
	switch s {
	case SlotBound:
		return "bound"
	default:
		return "unbound"
	}
}

// Slot pairs one host view with at most one row.
//
// The slot does not own its row: the row belongs to the adapter snapshot and
// the slot only references it between BindSlot and RecycleSlot.
type Slot struct {
	kind     delegate.Kind
	view     delegate.View
	item     delegate.Delegate
	position int
	attached bool
}

var _ delegate.Holder = (*Slot)(nil)

// Kind returns the view type the slot was created for.
func (s *Slot) Kind() delegate.Kind {
	return s.kind
}

// View returns the host view.
func (s *Slot) View() delegate.View {
	return s.view
}

// Item returns the bound row, or nil.
func (s *Slot) Item() delegate.Delegate {
	return s.item
}

// Position returns the position of the last bind, or -1 when unbound.
func (s *Slot) Position() int {
	return s.position
}

// State reports whether a row is bound.
func (s *Slot) State() SlotState {
	if s.item == nil {
		return SlotUnbound
	}
	return SlotBound
}

// Attached reports whether the bound view is on screen.
func (s *Slot) Attached() bool {
	return s.attached
}

func (s *Slot) context() context.Context {
	if s.view != nil {
		if ctx := s.view.Context(); ctx != nil {
			return ctx
		}
	}
	return context.Background()
}

func (s *Slot) clear() {
	s.item = nil
	s.position = -1
	s.attached = false
}
