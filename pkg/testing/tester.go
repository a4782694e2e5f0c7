package testing

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/go-drift/recycler/pkg/delegate"
	"github.com/go-drift/recycler/pkg/recycler"
)

// ErrOutOfSync is returned when the simulated host and the adapter disagree.
var ErrOutOfSync = errors.New("host out of sync with adapter")

// entry is one position of the simulated list view.
type entry struct {
	slot     *recycler.Slot
	dirty    bool
	full     bool
	payloads []any
}

// ListTester drives a [recycler.Adapter] through a simulated recycling list
// view in which every position is on screen.
type ListTester struct {
	*FakeHost
	adapter *recycler.Adapter
	entries []entry
	scrap   []*recycler.Slot
	pool    map[delegate.Kind][]*recycler.Slot
	actions []any
}

// NewListTester creates a tester around a new adapter. Actions dispatched by
// rows are collected and available from [ListTester.Actions].
func NewListTester(opts ...recycler.Option) *ListTester {
	t := &ListTester{
		FakeHost: NewFakeHost(),
		pool:     make(map[delegate.Kind][]*recycler.Slot),
	}
	t.adapter = recycler.NewAdapter(t, delegate.ActionListenerFunc(func(action any) {
		t.actions = append(t.actions, action)
	}), opts...)
	return t
}

// NewListTesterWithT creates a tester that recycles all slots via t.Cleanup().
// This is the recommended constructor for tests.
func NewListTesterWithT(t *testing.T, opts ...recycler.Option) *ListTester {
	tester := NewListTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup detaches and recycles every slot, leaving all of them unbound.
func (t *ListTester) Cleanup() {
	for _, e := range t.entries {
		if e.slot != nil {
			t.scrap = append(t.scrap, e.slot)
		}
	}
	t.entries = nil
	t.recycleScrap()
}

// Adapter returns the adapter under test.
func (t *ListTester) Adapter() *recycler.Adapter {
	return t.adapter
}

// Actions returns the actions rows dispatched so far.
func (t *ListTester) Actions() []any {
	return t.actions
}

// Submit submits rows to the adapter.
func (t *ListTester) Submit(rows ...delegate.Delegate) {
	t.adapter.Submit(rows)
}

// Slot returns the slot on screen at pos, or nil before layout.
func (t *ListTester) Slot(pos int) *recycler.Slot {
	return t.entries[pos].slot
}

// View returns the view on screen at pos.
func (t *ListTester) View(pos int) *FakeView {
	s := t.Slot(pos)
	if s == nil {
		return nil
	}
	v, _ := s.View().(*FakeView)
	return v
}

// PoolSize returns the number of recycled slots waiting for reuse.
func (t *ListTester) PoolSize(kind delegate.Kind) int {
	return len(t.pool[kind])
}

func (t *ListTester) NotifyReset() {
	t.FakeHost.NotifyReset()
	for _, e := range t.entries {
		if e.slot != nil {
			t.scrap = append(t.scrap, e.slot)
		}
	}
	t.entries = make([]entry, t.adapter.Count())
}

func (t *ListTester) NotifyInserted(pos int) {
	t.FakeHost.NotifyInserted(pos)
	t.entries = slices.Insert(t.entries, pos, entry{})
}

func (t *ListTester) NotifyRemoved(pos int) {
	t.FakeHost.NotifyRemoved(pos)
	if s := t.entries[pos].slot; s != nil {
		t.scrap = append(t.scrap, s)
	}
	t.entries = slices.Delete(t.entries, pos, pos+1)
}

func (t *ListTester) NotifyMoved(from, to int) {
	t.FakeHost.NotifyMoved(from, to)
	e := t.entries[from]
	t.entries = slices.Delete(t.entries, from, from+1)
	t.entries = slices.Insert(t.entries, to, e)
}

func (t *ListTester) NotifyChanged(pos int, payload any) {
	t.FakeHost.NotifyChanged(pos, payload)
	e := &t.entries[pos]
	e.dirty = true
	if payload == nil {
		e.full = true
	} else {
		e.payloads = append(e.payloads, payload)
	}
}

// Layout recycles removed slots, binds new positions and rebinds changed
// ones, then verifies the result.
func (t *ListTester) Layout() error {
	if len(t.entries) != t.adapter.Count() {
		return fmt.Errorf("%w: host has %d rows, adapter %d", ErrOutOfSync, len(t.entries), t.adapter.Count())
	}
	t.recycleScrap()

	for pos := range t.entries {
		e := &t.entries[pos]
		switch {
		case e.slot == nil:
			e.slot = t.obtain(t.adapter.ViewType(pos))
			t.adapter.BindSlot(e.slot, pos, nil)
			t.adapter.AttachSlot(e.slot)
		case e.dirty:
			var payloads []any
			if !e.full {
				payloads = e.payloads
			}
			t.adapter.BindSlot(e.slot, pos, payloads)
		}
		e.dirty, e.full, e.payloads = false, false, nil
	}
	return t.Verify()
}

// Verify checks that every on-screen slot is bound, attached and holds the
// adapter's row for its position.
func (t *ListTester) Verify() error {
	if len(t.entries) != t.adapter.Count() {
		return fmt.Errorf("%w: host has %d rows, adapter %d", ErrOutOfSync, len(t.entries), t.adapter.Count())
	}
	for pos, e := range t.entries {
		if e.slot == nil {
			return fmt.Errorf("%w: position %d has no slot", ErrOutOfSync, pos)
		}
		if e.slot.State() != recycler.SlotBound || !e.slot.Attached() {
			return fmt.Errorf("%w: position %d is %s, attached=%v", ErrOutOfSync, pos, e.slot.State(), e.slot.Attached())
		}
		if !delegate.SameInstance(e.slot.Item(), t.adapter.Item(pos)) {
			return fmt.Errorf("%w: position %d shows a stale row", ErrOutOfSync, pos)
		}
	}
	return nil
}

func (t *ListTester) obtain(kind delegate.Kind) *recycler.Slot {
	if pooled := t.pool[kind]; len(pooled) > 0 {
		s := pooled[len(pooled)-1]
		t.pool[kind] = pooled[:len(pooled)-1]
		return s
	}
	return t.adapter.CreateSlot(kind)
}

func (t *ListTester) recycleScrap() {
	for _, s := range t.scrap {
		t.adapter.DetachSlot(s)
		t.adapter.RecycleSlot(s)
		t.pool[s.Kind()] = append(t.pool[s.Kind()], s)
	}
	t.scrap = nil
}
