package testing

import (
	"context"

	"github.com/go-drift/recycler/pkg/delegate"
	"github.com/go-drift/recycler/pkg/diff"
)

type viewIDKey struct{}

// ViewID returns the ID of the [FakeView] whose context ctx is.
func ViewID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(viewIDKey{}).(int)
	return id, ok
}

// FakeView is a host view that stores what rows render into it.
type FakeView struct {
	ID   int
	Kind delegate.Kind
	// Text is written by [TextRow] on bind.
	Text string
	ctx  context.Context
}

// Context returns a context carrying the view ID.
func (v *FakeView) Context() context.Context {
	return v.ctx
}

// Event is a recorded host notification.
type Event struct {
	Reset bool
	Op    diff.Op
}

func (e Event) String() string {
	if e.Reset {
		return "reset"
	}
	return e.Op.String()
}

// FakeHost records notifications and creates [FakeView]s.
type FakeHost struct {
	Events []Event
	Views  []*FakeView
}

// NewFakeHost returns an empty recording host.
func NewFakeHost() *FakeHost {
	return &FakeHost{}
}

// CreateView creates and records a new view.
func (h *FakeHost) CreateView(kind delegate.Kind) delegate.View {
	id := len(h.Views) + 1
	v := &FakeView{
		ID:   id,
		Kind: kind,
		ctx:  context.WithValue(context.Background(), viewIDKey{}, id),
	}
	h.Views = append(h.Views, v)
	return v
}

func (h *FakeHost) NotifyReset() {
	h.Events = append(h.Events, Event{Reset: true})
}

func (h *FakeHost) NotifyInserted(pos int) {
	h.Events = append(h.Events, Event{Op: diff.Op{Kind: diff.OpInsert, Pos: pos}})
}

func (h *FakeHost) NotifyRemoved(pos int) {
	h.Events = append(h.Events, Event{Op: diff.Op{Kind: diff.OpRemove, Pos: pos}})
}

func (h *FakeHost) NotifyMoved(from, to int) {
	h.Events = append(h.Events, Event{Op: diff.Op{Kind: diff.OpMove, Pos: from, To: to}})
}

func (h *FakeHost) NotifyChanged(pos int, payload any) {
	h.Events = append(h.Events, Event{Op: diff.Op{Kind: diff.OpUpdate, Pos: pos, Payload: payload}})
}

// EventStrings renders the recorded notifications.
func (h *FakeHost) EventStrings() []string {
	out := make([]string, len(h.Events))
	for i, e := range h.Events {
		out[i] = e.String()
	}
	return out
}

// TakeEvents returns the recorded notifications and clears them.
func (h *FakeHost) TakeEvents() []string {
	out := h.EventStrings()
	h.Events = nil
	return out
}
