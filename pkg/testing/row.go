package testing

import (
	"context"
	"fmt"

	"github.com/go-drift/recycler/pkg/delegate"
)

// TextPayload is the payload a partial [TextRow] produces when its text changes.
const TextPayload = "text"

// TextRow is a test row that renders Text into a [FakeView] and records its
// lifecycle calls.
type TextRow struct {
	delegate.Base
	Type delegate.Kind
	// ID is the stable ID; zero means none.
	ID   int64
	Text string
	// Partial makes text changes produce TextPayload.
	Partial bool
	// Calls lists hook invocations, e.g. "bind 2", "bind 2 [text]", "attach",
	// "detach", "unbind".
	Calls []string
}

func (r *TextRow) Kind() delegate.Kind { return r.Type }

func (r *TextRow) ItemID() (int64, bool) { return r.ID, r.ID != 0 }

// SameContent compares text.
func (r *TextRow) SameContent(other delegate.Delegate) bool {
	o, ok := other.(*TextRow)
	return ok && o.Text == r.Text
}

func (r *TextRow) ChangePayload(other delegate.Delegate) any {
	o, ok := other.(*TextRow)
	if !ok || !r.Partial || o.Text == r.Text {
		return nil
	}
	return TextPayload
}

func (r *TextRow) BindPayloads(ctx context.Context, h delegate.Holder, position int, payloads []any) {
	if len(payloads) == 0 {
		r.Calls = append(r.Calls, fmt.Sprintf("bind %d", position))
	} else {
		r.Calls = append(r.Calls, fmt.Sprintf("bind %d %v", position, payloads))
	}
	if v, ok := h.View().(*FakeView); ok {
		v.Text = r.Text
	}
}

func (r *TextRow) OnAttached(ctx context.Context, h delegate.Holder) {
	r.Calls = append(r.Calls, "attach")
}

func (r *TextRow) OnDetached(ctx context.Context, h delegate.Holder) {
	r.Calls = append(r.Calls, "detach")
}

func (r *TextRow) OnUnbind(ctx context.Context, h delegate.Holder) {
	r.Calls = append(r.Calls, "unbind")
}

// TakeCalls returns the recorded calls and clears them.
func (r *TextRow) TakeCalls() []string {
	out := r.Calls
	r.Calls = nil
	return out
}
