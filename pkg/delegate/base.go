package delegate

// Base holds the adapter's action listener for a row. Embed it in pointer
// rows to satisfy [ActionAware]:
//
//	type buttonRow struct {
//	    delegate.Base
//	    Label string
//	}
//
//	func (r *buttonRow) Bind(ctx context.Context, h delegate.Holder, position int) {
//	    h.View().(*myButton).OnTap = func() { r.Dispatch(tapped{position}) }
//	}
type Base struct {
	listener ActionListener
}

// SetActionListener stores l. The adapter calls it on every submit.
func (b *Base) SetActionListener(l ActionListener) {
	b.listener = l
}

// ActionListener returns the listener injected by the adapter, or nil.
func (b *Base) ActionListener() ActionListener {
	return b.listener
}

// Dispatch forwards action to the listener. It does nothing before the row
// has been submitted.
func (b *Base) Dispatch(action any) {
	if b.listener != nil {
		b.listener.OnAction(action)
	}
}
