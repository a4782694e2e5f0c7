package diff

import (
	"fmt"
	"slices"
)

// OpKind identifies the kind of an edit operation.
type OpKind int

const (
	// OpInsert inserts a new row at Pos.
	OpInsert OpKind = iota
	// OpRemove removes the row at Pos.
	OpRemove
	// OpMove removes the row at Pos and reinserts it at To.
	OpMove
	// OpUpdate marks the row at Pos as changed, with an optional Payload.
	OpUpdate
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpMove:
		return "move"
	case OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Op is a single edit operation.
type Op struct {
	Kind OpKind
	// Pos is the affected position. For moves it is the source position.
	Pos int
	// To is the destination of a move.
	To int
	// Payload is the partial update hint of an update, or nil for a full rebind.
	Payload any
}

func (o Op) String() string {
	switch o.Kind {
	case OpMove:
		return fmt.Sprintf("move %d %d", o.Pos, o.To)
	case OpUpdate:
		if o.Payload != nil {
			return fmt.Sprintf("update %d %v", o.Pos, o.Payload)
		}
		return fmt.Sprintf("update %d", o.Pos)
	default:
		return fmt.Sprintf("%s %d", o.Kind, o.Pos)
	}
}

// Script is an ordered list of operations.
type Script []Op

// Listener receives replayed operations.
type Listener interface {
	Inserted(pos int)
	Removed(pos int)
	Moved(from, to int)
	Changed(pos int, payload any)
}

// ListenerFuncs adapts optional functions to [Listener]. Nil fields are skipped.
type ListenerFuncs struct {
	OnInserted func(pos int)
	OnRemoved  func(pos int)
	OnMoved    func(from, to int)
	OnChanged  func(pos int, payload any)
}

func (l ListenerFuncs) Inserted(pos int) {
	if l.OnInserted != nil {
		l.OnInserted(pos)
	}
}

func (l ListenerFuncs) Removed(pos int) {
	if l.OnRemoved != nil {
		l.OnRemoved(pos)
	}
}

func (l ListenerFuncs) Moved(from, to int) {
	if l.OnMoved != nil {
		l.OnMoved(from, to)
	}
}

func (l ListenerFuncs) Changed(pos int, payload any) {
	if l.OnChanged != nil {
		l.OnChanged(pos, payload)
	}
}

// Replay sends every operation to l, in script order.
func (s Script) Replay(l Listener) {
	for _, op := range s {
		switch op.Kind {
		case OpInsert:
			l.Inserted(op.Pos)
		case OpRemove:
			l.Removed(op.Pos)
		case OpMove:
			l.Moved(op.Pos, op.To)
		case OpUpdate:
			l.Changed(op.Pos, op.Payload)
		}
	}
}

// Counts returns the number of operations of each kind.
func (s Script) Counts() map[OpKind]int {
	counts := make(map[OpKind]int, 4)
	for _, op := range s {
		counts[op.Kind]++
	}
	return counts
}

// Strings renders the script one operation per element.
func (s Script) Strings() []string {
	out := make([]string, len(s))
	for i, op := range s {
		out[i] = op.String()
	}
	return out
}

// Apply replays the structural operations of s onto a copy of items and
// returns the result. fill produces the element for each insertion. Updates
// are ignored. Apply panics if an operation is out of range.
func Apply[T any](s Script, items []T, fill func(op Op) T) []T {
	out := slices.Clone(items)
	for _, op := range s {
		switch op.Kind {
		case OpInsert:
			out = slices.Insert(out, op.Pos, fill(op))
		case OpRemove:
			out = slices.Delete(out, op.Pos, op.Pos+1)
		case OpMove:
			v := out[op.Pos]
			out = slices.Delete(out, op.Pos, op.Pos+1)
			out = slices.Insert(out, op.To, v)
		}
	}
	return out
}
