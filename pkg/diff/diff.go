package diff

import (
	"slices"

	"github.com/go-drift/recycler/pkg/delegate"
)

// Result is the outcome of [Compute].
type Result struct {
	// Script turns the old list into the new one.
	Script Script
	// Items is the reconciled list: the new list with every unchanged row
	// replaced by its previous instance.
	Items []delegate.Delegate
	// Retained reports, per position of Items, whether the row is the
	// previous instance.
	Retained []bool
	// Reset is true when the old list was empty and no comparison ran.
	// Script then holds one insertion per row.
	Reset bool
}

// Option configures [Compute].
type Option func(*options)

type options struct {
	detectMoves bool
}

// DetectMoves controls whether identity-equal rows that changed relative order
// are reported as moves. When disabled they are removed and inserted again.
// Enabled by default.
func DetectMoves(enabled bool) Option {
	return func(o *options) {
		o.detectMoves = enabled
	}
}

// Compute compares old and next and returns the edit script and reconciled
// list. Neither input is modified.
//
// Rows of different kinds never match, whatever their identity comparers say.
// Insertion positions in the script equal the row's index in next, and update
// positions refer to the final list.
func Compute(old, next []delegate.Delegate, opts ...Option) Result {
	o := options{detectMoves: true}
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{
		Items:    slices.Clone(next),
		Retained: make([]bool, len(next)),
	}
	if len(old) == 0 {
		res.Reset = true
		for j := range next {
			res.Script = append(res.Script, Op{Kind: OpInsert, Pos: j})
		}
		return res
	}

	oldToNew, newToOld := match(len(old), len(next), func(i, j int) bool {
		return sameIdentity(old[i], next[j])
	})

	var moved []int
	if o.detectMoves {
		moved = pairMoves(old, next, oldToNew, newToOld)
	}

	res.Script = emit(moved, oldToNew, newToOld)

	for j, i := range newToOld {
		if i < 0 {
			continue
		}
		same := delegate.SameContent(old[i], next[j])
		payload := delegate.ChangePayload(old[i], next[j])
		if same {
			res.Items[j] = old[i]
			res.Retained[j] = true
			if payload == nil {
				continue
			}
		}
		res.Script = append(res.Script, Op{Kind: OpUpdate, Pos: j, Payload: payload})
	}
	return res
}

func sameIdentity(prev, next delegate.Delegate) bool {
	return prev.Kind() == next.Kind() && delegate.SameIdentity(prev, next)
}

// pairMoves matches every old row left over by the common subsequence with the
// first free identity-equal new row. It records the pairs in oldToNew and
// newToOld and returns the paired old indices.
func pairMoves(old, next []delegate.Delegate, oldToNew, newToOld []int) []int {
	free := make(map[delegate.Kind][]int)
	for j, i := range newToOld {
		if i < 0 {
			k := next[j].Kind()
			free[k] = append(free[k], j)
		}
	}

	var moved []int
	for i, j := range oldToNew {
		if j >= 0 {
			continue
		}
		k := old[i].Kind()
		candidates := free[k]
		for c, cand := range candidates {
			if !delegate.SameIdentity(old[i], next[cand]) {
				continue
			}
			oldToNew[i] = cand
			newToOld[cand] = i
			moved = append(moved, i)
			free[k] = slices.Delete(candidates, c, c+1)
			break
		}
	}
	return moved
}

// emit produces removals, moves and insertions.
//
// Removals run from the back, so their positions are old indices. Moves run in
// order of target and place each row directly before the first row of the
// common subsequence that follows it in the new list. Every row gets a key
// for the place it leaves and, when moved, one for the place it lands; a
// Fenwick tree over the keys counts the live rows ahead of either.
func emit(moved, oldToNew, newToOld []int) Script {
	var script Script
	n := len(oldToNew)

	for i := n - 1; i >= 0; i-- {
		if oldToNew[i] < 0 {
			script = append(script, Op{Kind: OpRemove, Pos: i})
		}
	}

	if len(moved) > 0 {
		script = appendMoves(script, moved, oldToNew, newToOld)
	}

	for j, i := range newToOld {
		if i < 0 {
			script = append(script, Op{Kind: OpInsert, Pos: j})
		}
	}
	return script
}

func appendMoves(script Script, moved, oldToNew, newToOld []int) Script {
	n := len(oldToNew)
	slices.SortFunc(moved, func(a, b int) int {
		return oldToNew[a] - oldToNew[b]
	})
	isMoved := make([]bool, n)
	for _, i := range moved {
		isMoved[i] = true
	}

	// anchor[j] is the old index of the first unmoved row after new position
	// j, or n when there is none.
	anchor := make([]int, len(newToOld))
	next := n
	for j := len(newToOld) - 1; j >= 0; j-- {
		anchor[j] = next
		if i := newToOld[j]; i >= 0 && !isMoved[i] {
			next = i
		}
	}

	from := make([]int, n)
	to := make([]int, len(moved))
	key, p := 0, 0
	for i := 0; i <= n; i++ {
		for p < len(moved) && anchor[oldToNew[moved[p]]] == i {
			to[p] = key
			key++
			p++
		}
		if i < n {
			from[i] = key
			key++
		}
	}

	live := newFenwick(key)
	for i, j := range oldToNew {
		if j >= 0 {
			live.add(from[i], 1)
		}
	}
	for p, i := range moved {
		src := live.prefix(from[i])
		live.add(from[i], -1)
		dst := live.prefix(to[p])
		live.add(to[p], 1)
		if src != dst {
			script = append(script, Op{Kind: OpMove, Pos: src, To: dst})
		}
	}
	return script
}

// fenwick is a binary indexed tree of counts.
type fenwick []int

func newFenwick(n int) fenwick {
	return make(fenwick, n+1)
}

func (f fenwick) add(k, delta int) {
	for k++; k < len(f); k += k & -k {
		f[k] += delta
	}
}

// prefix returns the sum of the counts at keys below k.
func (f fenwick) prefix(k int) int {
	sum := 0
	for ; k > 0; k -= k & -k {
		sum += f[k]
	}
	return sum
}
