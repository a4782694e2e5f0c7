// Package diff computes edit scripts between two versions of a row list.
//
// [Compute] compares an old and a new list of delegates and returns the
// operations that turn one into the other, together with a reconciled list in
// which every row whose content did not change is replaced by its previous
// instance:
//
//	res := diff.Compute(oldRows, newRows)
//	rows = res.Items
//	res.Script.Replay(listener)
//
// Identity is decided by [delegate.SameIdentity], content by
// [delegate.SameContent]. The longest run of rows that keep their relative
// order is found with Myers' O(ND) algorithm; remaining identity-equal pairs
// become moves.
//
// # Script Semantics
//
// Positions in a [Script] are sequential: each operation refers to the list as
// left by the operations before it, which is what a host notification stream
// expects. Operations are emitted in this order:
//
//   - removals, from the highest position down
//   - moves, by ascending target position
//   - insertions, by ascending position
//   - updates, by ascending position in the new list
//
// [Apply] replays the structural operations onto any slice.
package diff
