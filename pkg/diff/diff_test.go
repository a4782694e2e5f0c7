package diff

import (
	"fmt"
	"math/rand"
	"runtime"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/recycler/pkg/delegate"
)

// row compares content by text and reports a payload when text changes and
// partial is set.
type row struct {
	name    string
	kind    delegate.Kind
	text    string
	partial bool
}

func (r *row) Kind() delegate.Kind { return r.kind }

func (r *row) SameContent(other delegate.Delegate) bool {
	o, ok := other.(*row)
	return ok && o.text == r.text
}

func (r *row) ChangePayload(other delegate.Delegate) any {
	o, ok := other.(*row)
	if !ok || !r.partial || o.text == r.text {
		return nil
	}
	return "text"
}

// bare uses the default instance equality.
type bare struct {
	kind delegate.Kind
}

func (b *bare) Kind() delegate.Kind { return b.kind }

// keyed rows share one kind and are identified by key.
type keyed struct {
	key  string
	text string
}

func (k *keyed) Kind() delegate.Kind { return 1 }

func (k *keyed) SameIdentity(other delegate.Delegate) bool {
	o, ok := other.(*keyed)
	return ok && o.key == k.key
}

func (k *keyed) SameContent(other delegate.Delegate) bool {
	o, ok := other.(*keyed)
	return ok && o.text == k.text
}

func list(rows ...delegate.Delegate) []delegate.Delegate { return rows }

func kinds(rows []delegate.Delegate) []delegate.Kind {
	out := make([]delegate.Kind, len(rows))
	for i, r := range rows {
		out[i] = r.Kind()
	}
	return out
}

// assertComplete checks that replaying the structural operations on old
// yields next, row for row.
func assertComplete(t *testing.T, old, next []delegate.Delegate, s Script) {
	t.Helper()
	got := Apply(s, old, func(op Op) delegate.Delegate { return next[op.Pos] })
	if len(got) != len(next) {
		t.Fatalf("applied script has %d rows, want %d (script %v)", len(got), len(next), s.Strings())
	}
	if diff := cmp.Diff(kinds(next), kinds(got)); diff != "" {
		t.Errorf("kinds after applying %v: -want, +got:\n%s", s.Strings(), diff)
	}
	for p := range got {
		if !delegate.SameIdentity(got[p], next[p]) {
			t.Errorf("position %d: applied row does not match new row (script %v)", p, s.Strings())
		}
	}
}

func TestCompute_ContentChangeEmitsUpdate(t *testing.T) {
	a := &row{name: "A", kind: 1, text: "x"}
	b := &row{name: "B", kind: 2, text: "y"}
	a2 := &row{name: "A", kind: 1, text: "x"}
	b2 := &row{name: "B", kind: 2, text: "z"}

	res := Compute(list(a, b), list(a2, b2))

	want := Script{{Kind: OpUpdate, Pos: 1}}
	if diff := cmp.Diff(want, res.Script); diff != "" {
		t.Errorf("script: -want, +got:\n%s", diff)
	}
	if res.Items[0] != a {
		t.Error("expected unchanged row to be the previous instance")
	}
	if res.Items[1] != b2 {
		t.Error("expected changed row to be the new instance")
	}
	if diff := cmp.Diff([]bool{true, false}, res.Retained); diff != "" {
		t.Errorf("retained: -want, +got:\n%s", diff)
	}
}

func TestCompute_SwapEmitsSingleMove(t *testing.T) {
	a := &row{name: "A", kind: 1}
	b := &row{name: "B", kind: 2}
	a2 := &row{name: "A", kind: 1}
	b2 := &row{name: "B", kind: 2}

	res := Compute(list(a, b), list(b2, a2))

	counts := res.Script.Counts()
	if len(res.Script) != 1 || counts[OpMove] != 1 {
		t.Fatalf("expected exactly one move, got %v", res.Script.Strings())
	}
	if res.Items[0] != b || res.Items[1] != a {
		t.Error("expected reconciled list [old B, old A]")
	}
	assertComplete(t, list(a, b), list(b2, a2), res.Script)
}

func TestCompute_EmptyOldIsReset(t *testing.T) {
	a := &row{name: "A", kind: 1}
	b := &row{name: "B", kind: 2}

	res := Compute(nil, list(a, b))

	if !res.Reset {
		t.Error("expected Reset for an empty old list")
	}
	want := Script{{Kind: OpInsert, Pos: 0}, {Kind: OpInsert, Pos: 1}}
	if diff := cmp.Diff(want, res.Script); diff != "" {
		t.Errorf("script: -want, +got:\n%s", diff)
	}
	if res.Items[0] != a || res.Items[1] != b {
		t.Error("expected new instances in the reconciled list")
	}
}

func TestCompute_BothEmpty(t *testing.T) {
	res := Compute(nil, nil)
	if len(res.Script) != 0 || len(res.Items) != 0 {
		t.Errorf("expected empty result, got script %v items %d", res.Script.Strings(), len(res.Items))
	}
}

func TestCompute_EmptyNewRemovesEverything(t *testing.T) {
	old := list(&bare{1}, &bare{2}, &bare{3})

	res := Compute(old, nil)

	want := Script{{Kind: OpRemove, Pos: 2}, {Kind: OpRemove, Pos: 1}, {Kind: OpRemove, Pos: 0}}
	if diff := cmp.Diff(want, res.Script); diff != "" {
		t.Errorf("script: -want, +got:\n%s", diff)
	}
	if res.Reset {
		t.Error("Reset should only be set for an empty old list")
	}
}

func TestCompute_SameListIsNoop(t *testing.T) {
	l := list(&bare{1}, &bare{2}, &bare{2}, &bare{3})

	res := Compute(l, l)

	if len(res.Script) != 0 {
		t.Errorf("expected empty script, got %v", res.Script.Strings())
	}
	for p := range l {
		if res.Items[p] != l[p] {
			t.Errorf("position %d: expected the same instance", p)
		}
	}
}

func TestCompute_DefaultContentEqualityUpdatesFreshRows(t *testing.T) {
	old := list(&bare{1}, &bare{2})
	next := list(&bare{1}, &bare{2})

	res := Compute(old, next)

	want := Script{{Kind: OpUpdate, Pos: 0}, {Kind: OpUpdate, Pos: 1}}
	if diff := cmp.Diff(want, res.Script); diff != "" {
		t.Errorf("script: -want, +got:\n%s", diff)
	}
	if res.Items[0] != next[0] || res.Items[1] != next[1] {
		t.Error("expected fresh instances to be kept")
	}
}

func TestCompute_PayloadOnUpdate(t *testing.T) {
	old := list(&row{kind: 1, text: "a", partial: true})
	next := list(&row{kind: 1, text: "b"})

	res := Compute(old, next)

	want := Script{{Kind: OpUpdate, Pos: 0, Payload: "text"}}
	if diff := cmp.Diff(want, res.Script); diff != "" {
		t.Errorf("script: -want, +got:\n%s", diff)
	}
}

type stickyPayload struct {
	bare
}

func (s *stickyPayload) SameContent(other delegate.Delegate) bool { return true }
func (s *stickyPayload) ChangePayload(other delegate.Delegate) any { return "tick" }

func TestCompute_PayloadForUnchangedContent(t *testing.T) {
	prev := &stickyPayload{bare{1}}
	next := &stickyPayload{bare{1}}

	res := Compute(list(prev), list(next))

	want := Script{{Kind: OpUpdate, Pos: 0, Payload: "tick"}}
	if diff := cmp.Diff(want, res.Script); diff != "" {
		t.Errorf("script: -want, +got:\n%s", diff)
	}
	if res.Items[0] != prev {
		t.Error("content-equal row should still be the previous instance")
	}
}

func TestCompute_StationaryContentChangeNeverMoves(t *testing.T) {
	old := list(&row{kind: 1, text: "a"}, &row{kind: 2, text: "b"}, &row{kind: 3, text: "c"})
	next := list(&row{kind: 1, text: "a"}, &row{kind: 2, text: "B"}, &row{kind: 3, text: "c"})

	res := Compute(old, next)

	if res.Script.Counts()[OpMove] != 0 {
		t.Errorf("unexpected move in %v", res.Script.Strings())
	}
	want := Script{{Kind: OpUpdate, Pos: 1}}
	if diff := cmp.Diff(want, res.Script); diff != "" {
		t.Errorf("script: -want, +got:\n%s", diff)
	}
}

func TestCompute_RotationMovesOneRow(t *testing.T) {
	a, b, c := &bare{1}, &bare{2}, &bare{3}

	res := Compute(list(a, b, c), list(c, a, b))

	want := Script{{Kind: OpMove, Pos: 2, To: 0}}
	if diff := cmp.Diff(want, res.Script); diff != "" {
		t.Errorf("script: -want, +got:\n%s", diff)
	}
}

func TestCompute_MixedEdits(t *testing.T) {
	a := &keyed{key: "a", text: "1"}
	b := &keyed{key: "b", text: "1"}
	c := &keyed{key: "c", text: "1"}
	d := &keyed{key: "d", text: "1"}
	old := list(a, b, c, d)
	next := list(
		&keyed{key: "d", text: "1"},
		&keyed{key: "a", text: "2"},
		&keyed{key: "e", text: "1"},
		&keyed{key: "c", text: "1"},
	)

	res := Compute(old, next)

	assertComplete(t, old, next, res.Script)
	counts := res.Script.Counts()
	if counts[OpRemove] != 1 || counts[OpInsert] != 1 || counts[OpMove] != 1 || counts[OpUpdate] != 1 {
		t.Errorf("unexpected operation counts %v for %v", counts, res.Script.Strings())
	}
	if res.Items[0] != d || res.Items[3] != c {
		t.Error("expected unchanged rows to be previous instances")
	}
	if res.Items[1] == a {
		t.Error("changed row must not be the previous instance")
	}
}

func TestCompute_WithoutMoveDetection(t *testing.T) {
	a, b := &bare{1}, &bare{2}

	res := Compute(list(a, b), list(b, a), DetectMoves(false))

	counts := res.Script.Counts()
	if counts[OpMove] != 0 {
		t.Errorf("expected no moves, got %v", res.Script.Strings())
	}
	if counts[OpRemove] != 1 || counts[OpInsert] != 1 {
		t.Errorf("expected one remove and one insert, got %v", res.Script.Strings())
	}
	assertComplete(t, list(a, b), list(b, a), res.Script)
}

func TestCompute_DoesNotMutateInputs(t *testing.T) {
	a, b, c := &bare{1}, &bare{2}, &bare{3}
	old := list(a, b, c)
	next := list(c, &bare{4}, a)
	oldCopy := slices.Clone(old)
	nextCopy := slices.Clone(next)

	res := Compute(old, next)
	res.Items[0] = nil

	if !slices.Equal(old, oldCopy) || !slices.Equal(next, nextCopy) {
		t.Error("Compute modified its inputs")
	}
}

func TestCompute_Deterministic(t *testing.T) {
	old := list(&bare{1}, &bare{2}, &bare{1}, &bare{3}, &bare{2})
	next := list(&bare{2}, &bare{1}, &bare{3}, &bare{1})

	first := Compute(old, next)
	for i := 0; i < 5; i++ {
		again := Compute(old, next)
		if diff := cmp.Diff(first.Script, again.Script); diff != "" {
			t.Fatalf("run %d differs: -first, +again:\n%s", i, diff)
		}
	}
}

func TestCompute_RandomListsAreComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randomList := func() []delegate.Delegate {
		n := rng.Intn(12)
		out := make([]delegate.Delegate, n)
		for i := range out {
			out[i] = &row{kind: delegate.Kind(rng.Intn(5)), text: fmt.Sprint(rng.Intn(3))}
		}
		return out
	}

	for i := 0; i < 300; i++ {
		old, next := randomList(), randomList()
		for _, detect := range []bool{true, false} {
			res := Compute(old, next, DetectMoves(detect))
			assertComplete(t, old, next, res.Script)

			for p, retained := range res.Retained {
				if retained && !slices.Contains(old, res.Items[p]) {
					t.Fatalf("position %d marked retained but not an old instance", p)
				}
				if !retained && res.Items[p] != next[p] {
					t.Fatalf("position %d not retained but not the new instance", p)
				}
			}
		}
	}
}

func TestMatch_FindsLongestCommonSubsequence(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		a := make([]int, rng.Intn(40))
		b := make([]int, rng.Intn(40))
		for k := range a {
			a[k] = rng.Intn(4)
		}
		for k := range b {
			b[k] = rng.Intn(4)
		}

		oldToNew, newToOld := match(len(a), len(b), func(x, y int) bool { return a[x] == b[y] })

		got, last := 0, -1
		for x, y := range oldToNew {
			if y < 0 {
				continue
			}
			if y <= last || a[x] != b[y] || newToOld[y] != x {
				t.Fatalf("invalid matching %v for %v / %v", oldToNew, a, b)
			}
			last = y
			got++
		}
		if want := lcsLength(a, b); got != want {
			t.Errorf("matched %d pairs for %v / %v, want %d", got, a, b, want)
		}
	}
}

func lcsLength(a, b []int) int {
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}
	return dp[0][0]
}

func TestCompute_ShuffledKeysAreComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for i := 0; i < 100; i++ {
		n := 1 + rng.Intn(60)
		old := make([]delegate.Delegate, n)
		for k := range old {
			old[k] = &keyed{key: fmt.Sprint(k), text: "1"}
		}
		next := slices.Clone(old)
		rng.Shuffle(len(next), func(a, b int) { next[a], next[b] = next[b], next[a] })
		next = next[:rng.Intn(n+1)]
		extra := rng.Intn(5)
		for k := 0; k < extra; k++ {
			at := rng.Intn(len(next) + 1)
			next = slices.Insert(next, at, delegate.Delegate(&keyed{key: fmt.Sprint("new", k), text: "1"}))
		}

		res := Compute(old, next)
		assertComplete(t, old, next, res.Script)
		if got := res.Script.Counts()[OpUpdate]; got != 0 {
			t.Fatalf("unexpected updates in %v", res.Script.Strings())
		}
	}
}

func TestCompute_DisjointListsAllocateLinearly(t *testing.T) {
	const n = 2000
	old := make([]delegate.Delegate, n)
	next := make([]delegate.Delegate, n)
	for i := range old {
		old[i] = &keyed{key: fmt.Sprint("old", i)}
		next[i] = &keyed{key: fmt.Sprint("new", i)}
	}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	res := Compute(old, next)
	runtime.ReadMemStats(&after)

	counts := res.Script.Counts()
	if counts[OpRemove] != n || counts[OpInsert] != n {
		t.Fatalf("unexpected operation counts %v", counts)
	}
	const limit = 8 << 20
	if got := after.TotalAlloc - before.TotalAlloc; got > limit {
		t.Errorf("Compute allocated %d bytes for %d disjoint rows, want at most %d", got, n, limit)
	}
}

// spy records comparisons between rows of different kinds.
type spy struct {
	kind      delegate.Kind
	crossKind *int
	compared  *[]string
}

func (s *spy) Kind() delegate.Kind { return s.kind }

// SameIdentity claims every row so only the kind keeps rows apart.
func (s *spy) SameIdentity(other delegate.Delegate) bool { return true }

func (s *spy) SameContent(other delegate.Delegate) bool {
	s.record(other)
	*s.compared = append(*s.compared, fmt.Sprintf("%d=%d", other.Kind(), s.kind))
	return true
}

func (s *spy) ChangePayload(other delegate.Delegate) any {
	s.record(other)
	return nil
}

func (s *spy) record(other delegate.Delegate) {
	if other.Kind() != s.kind {
		*s.crossKind++
	}
}

func TestCompute_NeverComparesContentAcrossKinds(t *testing.T) {
	var crossKind int
	var compared []string
	mk := func(kinds ...delegate.Kind) []delegate.Delegate {
		out := make([]delegate.Delegate, len(kinds))
		for i, k := range kinds {
			out[i] = &spy{kind: k, crossKind: &crossKind, compared: &compared}
		}
		return out
	}
	old, next := mk(1, 2, 3), mk(3, 4, 1)

	tests := []struct {
		detect       bool
		wantCompared int
	}{
		{detect: true, wantCompared: 2},
		{detect: false, wantCompared: 1},
	}
	for _, tt := range tests {
		crossKind, compared = 0, nil
		res := Compute(old, next, DetectMoves(tt.detect))

		if crossKind != 0 {
			t.Errorf("DetectMoves(%v): %d comparisons across kinds", tt.detect, crossKind)
		}
		assertComplete(t, old, next, res.Script)
		for _, c := range compared {
			if c != "1=1" && c != "3=3" {
				t.Errorf("DetectMoves(%v): unexpected content comparison %s", tt.detect, c)
			}
		}
		if len(compared) != tt.wantCompared {
			t.Errorf("DetectMoves(%v): %d content comparisons, want %d", tt.detect, len(compared), tt.wantCompared)
		}
	}
}
