package diff

// matcher finds a longest common subsequence with the linear-space variant of
// Myers' algorithm: each call bisects the edit graph at the middle of an
// optimal path and recurses on both halves. Only two V vectors are kept and
// they are shared by every level of the recursion.
type matcher struct {
	eq       func(i, j int) bool
	oldToNew []int
	newToOld []int
	v1, v2   []int
}

// match returns, for each old index, the matched new index or -1, and the
// reverse mapping. eq(i, j) reports whether old[i] and new[j] may be matched.
func match(n, m int, eq func(i, j int) bool) (oldToNew, newToOld []int) {
	oldToNew = make([]int, n)
	newToOld = make([]int, m)
	for i := range oldToNew {
		oldToNew[i] = -1
	}
	for j := range newToOld {
		newToOld[j] = -1
	}
	if n == 0 || m == 0 {
		return oldToNew, newToOld
	}

	size := n + m + 4
	mt := &matcher{
		eq:       eq,
		oldToNew: oldToNew,
		newToOld: newToOld,
		v1:       make([]int, size),
		v2:       make([]int, size),
	}
	mt.compare(0, n, 0, m)
	return oldToNew, newToOld
}

func (mt *matcher) pair(i, j int) {
	mt.oldToNew[i] = j
	mt.newToOld[j] = i
}

// compare matches old[aLo:aHi] against new[bLo:bHi].
func (mt *matcher) compare(aLo, aHi, bLo, bHi int) {
	for aLo < aHi && bLo < bHi && mt.eq(aLo, bLo) {
		mt.pair(aLo, bLo)
		aLo++
		bLo++
	}
	for aLo < aHi && bLo < bHi && mt.eq(aHi-1, bHi-1) {
		aHi--
		bHi--
		mt.pair(aHi, bHi)
	}
	if aLo == aHi || bLo == bHi {
		return
	}

	x, y, ok := mt.bisect(aLo, aHi, bLo, bHi)
	if !ok {
		// Nothing in common.
		return
	}
	mt.compare(aLo, x, bLo, y)
	mt.compare(x, aHi, y, bHi)
}

// bisect runs the forward and reverse searches until they overlap and returns
// the split point in absolute indices. ok is false when the ranges share no
// element.
func (mt *matcher) bisect(aLo, aHi, bLo, bHi int) (x, y int, ok bool) {
	n, m := aHi-aLo, bHi-bLo
	maxD := (n + m + 1) / 2
	off := maxD
	vLen := 2*maxD + 2
	v1, v2 := mt.v1[:vLen], mt.v2[:vLen]
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[off+1] = 0
	v2[off+1] = 0

	delta := n - m
	// With an odd delta the paths meet during a forward step.
	front := delta%2 != 0
	// Diagonals that ran off the grid are trimmed from the next steps.
	k1start, k1end, k2start, k2end := 0, 0, 0, 0

	for d := 0; d < maxD; d++ {
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1o := off + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1o-1] < v1[k1o+1]) {
				x1 = v1[k1o+1]
			} else {
				x1 = v1[k1o-1] + 1
			}
			y1 := x1 - k1
			for x1 < n && y1 < m && mt.eq(aLo+x1, bLo+y1) {
				x1++
				y1++
			}
			v1[k1o] = x1
			switch {
			case x1 > n:
				k1end += 2
			case y1 > m:
				k1start += 2
			case front:
				k2o := off + delta - k1
				if k2o >= 0 && k2o < vLen && v2[k2o] != -1 && x1 >= n-v2[k2o] {
					return aLo + x1, bLo + y1, true
				}
			}
		}

		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2o := off + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2o-1] < v2[k2o+1]) {
				x2 = v2[k2o+1]
			} else {
				x2 = v2[k2o-1] + 1
			}
			y2 := x2 - k2
			for x2 < n && y2 < m && mt.eq(aLo+n-x2-1, bLo+m-y2-1) {
				x2++
				y2++
			}
			v2[k2o] = x2
			switch {
			case x2 > n:
				k2end += 2
			case y2 > m:
				k2start += 2
			case !front:
				k1o := off + delta - k2
				if k1o >= 0 && k1o < vLen && v1[k1o] != -1 {
					x1 := v1[k1o]
					y1 := off + x1 - k1o
					if x1 >= n-x2 {
						return aLo + x1, bLo + y1, true
					}
				}
			}
		}
	}
	return 0, 0, false
}
