package crossfilter

import (
	"cmp"
	"slices"
	"sort"
)

// Dimension projects every record of a filter onto an ordered key and holds
// one predicate over those keys.
//
// Keys are sorted once at creation and collapsed into runs of equal keys.
// The predicate is stored as a selected flag per run; when the predicate is a
// contiguous interval of runs (no filter, range, exact) the interval bounds
// are tracked as well, so that moving a range only visits the runs that enter
// or leave it.
type Dimension[T any, K cmp.Ordered] struct {
	filter *Filter[T]
	name   string
	id     int

	keys  []K   // key per record position
	order []int // positions sorted by key, ties by position

	runKeys  []K   // distinct keys ascending
	runStart []int // offset into order of each run, plus a final sentinel

	selected   []bool // per run
	isInterval bool
	rangeLo    int
	rangeHi    int
	filtered   bool
}

// NewDimension registers a dimension keyed by keyFn. The key of each record
// is computed once.
func NewDimension[T any, K cmp.Ordered](f *Filter[T], name string, keyFn func(T) K) (*Dimension[T, K], error) {
	id, err := f.allocate()
	if err != nil {
		return nil, err
	}

	n := len(f.records)
	d := &Dimension[T, K]{
		filter: f,
		name:   name,
		id:     id,
		keys:   make([]K, n),
		order:  make([]int, n),
	}
	for pos, rec := range f.records {
		d.keys[pos] = keyFn(rec)
		d.order[pos] = pos
	}
	slices.SortStableFunc(d.order, func(a, b int) int {
		return cmp.Compare(d.keys[a], d.keys[b])
	})

	for i, pos := range d.order {
		if i == 0 || d.keys[pos] != d.runKeys[len(d.runKeys)-1] {
			d.runKeys = append(d.runKeys, d.keys[pos])
			d.runStart = append(d.runStart, i)
		}
	}
	d.runStart = append(d.runStart, n)

	d.selected = make([]bool, len(d.runKeys))
	for r := range d.selected {
		d.selected[r] = true
	}
	d.isInterval = true
	d.rangeLo, d.rangeHi = 0, len(d.runKeys)
	return d, nil
}

// Name returns the dimension name.
func (d *Dimension[T, K]) Name() string {
	return d.name
}

// Keys returns the distinct keys of all records, ascending.
func (d *Dimension[T, K]) Keys() []K {
	return slices.Clone(d.runKeys)
}

// HasFilter reports whether a predicate other than "no filter" is installed.
func (d *Dimension[T, K]) HasFilter() bool {
	return d.filtered
}

// FilterAll clears the predicate.
func (d *Dimension[T, K]) FilterAll() Change {
	return d.applyInterval(0, len(d.runKeys), false)
}

// FilterRange keeps records with lo <= key < hi.
func (d *Dimension[T, K]) FilterRange(lo, hi K) Change {
	a := d.searchRun(lo)
	b := d.searchRun(hi)
	if b < a {
		b = a
	}
	return d.applyInterval(a, b, true)
}

// FilterExact keeps records whose key equals k.
func (d *Dimension[T, K]) FilterExact(k K) Change {
	a := d.searchRun(k)
	b := a
	if a < len(d.runKeys) && d.runKeys[a] == k {
		b = a + 1
	}
	return d.applyInterval(a, b, true)
}

// FilterIn keeps records whose key is one of keys. An empty key set selects
// nothing.
func (d *Dimension[T, K]) FilterIn(keys ...K) Change {
	next := make([]bool, len(d.runKeys))
	for _, k := range keys {
		if r := d.searchRun(k); r < len(d.runKeys) && d.runKeys[r] == k {
			next[r] = true
		}
	}
	return d.applySelection(next)
}

// FilterFunc keeps records whose key satisfies fn. fn is evaluated once per
// distinct key.
func (d *Dimension[T, K]) FilterFunc(fn func(K) bool) Change {
	next := make([]bool, len(d.runKeys))
	for r, k := range d.runKeys {
		next[r] = fn(k)
	}
	return d.applySelection(next)
}

// Bottom returns up to n selected records in ascending key order.
func (d *Dimension[T, K]) Bottom(n int) []T {
	out := make([]T, 0, d.resultCap(n))
	for _, pos := range d.order {
		if n >= 0 && len(out) >= n {
			break
		}
		if d.filter.masks[pos] == 0 {
			out = append(out, d.filter.records[pos])
		}
	}
	return out
}

// Top returns up to n selected records in descending key order. Records with
// equal keys keep ascending position order.
func (d *Dimension[T, K]) Top(n int) []T {
	out := make([]T, 0, d.resultCap(n))
	for r := len(d.runKeys) - 1; r >= 0; r-- {
		for _, pos := range d.order[d.runStart[r]:d.runStart[r+1]] {
			if n >= 0 && len(out) >= n {
				return out
			}
			if d.filter.masks[pos] == 0 {
				out = append(out, d.filter.records[pos])
			}
		}
	}
	return out
}

func (d *Dimension[T, K]) resultCap(n int) int {
	if n < 0 || n > d.filter.selectedCount {
		return d.filter.selectedCount
	}
	return n
}

// searchRun returns the index of the first run whose key is >= k.
func (d *Dimension[T, K]) searchRun(k K) int {
	return sort.Search(len(d.runKeys), func(r int) bool {
		return d.runKeys[r] >= k
	})
}

func (d *Dimension[T, K]) applyInterval(lo, hi int, filtered bool) Change {
	ch := Change{Dimension: d.name}
	if d.isInterval {
		for _, span := range subtract(d.rangeLo, d.rangeHi, lo, hi) {
			d.flipRuns(span[0], span[1], false, &ch)
		}
		for _, span := range subtract(lo, hi, d.rangeLo, d.rangeHi) {
			d.flipRuns(span[0], span[1], true, &ch)
		}
	} else {
		for r := range d.selected {
			in := r >= lo && r < hi
			if d.selected[r] != in {
				d.flipRuns(r, r+1, in, &ch)
			}
		}
	}
	d.isInterval = true
	d.rangeLo, d.rangeHi = lo, hi
	d.filtered = filtered
	return ch
}

func (d *Dimension[T, K]) applySelection(next []bool) Change {
	ch := Change{Dimension: d.name}
	for r, in := range next {
		if d.selected[r] != in {
			d.flipRuns(r, r+1, in, &ch)
		}
	}
	d.isInterval = false
	d.filtered = true
	return ch
}

// flipRuns marks runs [lo, hi) as passing (in) or failing the predicate and
// pushes the change for each of their records to the filter.
func (d *Dimension[T, K]) flipRuns(lo, hi int, in bool, ch *Change) {
	for r := lo; r < hi; r++ {
		d.selected[r] = in
		for _, pos := range d.order[d.runStart[r]:d.runStart[r+1]] {
			d.filter.update(d.id, pos, !in, ch)
		}
	}
}

// subtract returns [a0, a1) minus [b0, b1) as at most two intervals.
func subtract(a0, a1, b0, b1 int) [][2]int {
	if a0 >= a1 {
		return nil
	}
	if b0 >= b1 || b1 <= a0 || b0 >= a1 {
		return [][2]int{{a0, a1}}
	}
	var out [][2]int
	if a0 < b0 {
		out = append(out, [2]int{a0, b0})
	}
	if b1 < a1 {
		out = append(out, [2]int{b1, a1})
	}
	return out
}
