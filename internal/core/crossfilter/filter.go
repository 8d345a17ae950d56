// Package crossfilter indexes an immutable set of records along independent
// dimensions and keeps per-dimension groups and the global selection up to
// date incrementally as dimension predicates change.
//
// Each record carries a bitmask with one bit per dimension; a set bit means
// the record fails that dimension's predicate. A record is selected when its
// mask is zero, and belongs to the "filtered by others" set of dimension d
// when its mask is zero after clearing d's bit. Groups attached to d
// aggregate exactly that set.
package crossfilter

import (
	"errors"
	"math/bits"
	"slices"
)

// Unbounded passed to Top or Bottom returns every selected record.
const Unbounded = -1

const maxDimensions = 32

// ErrTooManyDimensions is returned when a filter already has 32 dimensions.
var ErrTooManyDimensions = errors.New("crossfilter: dimension limit reached")

// membershipListener receives records entering or leaving the filtered-by-others
// set of the dimension it is attached to.
type membershipListener interface {
	add(pos int)
	remove(pos int)
}

// Change summarizes one predicate update.
type Change struct {
	Dimension string
	Flipped   int // records whose result for the changed predicate flipped
	Entered   int // records that joined the global selection
	Left      int // records that left the global selection
}

// Changed reports whether the update altered the global selection.
func (c Change) Changed() bool {
	return c.Entered > 0 || c.Left > 0
}

// Filter owns the record set and the per-record filter masks shared by all of
// its dimensions. It is not safe for concurrent use.
type Filter[T any] struct {
	records   []T
	masks     []uint32
	allocated uint32
	listeners [maxDimensions][]membershipListener

	selectedCount int
	selected      []int // selected positions, ascending, as of the last sync
	selection     []T   // records of selected
	touched       []int // positions whose selection flipped since the last sync
	isTouched     []bool
}

// New indexes records by position. The slice is copied; callers pass records
// in the order that should break key ties (typically ascending id).
func New[T any](records []T) *Filter[T] {
	n := len(records)
	f := &Filter[T]{
		records:       slices.Clone(records),
		masks:         make([]uint32, n),
		selectedCount: n,
		selected:      make([]int, n),
		isTouched:     make([]bool, n),
	}
	for pos := range f.selected {
		f.selected[pos] = pos
	}
	f.selection = slices.Clone(f.records)
	return f
}

// Size returns the number of indexed records.
func (f *Filter[T]) Size() int {
	return len(f.records)
}

// Record returns the record at position pos.
func (f *Filter[T]) Record(pos int) T {
	return f.records[pos]
}

// SelectedCount returns the number of records passing every predicate.
func (f *Filter[T]) SelectedCount() int {
	return f.selectedCount
}

// IsSelected reports whether the record at pos passes every predicate.
func (f *Filter[T]) IsSelected(pos int) bool {
	return f.masks[pos] == 0
}

// Selection returns the records passing every predicate, in position order.
func (f *Filter[T]) Selection() []T {
	f.sync()
	return slices.Clone(f.selection)
}

// touch records that the selection membership of pos flipped.
func (f *Filter[T]) touch(pos int) {
	if !f.isTouched[pos] {
		f.isTouched[pos] = true
		f.touched = append(f.touched, pos)
	}
}

// sync merges the touched positions into the ordered selection. It visits the
// previous selection and the touched positions only; records that stayed
// outside the selection are never read.
func (f *Filter[T]) sync() {
	if len(f.touched) == 0 {
		return
	}
	slices.Sort(f.touched)

	next := make([]int, 0, f.selectedCount)
	i := 0
	for _, pos := range f.touched {
		for i < len(f.selected) && f.selected[i] < pos {
			next = append(next, f.selected[i])
			i++
		}
		if i < len(f.selected) && f.selected[i] == pos {
			i++
		}
		if f.masks[pos] == 0 {
			next = append(next, pos)
		}
		f.isTouched[pos] = false
	}
	next = append(next, f.selected[i:]...)

	f.selected = next
	f.touched = f.touched[:0]
	f.selection = make([]T, len(next))
	for k, pos := range next {
		f.selection[k] = f.records[pos]
	}
}

func (f *Filter[T]) allocate() (int, error) {
	if f.allocated == ^uint32(0) {
		return 0, ErrTooManyDimensions
	}
	id := bits.TrailingZeros32(^f.allocated)
	f.allocated |= 1 << id
	return id, nil
}

func (f *Filter[T]) listen(dim int, l membershipListener) {
	f.listeners[dim] = append(f.listeners[dim], l)
}

// inOthers reports whether pos belongs to the filtered-by-others set of dim.
func (f *Filter[T]) inOthers(dim, pos int) bool {
	return f.masks[pos]&^(1<<dim) == 0
}

// update sets whether the record at pos fails dimension dim's predicate and
// propagates the membership changes this causes.
//
// Only the bit of dim changes, so the filtered-by-others set of another
// dimension e can only change when the remaining bits are empty or exactly
// e's bit. In every other case the record stays out of all those sets.
func (f *Filter[T]) update(dim, pos int, fails bool, ch *Change) {
	bit := uint32(1) << dim
	old := f.masks[pos]
	next := old &^ bit
	if fails {
		next = old | bit
	}
	if next == old {
		return
	}
	f.masks[pos] = next
	ch.Flipped++

	others := old &^ bit
	switch {
	case others == 0:
		for e := range f.listeners {
			if e != dim {
				f.notify(e, pos, !fails)
			}
		}
		f.touch(pos)
		if fails {
			f.selectedCount--
			ch.Left++
		} else {
			f.selectedCount++
			ch.Entered++
		}
	case others&(others-1) == 0:
		f.notify(bits.TrailingZeros32(others), pos, !fails)
	}
}

func (f *Filter[T]) notify(dim, pos int, in bool) {
	for _, l := range f.listeners[dim] {
		if in {
			l.add(pos)
		} else {
			l.remove(pos)
		}
	}
}
