package crossfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id  int
	day int
	cat string
	val int
}

func testItems() []item {
	return []item{
		{id: 0, day: 1, cat: "A", val: 10},
		{id: 1, day: 2, cat: "B", val: 20},
		{id: 2, day: 3, cat: "A", val: 30},
		{id: 3, day: 3, cat: "C", val: 40},
		{id: 4, day: 5, cat: "B", val: 50},
	}
}

func ids(items []item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func newTestFilter(t *testing.T) (*Filter[item], *Dimension[item, int], *Dimension[item, string]) {
	t.Helper()
	f := New(testItems())
	days, err := NewDimension(f, "day", func(it item) int { return it.day })
	require.NoError(t, err)
	cats, err := NewDimension(f, "category", func(it item) string { return it.cat })
	require.NoError(t, err)
	return f, days, cats
}

func TestNewFilterSelectsEverything(t *testing.T) {
	f, days, cats := newTestFilter(t)

	assert.Equal(t, 5, f.Size())
	assert.Equal(t, 5, f.SelectedCount())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, ids(f.Selection()))
	assert.False(t, days.HasFilter())
	assert.False(t, cats.HasFilter())
	assert.Equal(t, []int{1, 2, 3, 5}, days.Keys())
}

func TestFilterExactAndIn(t *testing.T) {
	f, _, cats := newTestFilter(t)

	ch := cats.FilterExact("A")
	assert.Equal(t, []int{0, 2}, ids(f.Selection()))
	assert.Equal(t, 3, ch.Flipped)
	assert.Equal(t, 3, ch.Left)
	assert.True(t, ch.Changed())
	assert.True(t, cats.HasFilter())

	cats.FilterIn("A", "C")
	assert.Equal(t, []int{0, 2, 3}, ids(f.Selection()))

	cats.FilterIn("A", "missing")
	assert.Equal(t, []int{0, 2}, ids(f.Selection()))
}

func TestFilterInEmptySelectsNothing(t *testing.T) {
	f, _, cats := newTestFilter(t)

	cats.FilterIn()
	assert.Empty(t, f.Selection())
	assert.Equal(t, 0, f.SelectedCount())
	assert.True(t, cats.HasFilter())

	ch := cats.FilterAll()
	assert.Equal(t, 5, ch.Entered)
	assert.Equal(t, 5, f.SelectedCount())
	assert.False(t, cats.HasFilter())
}

func TestFilterRangeIsHalfOpen(t *testing.T) {
	f, days, _ := newTestFilter(t)

	days.FilterRange(2, 5)
	assert.Equal(t, []int{1, 2, 3}, ids(f.Selection()))

	// moving the range only flips the records at the edges
	ch := days.FilterRange(3, 6)
	assert.Equal(t, []int{2, 3, 4}, ids(f.Selection()))
	assert.Equal(t, 2, ch.Flipped)

	days.FilterRange(4, 2)
	assert.Empty(t, f.Selection())

	days.FilterRange(100, 200)
	assert.Empty(t, f.Selection())
}

func TestFilterFunc(t *testing.T) {
	f, days, _ := newTestFilter(t)

	days.FilterFunc(func(d int) bool { return d%2 == 1 })
	assert.Equal(t, []int{0, 2, 3, 4}, ids(f.Selection()))

	days.FilterRange(1, 3)
	assert.Equal(t, []int{0, 1}, ids(f.Selection()))
}

func TestFiltersCompose(t *testing.T) {
	f, days, cats := newTestFilter(t)

	cats.FilterExact("B")
	days.FilterRange(1, 3)
	assert.Equal(t, []int{1}, ids(f.Selection()))

	ch := days.FilterAll()
	assert.Equal(t, []int{1, 4}, ids(f.Selection()))
	assert.Equal(t, 1, ch.Entered)
	// records failing the category filter flip on days but stay unselected
	assert.Equal(t, 3, ch.Flipped)
}

func TestTopAndBottom(t *testing.T) {
	_, days, cats := newTestFilter(t)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, ids(days.Bottom(Unbounded)))
	assert.Equal(t, []int{4, 2, 3, 1, 0}, ids(days.Top(Unbounded)))
	assert.Equal(t, []int{4, 2}, ids(days.Top(2)))
	assert.Equal(t, []int{0, 1}, ids(days.Bottom(2)))
	assert.Empty(t, days.Top(0))

	cats.FilterIn("A", "C")
	assert.Equal(t, []int{2, 3, 0}, ids(days.Top(Unbounded)))
	assert.Equal(t, []int{0, 2, 3}, ids(cats.Bottom(Unbounded)))
	assert.Equal(t, []int{3, 0, 2}, ids(cats.Top(Unbounded)))
}

func TestSelectionIsACopy(t *testing.T) {
	f, _, _ := newTestFilter(t)

	sel := f.Selection()
	sel[0] = item{id: 99}
	assert.Equal(t, 0, f.Selection()[0].id)
}

type countingListener struct {
	adds, removes int
}

func (l *countingListener) add(int)    { l.adds++ }
func (l *countingListener) remove(int) { l.removes++ }

func sequence(n int) []item {
	items := make([]item, n)
	for i := range items {
		items[i] = item{id: i, day: i}
	}
	return items
}

func TestSelectionSyncVisitsOnlyChangedRecords(t *testing.T) {
	f := New(sequence(1000))
	days, err := NewDimension(f, "day", func(it item) int { return it.day })
	require.NoError(t, err)

	days.FilterRange(10, 20)
	require.Len(t, f.Selection(), 10)

	// a rescan of all masks would pick this record up
	f.masks[500] = 0

	ch := days.FilterRange(11, 21)
	assert.Equal(t, 2, ch.Flipped)
	assert.Len(t, f.touched, 2)

	assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, ids(f.Selection()))
	assert.Empty(t, f.touched)
	assert.False(t, f.isTouched[10])
	assert.False(t, f.isTouched[20])
}

func TestRangeShiftNotifiesOnlyChangedRecords(t *testing.T) {
	f := New(sequence(1000))
	days, err := NewDimension(f, "day", func(it item) int { return it.day })
	require.NoError(t, err)
	other, err := NewDimension(f, "id", func(it item) int { return it.id })
	require.NoError(t, err)

	listener := &countingListener{}
	f.listen(other.id, listener)

	days.FilterRange(0, 500)
	assert.Equal(t, 500, listener.removes)

	for lo := 1; lo <= 50; lo++ {
		days.FilterRange(lo, lo+500)
	}
	assert.Equal(t, 550, listener.removes)
	assert.Equal(t, 50, listener.adds)
	assert.Equal(t, 500, f.SelectedCount())
	sel := f.Selection()
	require.Len(t, sel, 500)
	assert.Equal(t, 50, sel[0].id)
	assert.Equal(t, 549, sel[len(sel)-1].id)
}

func TestSelectionAcrossSeveralChanges(t *testing.T) {
	f, days, cats := newTestFilter(t)

	// a record that leaves and re-enters between reads stays selected once
	days.FilterRange(2, 4)
	cats.FilterExact("A")
	days.FilterAll()
	cats.FilterIn("A", "B")
	assert.Equal(t, []int{0, 1, 2, 4}, ids(f.Selection()))

	cats.FilterAll()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, ids(f.Selection()))
}

func TestTooManyDimensions(t *testing.T) {
	f := New(testItems())
	for i := 0; i < maxDimensions; i++ {
		_, err := NewDimension(f, "d", func(it item) int { return it.id })
		require.NoError(t, err)
	}

	_, err := NewDimension(f, "overflow", func(it item) int { return it.id })
	assert.ErrorIs(t, err, ErrTooManyDimensions)
}

func TestEmptyFilter(t *testing.T) {
	f := New[item](nil)
	days, err := NewDimension(f, "day", func(it item) int { return it.day })
	require.NoError(t, err)
	g := NewGroup(days, Count[item]())

	days.FilterRange(1, 2)
	assert.Empty(t, f.Selection())
	assert.Empty(t, days.Top(Unbounded))
	assert.Empty(t, g.All())
	days.FilterAll()
	assert.Equal(t, 0, f.SelectedCount())
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name           string
		a0, a1, b0, b1 int
		expected       [][2]int
	}{
		{name: "empty minuend", a0: 3, a1: 3, b0: 0, b1: 5, expected: nil},
		{name: "disjoint", a0: 0, a1: 3, b0: 5, b1: 8, expected: [][2]int{{0, 3}}},
		{name: "empty subtrahend", a0: 0, a1: 3, b0: 2, b1: 2, expected: [][2]int{{0, 3}}},
		{name: "left overlap", a0: 0, a1: 5, b0: 3, b1: 8, expected: [][2]int{{0, 3}}},
		{name: "right overlap", a0: 3, a1: 8, b0: 0, b1: 5, expected: [][2]int{{5, 8}}},
		{name: "inner hole", a0: 0, a1: 10, b0: 3, b1: 5, expected: [][2]int{{0, 3}, {5, 10}}},
		{name: "covered", a0: 3, a1: 5, b0: 0, b1: 10, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, subtract(tt.a0, tt.a1, tt.b0, tt.b1))
		})
	}
}
