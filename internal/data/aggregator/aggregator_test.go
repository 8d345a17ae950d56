package aggregator

import (
	"testing"
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/crossfilter"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id, cat int, day string, lat, lng float64) *model.Record {
	ts, _ := time.Parse("2006-01-02", day)
	return &model.Record{
		ID:        id,
		Timestamp: ts,
		Location:  model.Location{Lat: lat, Lng: lng},
		Category:  model.Category{ID: cat},
	}
}

func TestStackedByCategoryReducer(t *testing.T) {
	r := StackedByCategory([]int{1, 2, 3})

	acc := r.Initial()
	assert.Equal(t, CategoryCounts{1: 0, 2: 0, 3: 0}, acc)

	a, b := rec(1, 1, "2020-01-01", 0, 0), rec(2, 2, "2020-01-01", 0, 0)
	acc = r.Add(acc, a)
	acc = r.Add(acc, b)
	acc = r.Add(acc, a)
	assert.Equal(t, CategoryCounts{1: 2, 2: 1, 3: 0}, acc)

	acc = r.Remove(acc, a)
	acc = r.Remove(acc, b)
	assert.Equal(t, CategoryCounts{1: 1, 2: 0, 3: 0}, acc)

	// initial accumulators are independent
	fresh := r.Initial()
	assert.Equal(t, 0, fresh[1])
}

func TestStackedHistogramThroughGroup(t *testing.T) {
	records := []*model.Record{
		rec(0, 1, "2020-01-01", 0, 0),
		rec(1, 2, "2020-01-01", 0, 0),
		rec(2, 1, "2020-01-03", 0, 0),
	}
	f := crossfilter.New(records)
	timeDim, err := crossfilter.NewDimension(f, "time", (*model.Record).TimeKey)
	require.NoError(t, err)
	catDim, err := crossfilter.NewDimension(f, "category", (*model.Record).CategoryID)
	require.NoError(t, err)
	group := crossfilter.NewGroup(timeDim, StackedByCategory([]int{1, 2}))

	cats := []model.Category{{ID: 1, Shortname: "A"}, {ID: 2, Shortname: "B"}}
	h := NewHistogram(cats, group.All(), time.UTC)
	require.Len(t, h.Buckets, 2)
	assert.Equal(t, []int{1, 1}, h.Buckets[0].Counts)
	assert.Equal(t, 2, h.Buckets[0].Total)
	assert.Equal(t, []int{1, 0}, h.Buckets[1].Counts)
	assert.Equal(t, 2, h.Max)
	assert.Equal(t, "2020-01-03", h.Buckets[1].Day.Format("2006-01-02"))

	catDim.FilterExact(2)
	h = NewHistogram(cats, group.All(), time.UTC)
	require.Len(t, h.Buckets, 1)
	assert.Equal(t, []int{0, 1}, h.Buckets[0].Counts)
	assert.Equal(t, 1, h.Max)
}

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf(nil)
	assert.False(t, ok)

	b, ok := BoundsOf([]*model.Record{rec(1, 1, "2020-01-01", 52.5, 13.4)})
	require.True(t, ok)
	assert.Equal(t, Bounds{South: 52.5, North: 52.5, West: 13.4, East: 13.4}, b)

	b, ok = BoundsOf([]*model.Record{
		rec(1, 1, "2020-01-01", 52.5, 13.4),
		rec(2, 1, "2020-01-01", 52.3, 13.7),
		rec(3, 1, "2020-01-01", 52.6, 13.2),
	})
	require.True(t, ok)
	assert.Equal(t, Bounds{South: 52.3, North: 52.6, West: 13.2, East: 13.7}, b)
	assert.InDelta(t, 52.45, b.Center().Lat, 1e-9)
	assert.InDelta(t, 13.45, b.Center().Lng, 1e-9)
}
