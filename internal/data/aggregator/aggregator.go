package aggregator

import (
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/crossfilter"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
)

// CategoryCounts maps category id to record count within one bucket.
type CategoryCounts map[int]int

// StackedByCategory counts records per category inside each group bucket.
// Every accumulator starts with all categoryIDs at zero so stacked series
// line up across buckets.
func StackedByCategory(categoryIDs []int) crossfilter.Reducer[*model.Record, CategoryCounts] {
	ids := append([]int(nil), categoryIDs...)
	return crossfilter.Reducer[*model.Record, CategoryCounts]{
		Add: func(acc CategoryCounts, rec *model.Record) CategoryCounts {
			acc[rec.Category.ID]++
			return acc
		},
		Remove: func(acc CategoryCounts, rec *model.Record) CategoryCounts {
			acc[rec.Category.ID]--
			return acc
		},
		Initial: func() CategoryCounts {
			counts := make(CategoryCounts, len(ids))
			for _, id := range ids {
				counts[id] = 0
			}
			return counts
		},
	}
}

// DayBucket is one bar of the stacked histogram.
type DayBucket struct {
	Day    time.Time `json:"day"`
	Total  int       `json:"total"`
	Counts []int     `json:"counts"` // aligned with Histogram.Categories
}

// Histogram is the stacked day histogram view model.
type Histogram struct {
	Categories []model.Category `json:"categories"`
	Buckets    []DayBucket      `json:"buckets"`
	Max        int              `json:"max"` // largest bucket total
}

// NewHistogram converts group buckets keyed by Unix millisecond day start
// into a view model with one count column per category.
func NewHistogram(categories []model.Category, buckets []crossfilter.KeyValue[int64, CategoryCounts], loc *time.Location) Histogram {
	h := Histogram{
		Categories: categories,
		Buckets:    make([]DayBucket, 0, len(buckets)),
	}
	for _, kv := range buckets {
		b := DayBucket{
			Day:    time.UnixMilli(kv.Key).In(loc),
			Counts: make([]int, len(categories)),
		}
		for i, c := range categories {
			b.Counts[i] = kv.Value[c.ID]
			b.Total += kv.Value[c.ID]
		}
		if b.Total > h.Max {
			h.Max = b.Total
		}
		h.Buckets = append(h.Buckets, b)
	}
	return h
}

// LegendEntry is one row of the category legend.
type LegendEntry struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
	Active   bool           `json:"active"`
}

// Bounds is the bounding box of a set of locations.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Center returns the midpoint of the box.
func (b Bounds) Center() model.Location {
	return model.Location{Lat: (b.South + b.North) / 2, Lng: (b.West + b.East) / 2}
}

// BoundsOf returns the box enclosing every record location. ok is false for
// an empty input, in which case the map keeps its previous viewport.
func BoundsOf(records []*model.Record) (b Bounds, ok bool) {
	for i, rec := range records {
		loc := rec.Location
		if i == 0 {
			b = Bounds{South: loc.Lat, North: loc.Lat, West: loc.Lng, East: loc.Lng}
			continue
		}
		b.South = min(b.South, loc.Lat)
		b.North = max(b.North, loc.Lat)
		b.West = min(b.West, loc.Lng)
		b.East = max(b.East, loc.Lng)
	}
	return b, len(records) > 0
}
