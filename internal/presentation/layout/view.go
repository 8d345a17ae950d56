package layout

import (
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/marker"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/data/aggregator"
)

// Focus names the panel keyboard navigation applies to.
type Focus int

const (
	FocusMarkers Focus = iota
	FocusLegend
)

// DashboardView is everything one frame shows.
type DashboardView struct {
	Title string
	Now   time.Time

	Total    int
	Excluded int
	Selected int

	HasRange bool
	From, To time.Time

	Legend    []aggregator.LegendEntry
	Histogram aggregator.Histogram

	Markers      []*model.Record // current selection view
	Marker       marker.State
	Cursor       int // marker list cursor
	LegendCursor int

	Focus     Focus
	Bounds    aggregator.Bounds
	HasBounds bool

	StatusMessage string
}
