package dashboard

import (
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/selection"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/display"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/interaction"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/layout"
)

// sortedMarkers returns the panel's records in display order.
func sortedMarkers(panel *display.MarkerPanel, sorter *interaction.RecordSorter) []*model.Record {
	records, _ := panel.Snapshot()
	sorter.Sort(records)
	return records
}

// BuildView assembles one frame from the controller and the marker panel.
// It returns nil before the first load.
func BuildView(title string, c *selection.Controller, panel *display.MarkerPanel, sorter *interaction.RecordSorter, state model.InteractionState, now time.Time) *layout.DashboardView {
	if c == nil {
		return nil
	}

	_, markerState := panel.Snapshot()
	v := &layout.DashboardView{
		Title:         title,
		Now:           now,
		Total:         c.Store().Len(),
		Excluded:      c.Store().Excluded(),
		Selected:      len(c.CurrentSelection()),
		Legend:        c.CategoryTotals(),
		Histogram:     c.Histogram(),
		Markers:       sortedMarkers(panel, sorter),
		Marker:        markerState,
		Focus:         layout.Focus(state.Focus),
		StatusMessage: state.StatusMessage,
	}
	v.Cursor = clamp(state.Cursor, 0, len(v.Markers)-1)
	v.LegendCursor = clamp(state.LegendCursor, 0, len(v.Legend)-1)
	v.From, v.To, v.HasRange = c.TimeRange()
	v.Bounds, v.HasBounds = c.Bounds()
	return v
}

// clamp bounds i to [lo, hi]; an empty range yields lo.
func clamp(i, lo, hi int) int {
	if i > hi {
		i = hi
	}
	if i < lo {
		i = lo
	}
	return i
}
