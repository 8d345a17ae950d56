package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/crossfilter"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/marker"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/selection"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/data/aggregator"
)

// Formatter writes a snapshot in one output format.
type Formatter interface {
	Format(w io.Writer, s *Snapshot) error
}

// New returns the formatter for format.
func New(format string) (Formatter, error) {
	switch format {
	case model.FormatTable, "":
		return NewTableFormatter(), nil
	case model.FormatJSON:
		return NewJSONFormatter(), nil
	case model.FormatCSV:
		return NewCSVFormatter(), nil
	case model.FormatSummary:
		return NewSummaryFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (table, json, csv, summary)", format)
	}
}

// RecordRow is one record of the selection view.
type RecordRow struct {
	ID        int       `json:"id"`
	UUID      string    `json:"uuid"`
	Timestamp time.Time `json:"timestamp"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Category  string    `json:"category"`
	Media     int       `json:"media"`
	Active    bool      `json:"active,omitempty"`
}

// TimeWindow is the installed half-open time filter.
type TimeWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Snapshot is the state of a controller at one point in time.
type Snapshot struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Total       int                      `json:"total"`
	Excluded    int                      `json:"excluded"`
	Selected    int                      `json:"selected"`
	TimeRange   *TimeWindow              `json:"time_range,omitempty"`
	Legend      []aggregator.LegendEntry `json:"legend"`
	Histogram   aggregator.Histogram     `json:"histogram"`
	Records     []RecordRow              `json:"records"`
	Truncated   bool                     `json:"truncated,omitempty"`
	Bounds      *aggregator.Bounds       `json:"bounds,omitempty"`
}

// NewSnapshot captures the controller state. limit caps the number of record
// rows; crossfilter.Unbounded keeps all of them.
func NewSnapshot(c *selection.Controller, limit int, now time.Time) *Snapshot {
	view := c.SelectionView()
	state := c.MarkerState()

	s := &Snapshot{
		GeneratedAt: now,
		Total:       c.Store().Len(),
		Excluded:    c.Store().Excluded(),
		Selected:    len(c.CurrentSelection()),
		Legend:      c.CategoryTotals(),
		Histogram:   c.Histogram(),
	}
	if lo, hi, ok := c.TimeRange(); ok {
		s.TimeRange = &TimeWindow{From: lo, To: hi}
	}
	if b, ok := c.Bounds(); ok {
		s.Bounds = &b
	}

	if limit != crossfilter.Unbounded && len(view) > limit {
		view = view[:limit]
		s.Truncated = true
	}
	s.Records = make([]RecordRow, 0, len(view))
	for _, rec := range view {
		s.Records = append(s.Records, RecordRow{
			ID:        rec.ID,
			UUID:      rec.UUID,
			Timestamp: rec.Timestamp,
			Lat:       rec.Location.Lat,
			Lng:       rec.Location.Lng,
			Category:  rec.Category.Shortname,
			Media:     rec.MediaCount(),
			Active:    state.Mode == marker.OneSelected && state.Active == rec.ID,
		})
	}
	return s
}
