package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/marker"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// MaxMarkerRows caps the marker list height.
const MaxMarkerRows = 10

// FullLayoutStrategy implements the full dashboard layout
type FullLayoutStrategy struct {
	BaseStrategy
}

func (s *FullLayoutStrategy) GetName() string {
	return "Full Dashboard"
}

func (s *FullLayoutStrategy) Render(w io.Writer, v *DashboardView, width int) {
	s.TopBorder(w, width)
	s.header(w, v, width)
	s.Separator(w, width)
	s.legend(w, v, width)
	s.Separator(w, width)
	s.histogram(w, v, width)
	s.Separator(w, width)
	s.markers(w, v, width)
	if v.Marker.Mode == marker.OneSelected && len(v.Markers) == 1 {
		s.Separator(w, width)
		s.details(w, v.Markers[0], width)
	}
	s.Separator(w, width)
	s.footer(w, v, width)
	s.BottomBorder(w, width)
}

func (s *FullLayoutStrategy) header(w io.Writer, v *DashboardView, width int) {
	s.SplitLine(w, util.FormatHeaderTitle(v.Title), v.Now.Format("15:04:05"), width)
	s.SplitLine(w, s.SelectionSummary(v), s.RangeSummary(v), width)
}

func (s *FullLayoutStrategy) legend(w io.Writer, v *DashboardView, width int) {
	s.BoxLine(w, util.FormatSectionTitle("CATEGORIES"), width)
	for i, e := range v.Legend {
		check := "[ ]"
		if e.Active {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s %s %s",
			check,
			util.Colorize(util.SeriesColor(i), "■"),
			s.GetSizer().PadString(util.Truncate(e.Category.Shortname, 24), 24, true),
			s.GetSizer().PadString(util.FormatNumber(e.Count), 7, false))
		if v.Focus == FocusLegend && i == v.LegendCursor {
			line = util.ColorReverse + line + util.ColorReset
		}
		s.BoxLine(w, line, width)
	}
}

func (s *FullLayoutStrategy) histogram(w io.Writer, v *DashboardView, width int) {
	s.BoxLine(w, util.FormatSectionTitle("PER DAY"), width)
	h := v.Histogram
	if len(h.Buckets) == 0 {
		s.BoxLine(w, util.Colorize(util.ColorDim, "no records"), width)
		return
	}

	// day label, space, bar, space, count
	barWidth := width - 4 - 10 - 1 - 1 - 6
	buckets := h.Buckets
	if len(buckets) > MaxMarkerRows {
		buckets = buckets[len(buckets)-MaxMarkerRows:]
		s.BoxLine(w, util.Colorize(util.ColorDim, fmt.Sprintf("last %d of %d days", len(buckets), len(h.Buckets))), width)
	}
	for _, b := range buckets {
		bar := s.GetSizer().PadString(StackedBar(b.Counts, h.Max, barWidth), barWidth, true)
		s.BoxLine(w, fmt.Sprintf("%s %s %6d", util.FormatDay(b.Day), bar, b.Total), width)
	}
}

func (s *FullLayoutStrategy) markers(w io.Writer, v *DashboardView, width int) {
	s.BoxLine(w, util.FormatSectionTitle("MARKERS"), width)
	if len(v.Markers) == 0 {
		s.BoxLine(w, util.Colorize(util.ColorDim, "nothing selected"), width)
		return
	}

	from, to := window(len(v.Markers), v.Cursor, MaxMarkerRows)
	for i := from; i < to; i++ {
		rec := v.Markers[i]
		prefix := "  "
		if v.Marker.Mode == marker.OneSelected && v.Marker.Active == rec.ID {
			prefix = "● "
		}
		line := fmt.Sprintf("%s%5d  %s  %s  %s",
			prefix,
			rec.ID,
			util.FormatTimestamp(rec.Timestamp),
			util.FormatCoordinate(rec.Location.Lat, rec.Location.Lng),
			rec.Category.Shortname)
		if v.Focus == FocusMarkers && i == v.Cursor {
			line = util.ColorReverse + line + util.ColorReset
		}
		s.BoxLine(w, line, width)
	}
	if to-from < len(v.Markers) {
		s.BoxLine(w, util.Colorize(util.ColorDim, fmt.Sprintf("%d-%d of %d", from+1, to, len(v.Markers))), width)
	}
}

func (s *FullLayoutStrategy) details(w io.Writer, rec *model.Record, width int) {
	s.BoxLine(w, util.FormatSectionTitle(fmt.Sprintf("RECORD %d", rec.ID)), width)
	s.BoxLine(w, "uuid:     "+rec.UUID, width)
	s.BoxLine(w, "time:     "+util.FormatTimestamp(rec.Timestamp), width)
	s.BoxLine(w, "category: "+rec.Category.Longname, width)
	s.BoxLine(w, "location: "+util.FormatCoordinate(rec.Location.Lat, rec.Location.Lng), width)
	for _, m := range rec.Images {
		s.BoxLine(w, "image:    "+mediaLabel(m), width)
	}
	for _, m := range rec.Videos {
		s.BoxLine(w, "video:    "+mediaLabel(m), width)
	}
}

func (s *FullLayoutStrategy) footer(w io.Writer, v *DashboardView, width int) {
	if v.HasBounds {
		c := v.Bounds.Center()
		s.BoxLine(w, "map center "+util.FormatCoordinate(c.Lat, c.Lng), width)
	}
	if v.StatusMessage != "" {
		s.BoxLine(w, util.Colorize(util.ColorYellow, v.StatusMessage), width)
	}
	s.BoxLine(w, util.Colorize(util.ColorDim, "tab focus  ↑/↓ move  enter click  a all  [ ] range  h help  q quit"), width)
}

func mediaLabel(m model.MediaElement) string {
	parts := []string{}
	if m.Title != "" {
		parts = append(parts, m.Title)
	}
	parts = append(parts, m.URL)
	return strings.Join(parts, " ")
}

// window returns the [from, to) slice of n rows of height at most size that
// keeps cursor visible.
func window(n, cursor, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	from := cursor - size/2
	if from < 0 {
		from = 0
	}
	if from+size > n {
		from = n - size
	}
	return from, from + size
}
