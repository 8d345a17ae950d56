package formatter

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

const summaryBarWidth = 40

// SummaryFormatter prints the legend and the per-day histogram as text.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format writes the category totals followed by one bar per day.
func (f *SummaryFormatter) Format(w io.Writer, s *Snapshot) error {
	tw := &tableWriter{w: w}

	tw.printf("Selected: %s / %s records\n", formatNumber(s.Selected), formatNumber(s.Total))
	if s.Excluded > 0 {
		tw.printf("Excluded: %s invalid records\n", formatNumber(s.Excluded))
	}
	if s.Bounds != nil {
		c := s.Bounds.Center()
		tw.printf("Center:   %s\n", util.FormatCoordinate(c.Lat, c.Lng))
	}

	nameWidth := 0
	for _, e := range s.Legend {
		nameWidth = max(nameWidth, runewidth.StringWidth(e.Category.Shortname))
	}

	tw.printf("\nCategories\n")
	for _, e := range s.Legend {
		state := "off"
		if e.Active {
			state = "on"
		}
		tw.printf("  %s %6s  %s\n", runewidth.FillRight(e.Category.Shortname, nameWidth), formatNumber(e.Count), state)
	}

	tw.printf("\nPer day\n")
	if len(s.Histogram.Buckets) == 0 {
		tw.printf("  (no records)\n")
	}
	for _, b := range s.Histogram.Buckets {
		tw.printf("  %s %s %d\n", util.FormatDay(b.Day), bar(b.Total, s.Histogram.Max, summaryBarWidth), b.Total)
	}

	return tw.err
}

// bar scales value against peak into at most width cells, at least one cell
// for a non-zero value.
func bar(value, peak, width int) string {
	if peak <= 0 || value <= 0 {
		return strings.Repeat(" ", width)
	}
	n := value * width / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n) + strings.Repeat(" ", width-n)
}
