package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"ID", "Time", "Category", "Location", "Media"},
	}
}

func (f *TableFormatter) Format(w io.Writer, s *Snapshot) error {
	tw := &tableWriter{w: w}

	tw.printf("%s\n", f.headline(s))
	tw.printf("\n")

	rows := make([][]string, 0, len(s.Records))
	for _, r := range s.Records {
		id := fmt.Sprintf("%d", r.ID)
		if r.Active {
			id = "*" + id
		}
		rows = append(rows, []string{
			id,
			util.FormatTimestamp(r.Timestamp),
			r.Category,
			util.FormatCoordinate(r.Lat, r.Lng),
			fmt.Sprintf("%d", r.Media),
		})
	}
	f.printTable(tw, f.headers, rows, 1, 4)
	if s.Truncated {
		tw.printf("(showing %d of %d selected records)\n", len(s.Records), s.Selected)
	}

	tw.printf("\n")
	legend := make([][]string, 0, len(s.Legend))
	for _, e := range s.Legend {
		mark := " "
		if e.Active {
			mark = "x"
		}
		legend = append(legend, []string{
			mark,
			e.Category.Shortname,
			e.Category.Longname,
			formatNumber(e.Count),
		})
	}
	f.printTable(tw, []string{"", "Category", "Description", "Count"}, legend, 3)

	return tw.err
}

func (f *TableFormatter) headline(s *Snapshot) string {
	line := fmt.Sprintf("%s of %s records selected", formatNumber(s.Selected), formatNumber(s.Total))
	if s.Excluded > 0 {
		line += fmt.Sprintf(", %s excluded", formatNumber(s.Excluded))
	}
	if s.TimeRange != nil {
		line += fmt.Sprintf(" | %s .. %s", util.FormatTimestamp(s.TimeRange.From), util.FormatTimestamp(s.TimeRange.To))
	}
	return line
}

// printTable prints headers and rows framed by box-drawing borders. Columns
// listed in rightAligned are padded on the left.
func (f *TableFormatter) printTable(tw *tableWriter, headers []string, rows [][]string, rightAligned ...int) {
	widths := calculateColumnWidths(headers, rows)
	right := make(map[int]bool, len(rightAligned))
	for _, i := range rightAligned {
		right[i] = true
	}

	tw.border(widths, "top")
	tw.row(headers, widths, nil)
	tw.border(widths, "middle")
	for _, r := range rows {
		tw.row(r, widths, right)
	}
	tw.border(widths, "bottom")
}

// calculateColumnWidths determines the display width of each column
func calculateColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, v := range r {
			if w := runewidth.StringWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// tableWriter remembers the first write error so callers check once.
type tableWriter struct {
	w   io.Writer
	err error
}

func (tw *tableWriter) printf(format string, args ...interface{}) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *tableWriter) border(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	tw.printf("%s\n", b.String())
}

func (tw *tableWriter) row(values []string, widths []int, right map[int]bool) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		if right[i] {
			b.WriteString(" " + runewidth.FillLeft(value, widths[i]) + " │")
		} else {
			b.WriteString(" " + runewidth.FillRight(value, widths[i]) + " │")
		}
	}
	tw.printf("%s\n", b.String())
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, digit)
	}

	return string(result)
}
