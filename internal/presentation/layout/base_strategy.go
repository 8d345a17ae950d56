package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct {
}

// GetSizer returns the shared sizer instance
func (b *BaseStrategy) GetSizer() *Sizer {
	return sharedSizer
}

// TopBorder draws the rounded top edge of a box of the given width.
func (b *BaseStrategy) TopBorder(w io.Writer, width int) {
	fmt.Fprintln(w, "╭"+strings.Repeat("─", width-2)+"╮")
}

// BottomBorder draws the rounded bottom edge.
func (b *BaseStrategy) BottomBorder(w io.Writer, width int) {
	fmt.Fprintln(w, "╰"+strings.Repeat("─", width-2)+"╯")
}

// Separator draws a horizontal rule inside the box.
func (b *BaseStrategy) Separator(w io.Writer, width int) {
	fmt.Fprintln(w, "├"+strings.Repeat("─", width-2)+"┤")
}

// BoxLine draws content left-aligned between the box edges, truncating it
// when it is too wide.
func (b *BaseStrategy) BoxLine(w io.Writer, content string, width int) {
	inner := width - 4
	if b.GetSizer().displayWidth(content) > inner {
		content = util.Truncate(util.StripColor(content), inner)
	}
	fmt.Fprintln(w, "│ "+b.GetSizer().PadString(content, inner, true)+" │")
}

// SplitLine draws left and right content on one box line.
func (b *BaseStrategy) SplitLine(w io.Writer, left, right string, width int) {
	inner := width - 4
	gap := inner - b.GetSizer().displayWidth(left) - b.GetSizer().displayWidth(right)
	if gap < 1 {
		b.BoxLine(w, left, width)
		return
	}
	b.BoxLine(w, left+strings.Repeat(" ", gap)+right, width)
}

// CenterText centers text within the given width
func (b *BaseStrategy) CenterText(text string, width int) string {
	padding := width - b.GetSizer().displayWidth(text)
	if padding <= 0 {
		return text
	}
	leftPad := padding / 2
	rightPad := padding - leftPad
	return strings.Repeat(" ", leftPad) + text + strings.Repeat(" ", rightPad)
}

// SelectionSummary formats "selected / total" with the excluded count.
func (b *BaseStrategy) SelectionSummary(v *DashboardView) string {
	s := fmt.Sprintf("%s / %s records", util.FormatNumber(v.Selected), util.FormatNumber(v.Total))
	if v.Excluded > 0 {
		s += fmt.Sprintf(" (%d excluded)", v.Excluded)
	}
	return s
}

// RangeSummary formats the active time range.
func (b *BaseStrategy) RangeSummary(v *DashboardView) string {
	if !v.HasRange {
		return "all time"
	}
	return fmt.Sprintf("%s .. %s", util.FormatDay(v.From), util.FormatDay(v.To))
}

// StackedBar draws counts as adjacent colored segments scaled against peak.
// Each series keeps its color index so bars line up with the legend.
func StackedBar(counts []int, peak, width int) string {
	if peak <= 0 || width <= 0 {
		return ""
	}

	var b strings.Builder
	used := 0
	total := 0
	for i, c := range counts {
		if c <= 0 {
			continue
		}
		total += c
		// cumulative rounding keeps the bar length proportional to the total
		end := total * width / peak
		if end == used && used < width {
			end = used + 1
		}
		if end > width {
			end = width
		}
		if end > used {
			b.WriteString(util.Colorize(util.SeriesColor(i), strings.Repeat("█", end-used)))
			used = end
		}
	}
	return b.String()
}
