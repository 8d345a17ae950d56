package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/marker"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// MinimalLayoutStrategy renders a single status line.
type MinimalLayoutStrategy struct {
	BaseStrategy
}

func (s *MinimalLayoutStrategy) GetName() string {
	return "Minimal Dashboard"
}

func (s *MinimalLayoutStrategy) Render(w io.Writer, v *DashboardView, width int) {
	var cats []string
	for _, e := range v.Legend {
		if e.Active {
			cats = append(cats, fmt.Sprintf("%s %d", e.Category.Shortname, e.Count))
		}
	}

	line := fmt.Sprintf("%s | %s | %s", s.SelectionSummary(v), s.RangeSummary(v), strings.Join(cats, ", "))
	if v.Marker.Mode == marker.OneSelected {
		line += fmt.Sprintf(" | marker %d", v.Marker.Active)
	}
	fmt.Fprintln(w, util.Truncate(line, width))
}
