package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

const (
	minWidth     = 60
	defaultWidth = 80
	maxWidth     = 120
)

type Sizer struct {
}

// displayWidth calculates the actual display width of a string containing emojis and Unicode characters
func (i Sizer) displayWidth(s string) int {
	return runewidth.StringWidth(util.StripColor(s))
}

// PadString pads a string to a specific display width, handling wide runes
// and color sequences correctly
func (i Sizer) PadString(s string, width int, leftAlign bool) string {
	actualWidth := i.displayWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// GetMaxWidth returns the drawing width for the current terminal.
func (i Sizer) GetMaxWidth() int {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		termWidth = defaultWidth
	}
	return ClampWidth(termWidth)
}

// ClampWidth bounds a terminal width to the range layouts can draw in.
func ClampWidth(w int) int {
	if w < minWidth {
		return minWidth
	}
	if w > maxWidth {
		return maxWidth
	}
	return w
}
