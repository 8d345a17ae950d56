package util

import (
	"fmt"
	"regexp"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"
	ColorReverse = "\033[7m"

	ClearScreen     = "\033[2J"
	ClearLine       = "\033[2K"
	ClearScrollback = "\033[3J"
	MoveCursorHome  = "\033[H"
	HideCursor      = "\033[?25l"
	ShowCursor      = "\033[?25h"
	EnterAltScreen  = "\033[?1049h"
	ExitAltScreen   = "\033[?1049l"
)

// categoryPalette cycles through colors for stacked series, in category order.
var categoryPalette = []string{ColorGreen, ColorBlue, ColorYellow, ColorMagenta, ColorCyan, ColorRed}

// SeriesColor returns the color of the i-th stacked series.
func SeriesColor(i int) string {
	if i < 0 {
		i = -i
	}
	return categoryPalette[i%len(categoryPalette)]
}

var colorSequence = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripColor removes SGR color sequences from text.
func StripColor(text string) string {
	return colorSequence.ReplaceAllString(text, "")
}

// GetDisplayWidth calculates the actual display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Colorize wraps text in a color sequence
func Colorize(color, text string) string {
	return fmt.Sprintf("%s%s%s", color, text, ColorReset)
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// FormatSectionTitle formats section titles (Cyan + Bold)
func FormatSectionTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorCyan, title, ColorReset)
}
