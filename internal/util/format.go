package util

import (
	"fmt"
	"strings"
	"time"
)

// FormatNumber renders a count with K/M suffixes above a thousand.
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatCoordinate renders a lat/lng pair with five decimals (about one meter).
func FormatCoordinate(lat, lng float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lng)
}

// FormatDay renders the day of t in the configured timezone.
func FormatDay(t time.Time) string {
	return GetTimeProvider().Format(t, "2006-01-02")
}

// FormatTimestamp renders t in the configured timezone.
func FormatTimestamp(t time.Time) string {
	return GetTimeProvider().Format(t, "2006-01-02 15:04")
}

// Truncate shortens s to at most width display columns, adding an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if GetDisplayWidth(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	for _, r := range s {
		w := GetDisplayWidth(string(r))
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	b.WriteString("…")
	return b.String()
}
