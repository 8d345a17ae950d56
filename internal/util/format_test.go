package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{"zero", 0, "0"},
		{"small number", 42, "42"},
		{"hundreds", 999, "999"},
		{"exactly 1000", 1000, "1.0K"},
		{"thousands", 1500, "1.5K"},
		{"millions", 2500000, "2.5M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNumber(tt.input))
		})
	}
}

func TestFormatCoordinate(t *testing.T) {
	assert.Equal(t, "52.45000, 13.52000", FormatCoordinate(52.45, 13.52))
	assert.Equal(t, "-33.86880, 151.20930", FormatCoordinate(-33.8688, 151.2093))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "Noise", 10, "Noise"},
		{"exact", "Noise", 5, "Noise"},
		{"ellipsis", "Noise pollution", 8, "Noise p…"},
		{"wide runes", "騒音公害", 5, "騒音…"},
		{"zero width", "Noise", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.width)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, GetDisplayWidth(got), max(tt.width, 0))
		})
	}
}

func TestColorHelpers(t *testing.T) {
	colored := Colorize(ColorRed, "alert")
	assert.Equal(t, "alert", StripColor(colored))
	assert.Equal(t, "Title", StripColor(FormatHeaderTitle("Title")))
	assert.Equal(t, "Section", StripColor(FormatSectionTitle("Section")))

	assert.Equal(t, SeriesColor(0), SeriesColor(len(categoryPalette)))
	assert.Equal(t, SeriesColor(1), SeriesColor(-1))
	assert.NotEqual(t, SeriesColor(0), SeriesColor(1))

	assert.Equal(t, 2, GetDisplayWidth("騒"))
}
