package e2e

import (
	"regexp"
	"strings"
)

// ANSI escape code patterns
var (
	ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
	ansiHome   = regexp.MustCompile(`\x1b\[(?:2J|H|3J)`)
)

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// LastFrame returns the text drawn after the final screen clear or cursor
// home sequence, without escape codes.
func LastFrame(output string) string {
	locs := ansiHome.FindAllStringIndex(output, -1)
	if len(locs) > 0 {
		output = output[locs[len(locs)-1][1]:]
	}
	return StripANSI(output)
}

// Lines splits a frame into lines with trailing blanks removed.
func Lines(frame string) []string {
	raw := strings.Split(strings.TrimRight(frame, "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		out = append(out, strings.TrimRight(l, " "))
	}
	return out
}

// ContainsLine reports whether any line of frame contains text.
func ContainsLine(frame, text string) bool {
	for _, l := range Lines(frame) {
		if strings.Contains(l, text) {
			return true
		}
	}
	return false
}
