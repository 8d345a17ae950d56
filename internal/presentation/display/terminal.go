package display

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/interaction"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/layout"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// displayMode is what occupies the screen.
type displayMode int

const (
	modeNormal displayMode = iota
	modeHelp
	modeLoading
	modeDialog
)

type TerminalDisplay struct {
	out               io.Writer
	width             func() int
	inAlternateScreen bool
	lastLayoutStyle   int
	isFirstRender     bool
	currentMode       displayMode
	lastDraw          time.Time
}

// NewTerminalDisplay draws frames to out, sized to the current terminal.
func NewTerminalDisplay(out io.Writer) *TerminalDisplay {
	sizer := layout.Sizer{}
	return &TerminalDisplay{
		out:           out,
		width:         sizer.GetMaxWidth,
		isFirstRender: true,
		currentMode:   modeNormal,
	}
}

// SetWidth fixes the drawing width instead of querying the terminal.
func (td *TerminalDisplay) SetWidth(w int) {
	w = layout.ClampWidth(w)
	td.width = func() int { return w }
}

// LastDraw returns when the last frame was written.
func (td *TerminalDisplay) LastDraw() time.Time {
	return td.lastDraw
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.EnterAltScreen, util.ClearScreen, util.ClearScrollback, util.MoveCursorHome, util.HideCursor)
	td.inAlternateScreen = true
	// Mark as first render to ensure clean start
	td.isFirstRender = true
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.ClearScreen, util.MoveCursorHome, util.ShowCursor, util.ExitAltScreen)
	td.inAlternateScreen = false
}

// ClearScreen clears the alternate screen buffer
func (td *TerminalDisplay) ClearScreen() {
	if td.inAlternateScreen {
		fmt.Fprint(td.out, util.ClearScreen, util.MoveCursorHome)
	}
}

// determineDisplayMode determines the current display mode based on interaction state
func determineDisplayMode(view *layout.DashboardView, state model.InteractionState) displayMode {
	// Priority order: Dialog > Help > Loading > Normal
	if state.ConfirmDialog != nil {
		return modeDialog
	}
	if state.ShowHelp {
		return modeHelp
	}
	// a reload keeps showing the previous data
	if state.IsLoading && view == nil {
		return modeLoading
	}
	return modeNormal
}

// RenderWithState draws one frame. view may be nil before the first load.
func (td *TerminalDisplay) RenderWithState(view *layout.DashboardView, state model.InteractionState) {
	newMode := determineDisplayMode(view, state)

	var frame bytes.Buffer
	if td.isFirstRender || newMode != td.currentMode || td.lastLayoutStyle != state.LayoutStyle {
		frame.WriteString(util.ClearScreen)
		td.isFirstRender = false
		td.currentMode = newMode
		td.lastLayoutStyle = state.LayoutStyle
	}
	frame.WriteString(util.MoveCursorHome)

	width := td.width()
	switch newMode {
	case modeDialog:
		renderConfirmDialog(&frame, state.ConfirmDialog, width)
	case modeHelp:
		renderHelp(&frame, width)
	case modeLoading:
		renderLoadingScreen(&frame, state.LoadingMessage, width)
	default:
		var v layout.DashboardView
		if view != nil {
			v = *view
		}
		if state.IsPaused {
			v.Title += " (paused)"
		}
		layout.GetLayoutStrategy(state.LayoutStyle).Render(&frame, &v, width)
	}
	// Clear from cursor to end of screen
	frame.WriteString("\033[J")

	if _, err := td.out.Write(frame.Bytes()); err != nil {
		util.LogDebug("frame write failed", util.F("error", err))
		return
	}
	td.lastDraw = time.Now()
}

func renderHelp(w io.Writer, width int) {
	fmt.Fprintln(w, util.FormatHeaderTitle("Media Dashboard - Help"))
	fmt.Fprintln(w, strings.Repeat("═", width))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keyboard Shortcuts:")
	fmt.Fprintln(w)
	keyWidth := 0
	for _, b := range interaction.HelpBindings {
		keyWidth = max(keyWidth, runewidth.StringWidth(b.Keys))
	}
	for _, b := range interaction.HelpBindings {
		fmt.Fprintf(w, "  %s - %s\n", runewidth.FillRight(b.Keys, keyWidth), b.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout Styles:")
	fmt.Fprintln(w, "  Full Dashboard - Legend, per-day histogram, marker list and details")
	fmt.Fprintln(w, "  Minimal        - One status line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("═", width))
	fmt.Fprintln(w, "Press 'h' to return...")
}

func renderConfirmDialog(w io.Writer, dialog *model.ConfirmDialog, width int) {
	boxWidth := 60
	padding := strings.Repeat(" ", max(0, (width-boxWidth)/2))

	fmt.Fprint(w, "\n\n\n\n\n")
	fmt.Fprintf(w, "%s╔%s╗\n", padding, strings.Repeat("═", boxWidth-2))
	fmt.Fprintf(w, "%s║%s║\n", padding, centerText(dialog.Title, boxWidth-2))
	fmt.Fprintf(w, "%s╠%s╣\n", padding, strings.Repeat("═", boxWidth-2))
	fmt.Fprintf(w, "%s║%s║\n", padding, strings.Repeat(" ", boxWidth-2))
	for _, line := range wrapText(dialog.Message, boxWidth-4) {
		fmt.Fprintf(w, "%s║ %s ║\n", padding, runewidth.FillRight(line, boxWidth-4))
	}
	fmt.Fprintf(w, "%s║%s║\n", padding, strings.Repeat(" ", boxWidth-2))
	fmt.Fprintf(w, "%s║%s║\n", padding, centerText("(Y)es / (N)o", boxWidth-2))
	fmt.Fprintf(w, "%s╚%s╝\n", padding, strings.Repeat("═", boxWidth-2))
}

// renderLoadingScreen displays a loading message with animation
func renderLoadingScreen(w io.Writer, message string, width int) {
	if message == "" {
		message = "Loading data..."
	}

	boxWidth := 50
	padding := strings.Repeat(" ", max(0, (width-boxWidth)/2))

	loadingChars := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	animIndex := int(time.Now().Unix()) % len(loadingChars)

	fmt.Fprint(w, "\n\n\n\n\n\n\n")
	fmt.Fprintf(w, "%s╔%s╗\n", padding, strings.Repeat("═", boxWidth-2))
	fmt.Fprintf(w, "%s║%s║\n", padding, centerText("Media Dashboard", boxWidth-2))
	fmt.Fprintf(w, "%s╠%s╣\n", padding, strings.Repeat("═", boxWidth-2))
	fmt.Fprintf(w, "%s║%s║\n", padding, strings.Repeat(" ", boxWidth-2))
	fmt.Fprintf(w, "%s║%s║\n", padding, centerText(loadingChars[animIndex]+" "+message, boxWidth-2))
	fmt.Fprintf(w, "%s║%s║\n", padding, strings.Repeat(" ", boxWidth-2))
	fmt.Fprintf(w, "%s║%s║\n", padding, centerText("Press 'q' to quit", boxWidth-2))
	fmt.Fprintf(w, "%s╚%s╝\n", padding, strings.Repeat("═", boxWidth-2))
}

func centerText(text string, width int) string {
	text = util.Truncate(text, width)
	gap := width - runewidth.StringWidth(text)
	left := gap / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if text == "" {
		return []string{}
	}
	if runewidth.StringWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(text) {
		if currentLine == "" {
			currentLine = word
		} else if runewidth.StringWidth(currentLine)+1+runewidth.StringWidth(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}
