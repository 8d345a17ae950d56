package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/marker"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/selection"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/store"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/layout"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/testing/e2e"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/testing/fixtures"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)

func newController(t *testing.T) *selection.Controller {
	t.Helper()
	require.NoError(t, util.InitializeTimeProvider("UTC"))
	st, err := store.Load(fixtures.SimpleDataset(start))
	require.NoError(t, err)
	c, err := selection.NewController(st, selection.Config{})
	require.NoError(t, err)
	return c
}

func recordIDs(records []*model.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestMarkerPanelFollowsNotifications(t *testing.T) {
	c := newController(t)
	p := NewMarkerPanel()
	p.Attach(c)

	records, state := p.Snapshot()
	assert.Equal(t, []int{1, 2, 3}, recordIDs(records))
	assert.Equal(t, marker.Unselected, state.Mode)

	require.NoError(t, c.SetCategoryFilter([]int{1}))
	records, _ = p.Snapshot()
	assert.Equal(t, []int{1, 3}, recordIDs(records))

	require.NoError(t, c.Click(3))
	records, state = p.Snapshot()
	assert.Equal(t, []int{3}, recordIDs(records))
	assert.Equal(t, marker.State{Mode: marker.OneSelected, Active: 3}, state)

	// a filter change clears the highlight
	c.ResetCategoryFilter()
	records, state = p.Snapshot()
	assert.Equal(t, []int{1, 2, 3}, recordIDs(records))
	assert.Equal(t, marker.Unselected, state.Mode)

	assert.Equal(t, 4, p.Updates())
}

func TestMarkerPanelSnapshotIsCopy(t *testing.T) {
	c := newController(t)
	p := NewMarkerPanel()
	p.Attach(c)

	records, _ := p.Snapshot()
	records[0] = nil
	again, _ := p.Snapshot()
	assert.NotNil(t, again[0])
}

func TestRenderWithStateModes(t *testing.T) {
	require.NoError(t, util.InitializeTimeProvider("UTC"))
	view := &layout.DashboardView{Title: "Media Dashboard", Total: 3, Selected: 3}

	tests := []struct {
		name  string
		view  *layout.DashboardView
		state model.InteractionState
		want  string
	}{
		{"normal", view, model.InteractionState{}, "3 / 3 records"},
		{"paused", view, model.InteractionState{IsPaused: true}, "Media Dashboard (paused)"},
		{"help", view, model.InteractionState{ShowHelp: true}, "Keyboard Shortcuts:"},
		{"loading", nil, model.InteractionState{IsLoading: true, LoadingMessage: "Loading media..."}, "Loading media..."},
		{"reload keeps data", view, model.InteractionState{IsLoading: true}, "3 / 3 records"},
		{"dialog", view, model.InteractionState{ConfirmDialog: &model.ConfirmDialog{Title: "Clear Cache", Message: "Continue?"}}, "(Y)es / (N)o"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			td := NewTerminalDisplay(&buf)
			td.SetWidth(80)
			td.RenderWithState(tt.view, tt.state)

			frame := e2e.LastFrame(buf.String())
			assert.True(t, e2e.ContainsLine(frame, tt.want), frame)
			assert.False(t, td.LastDraw().IsZero())
		})
	}
	assert.Equal(t, "Media Dashboard", view.Title)
}

func TestRenderClearsOnlyOnTransitions(t *testing.T) {
	var buf bytes.Buffer
	td := NewTerminalDisplay(&buf)
	td.SetWidth(80)
	view := &layout.DashboardView{Title: "Media Dashboard"}

	td.RenderWithState(view, model.InteractionState{})
	assert.Equal(t, 1, strings.Count(buf.String(), util.ClearScreen))

	td.RenderWithState(view, model.InteractionState{})
	assert.Equal(t, 1, strings.Count(buf.String(), util.ClearScreen))

	td.RenderWithState(view, model.InteractionState{ShowHelp: true})
	assert.Equal(t, 2, strings.Count(buf.String(), util.ClearScreen))

	td.RenderWithState(view, model.InteractionState{LayoutStyle: layout.StyleMinimal})
	assert.Equal(t, 3, strings.Count(buf.String(), util.ClearScreen))
}

func TestAlternateScreen(t *testing.T) {
	var buf bytes.Buffer
	td := NewTerminalDisplay(&buf)

	td.EnterAlternateScreen()
	td.EnterAlternateScreen()
	assert.Equal(t, 1, strings.Count(buf.String(), util.EnterAltScreen))

	td.ExitAlternateScreen()
	td.ExitAlternateScreen()
	assert.Equal(t, 1, strings.Count(buf.String(), util.ExitAltScreen))
}

func TestWrapText(t *testing.T) {
	assert.Empty(t, wrapText("", 10))
	assert.Equal(t, []string{"short"}, wrapText("short", 10))
	assert.Equal(t, []string{"one two", "three"}, wrapText("one two three", 8))
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab  ", centerText("ab", 6))
	assert.Equal(t, " ab  ", centerText("ab", 5))
}
