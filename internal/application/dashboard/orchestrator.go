package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/analyzer"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/marker"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/metrics"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/selection"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/display"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/interaction"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/layout"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

const day = 24 * time.Hour

// Orchestrator coordinates all components for the watch command
type Orchestrator struct {
	config *Config

	// Core components
	dataLoader   *analyzer.DataLoader
	refreshCtrl  *RefreshController
	stateManager *StateManager

	// UI components
	panel    *display.MarkerPanel
	display  DisplayController
	keyboard InputHandler
	sorter   *interaction.RecordSorter

	// Monitoring
	watcher       FileMonitor
	pendingReload bool

	newInput   func() (InputHandler, error)
	newMonitor func(path string) (FileMonitor, error)
	now        func() time.Time
}

// NewOrchestrator creates a new Orchestrator instance. recorder may be nil.
func NewOrchestrator(config *Config, disp DisplayController, recorder *metrics.Recorder) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dataLoader := analyzer.NewDataLoader(&config.Config, recorder)
	panel := display.NewMarkerPanel()

	return &Orchestrator{
		config:       config,
		dataLoader:   dataLoader,
		refreshCtrl:  NewRefreshController(config, dataLoader, recorder, panel),
		stateManager: NewStateManager(),
		panel:        panel,
		display:      disp,
		sorter:       interaction.NewRecordSorter(),
		newInput: func() (InputHandler, error) {
			return interaction.NewKeyboardReader()
		},
		newMonitor: func(path string) (FileMonitor, error) {
			return NewFileWatcher(path)
		},
		now: time.Now,
	}, nil
}

// Run starts the orchestrator main loop
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting media dashboard...")

	defer o.Close()

	if err := util.InitializeTimeProvider(o.config.Timezone); err != nil {
		return fmt.Errorf("failed to initialize timezone: %w", err)
	}

	keyboard, err := o.newInput()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	o.stateManager.SetLoadingState(true, "Loading media records...")
	o.updateDisplay()

	c, err := o.refreshCtrl.Initial()
	if err != nil {
		return fmt.Errorf("initial load failed: %w", err)
	}
	o.stateManager.SetController(c)
	o.stateManager.SetLoadingState(false, "")

	var fileEvents <-chan model.FileEvent
	if watcher, err := o.newMonitor(o.config.DataPath); err != nil {
		util.LogWarn("file watching disabled", util.F("error", err))
	} else {
		o.watcher = watcher
		fileEvents = watcher.Events()
	}

	uiTicker := time.NewTicker(time.Duration(float64(time.Second) / o.config.UIRefreshRate))
	defer uiTicker.Stop()

	var dataTick <-chan time.Time
	if o.config.RefreshInterval > 0 {
		dataTicker := time.NewTicker(o.config.RefreshInterval)
		defer dataTicker.Stop()
		dataTick = dataTicker.C
	}

	o.updateDisplay()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down media dashboard...")
			return nil

		case <-uiTicker.C:
			state := o.stateManager.GetInteractionState()
			if state.IsPaused {
				continue
			}
			if o.pendingReload {
				o.pendingReload = false
				o.reload()
			}
			o.updateDisplay()

		case <-dataTick:
			if !o.stateManager.GetInteractionState().IsPaused {
				o.reload()
			}

		case event := <-fileEvents:
			// bursts of writes collapse into one reload on the next tick
			util.LogDebug("data file changed", util.F("path", event.Path), util.F("op", event.Operation))
			o.pendingReload = true

		case keyEvent := <-o.keyboard.Events():
			if o.handleKeyboard(keyEvent) {
				return nil
			}
			o.updateDisplay()
		}
	}
}

// updateDisplay draws the current controller state.
func (o *Orchestrator) updateDisplay() {
	o.display.RenderWithState(o.currentView(), o.stateManager.GetInteractionState())
}

func (o *Orchestrator) currentView() *layout.DashboardView {
	return BuildView(o.config.Title, o.stateManager.GetController(), o.panel, o.sorter,
		o.stateManager.GetInteractionState(), o.now())
}

// reload swaps in a fresh controller. The previous one stays on failure.
func (o *Orchestrator) reload() bool {
	o.stateManager.SetLoadingState(true, "Reloading media records...")
	defer o.stateManager.SetLoadingState(false, "")

	c, err := o.refreshCtrl.Reload(o.stateManager.GetController())
	if err != nil {
		util.LogError("Failed to reload data", util.F("error", err))
		o.stateManager.SetStatusMessage(fmt.Sprintf("reload failed, keeping previous data: %v", err))
		return false
	}

	o.stateManager.SetController(c)
	o.stateManager.SetStatusMessage(fmt.Sprintf("reloaded %d records", c.Store().Len()))
	o.clampCursors()
	return true
}

// handleKeyboard handles keyboard events and reports whether to exit.
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	state := o.stateManager.GetInteractionState()

	// Handle confirm dialog inputs first
	if dialog := state.ConfirmDialog; dialog != nil {
		switch {
		case event.Type == interaction.KeyChar && (event.Key == 'y' || event.Key == 'Y'):
			if dialog.OnConfirm != nil {
				dialog.OnConfirm()
			}
			o.display.ClearScreen()
		case event.Type == interaction.KeyEscape,
			event.Type == interaction.KeyChar && (event.Key == 'n' || event.Key == 'N'):
			if dialog.OnCancel != nil {
				dialog.OnCancel()
			}
			o.display.ClearScreen()
		}
		return false // Ignore other keys when dialog is open
	}

	action := interaction.ActionFor(event)
	if state.ShowHelp && !allowedInHelp(action) {
		return false
	}
	return o.handleAction(action)
}

// allowedInHelp reports whether action may run while help is shown.
func allowedInHelp(action interaction.Action) bool {
	switch action {
	case interaction.ActionQuit, interaction.ActionHelp, interaction.ActionClose:
		return true
	}
	return false
}

// handleAction applies one dashboard action and reports whether to exit.
func (o *Orchestrator) handleAction(action interaction.Action) bool {
	c := o.stateManager.GetController()

	switch action {
	case interaction.ActionQuit:
		return true
	case interaction.ActionClose:
		if !o.stateManager.GetInteractionState().ShowHelp {
			return true
		}
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = false
		})
	case interaction.ActionHelp:
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = !s.ShowHelp
		})
	case interaction.ActionRefresh:
		o.reload()
	case interaction.ActionClearCache:
		o.clearCache()
	case interaction.ActionPause:
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.IsPaused = !s.IsPaused
		})
	case interaction.ActionCycleLayout:
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.LayoutStyle = layout.NextStyle(s.LayoutStyle)
		})
	case interaction.ActionCycleSort:
		o.sorter.Cycle()
		o.stateManager.SetStatusMessage("sorted by " + o.sorter.Field().String())
	case interaction.ActionSwitchFocus:
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			if layout.Focus(s.Focus) == layout.FocusMarkers {
				s.Focus = int(layout.FocusLegend)
			} else {
				s.Focus = int(layout.FocusMarkers)
			}
		})
	case interaction.ActionCursorUp:
		o.moveCursor(-1)
	case interaction.ActionCursorDown:
		o.moveCursor(1)
	}

	if c == nil {
		return false
	}

	switch action {
	case interaction.ActionActivate:
		o.activate(c)
	case interaction.ActionSelectAllCategories:
		if err := c.SelectAllCategories(); err != nil {
			o.stateManager.SetStatusMessage(err.Error())
		}
	case interaction.ActionResetCategories:
		c.ResetCategoryFilter()
	case interaction.ActionRangeBack:
		o.shiftRange(c, -1)
	case interaction.ActionRangeForward:
		o.shiftRange(c, 1)
	case interaction.ActionRangeWiden:
		o.resizeRange(c, day)
	case interaction.ActionRangeNarrow:
		o.resizeRange(c, -day)
	case interaction.ActionResetRange:
		c.ResetTimeRange()
	default:
		return false
	}
	o.clampCursors()
	return false
}

// activate clicks the marker under the cursor or toggles the legend entry
// under the cursor, depending on focus.
func (o *Orchestrator) activate(c *selection.Controller) {
	state := o.stateManager.GetInteractionState()

	if layout.Focus(state.Focus) == layout.FocusLegend {
		legend := c.CategoryTotals()
		if state.LegendCursor >= len(legend) {
			return
		}
		if err := c.ToggleCategory(legend[state.LegendCursor].Category.ID); err != nil {
			o.stateManager.SetStatusMessage(err.Error())
		}
		return
	}

	markers := sortedMarkers(o.panel, o.sorter)
	if state.Cursor >= len(markers) {
		return
	}
	id := markers[state.Cursor].ID
	if err := c.Click(id); err != nil {
		o.stateManager.SetStatusMessage(err.Error())
		return
	}

	// keep the cursor on the clicked record
	cursor := 0
	if c.MarkerState().Mode == marker.Unselected {
		for i, r := range sortedMarkers(o.panel, o.sorter) {
			if r.ID == id {
				cursor = i
				break
			}
		}
	}
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.Cursor = cursor
	})
}

// activeRange returns the installed time range, or the day of the newest
// record when none is set.
func activeRange(c *selection.Controller) (time.Time, time.Time, bool) {
	if lo, hi, ok := c.TimeRange(); ok {
		return lo, hi, true
	}
	_, to, ok := c.Extent()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	newest := to.AddDate(0, 0, -1)
	lo := util.GetTimeProvider().StartOfDay(newest)
	return lo, lo.Add(day), true
}

// shiftRange moves the time range by its own width.
func (o *Orchestrator) shiftRange(c *selection.Controller, dir int) {
	lo, hi, ok := activeRange(c)
	if !ok {
		return
	}
	if _, _, set := c.TimeRange(); set {
		width := hi.Sub(lo) * time.Duration(dir)
		lo, hi = lo.Add(width), hi.Add(width)
	}
	o.setRange(c, lo, hi)
}

// resizeRange moves the lower bound by delta; positive delta widens.
func (o *Orchestrator) resizeRange(c *selection.Controller, delta time.Duration) {
	lo, hi, ok := activeRange(c)
	if !ok {
		return
	}
	lo = lo.Add(-delta)
	if !lo.Before(hi) {
		o.stateManager.SetStatusMessage("range cannot be narrower than one day")
		return
	}
	o.setRange(c, lo, hi)
}

func (o *Orchestrator) setRange(c *selection.Controller, lo, hi time.Time) {
	if err := c.SetTimeRange(lo, hi); err != nil {
		if errors.Is(err, selection.ErrInvalidRange) {
			o.stateManager.SetStatusMessage("invalid time range")
			return
		}
		o.stateManager.SetStatusMessage(err.Error())
		return
	}
	o.stateManager.SetStatusMessage(fmt.Sprintf("range %s .. %s", util.FormatDay(lo), util.FormatDay(hi)))
}

// moveCursor moves the cursor of the focused list.
func (o *Orchestrator) moveCursor(delta int) {
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		if layout.Focus(s.Focus) == layout.FocusLegend {
			s.LegendCursor += delta
		} else {
			s.Cursor += delta
		}
	})
	o.clampCursors()
}

// clampCursors keeps both cursors inside their lists.
func (o *Orchestrator) clampCursors() {
	c := o.stateManager.GetController()
	markers, legend := 0, 0
	if c != nil {
		records, _ := o.panel.Snapshot()
		markers, legend = len(records), len(c.Categories())
	}
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.Cursor = clamp(s.Cursor, 0, markers-1)
		s.LegendCursor = clamp(s.LegendCursor, 0, legend-1)
	})
}

// clearCache drops decoded files after confirmation and reloads from disk.
func (o *Orchestrator) clearCache() {
	closeDialog := func() {
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ConfirmDialog = nil
		})
	}

	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.ConfirmDialog = &model.ConfirmDialog{
			Title:   "Clear Memory Cache",
			Message: "This will drop all decoded files and reload every data file from disk. Continue?",
			OnConfirm: func() {
				closeDialog()
				mc := o.dataLoader.GetMemoryCache()
				mc.Clear()
				if o.reload() {
					mc.CommitClear()
					util.LogInfo("Memory cache cleared and data reloaded")
					return
				}
				mc.CancelClear()
			},
			OnCancel: closeDialog,
		}
	})
}

// Close cleans up all resources
func (o *Orchestrator) Close() error {
	var errs []error
	if o.keyboard != nil {
		errs = append(errs, o.keyboard.Close())
		o.keyboard = nil
	}
	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close file watcher: %w", err))
		}
		o.watcher = nil
	}
	return errors.Join(errs...)
}
