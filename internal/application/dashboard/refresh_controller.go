package dashboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/analyzer"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/marker"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/metrics"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/selection"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/display"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// RefreshController builds controllers from data loads and keeps the marker
// panel subscribed to the newest one.
type RefreshController struct {
	config   *Config
	loader   *analyzer.DataLoader
	recorder *metrics.Recorder
	panel    *display.MarkerPanel

	refreshMutex sync.Mutex // Prevent concurrent refreshes
}

// NewRefreshController creates a new RefreshController instance
func NewRefreshController(config *Config, loader *analyzer.DataLoader, recorder *metrics.Recorder, panel *display.MarkerPanel) *RefreshController {
	return &RefreshController{
		config:   config,
		loader:   loader,
		recorder: recorder,
		panel:    panel,
	}
}

// Initial performs the first load and installs the configured filters.
func (rc *RefreshController) Initial() (*selection.Controller, error) {
	rc.refreshMutex.Lock()
	defer rc.refreshMutex.Unlock()

	c, res, err := analyzer.Prepare(rc.loader, &rc.config.Config, rc.recorder)
	if err != nil {
		return nil, err
	}
	if res.Validation != nil {
		util.LogWarn(res.Validation.Error())
	}
	rc.panel.Attach(c)
	return c, nil
}

// Reload loads the data path again and carries the filters and marker
// selection of prev over to the new controller. On error the caller keeps
// prev; a load without valid records counts as an error.
func (rc *RefreshController) Reload(prev *selection.Controller) (*selection.Controller, error) {
	rc.refreshMutex.Lock()
	defer rc.refreshMutex.Unlock()

	res, err := rc.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("reload: %w", err)
	}

	c, err := selection.NewController(res.Store, selection.Config{
		TimeProvider: util.GetTimeProvider(),
		Recorder:     rc.recorder,
	})
	if err != nil {
		return nil, fmt.Errorf("reload: %w", err)
	}
	if prev != nil {
		carryOver(prev, c)
	}

	rc.panel.Attach(c)
	util.LogInfo("data reloaded", util.F("records", res.Store.Len()), util.F("excluded", res.Store.Excluded()))
	return c, nil
}

// carryOver installs the filters of prev on next. Categories or records that
// disappeared simply match nothing.
func carryOver(prev, next *selection.Controller) {
	if prev.HasCategoryFilter() {
		var unknown *selection.UnknownCategoryError
		if err := next.SetCategoryFilter(prev.ActiveCategories()); err != nil && !errors.As(err, &unknown) {
			util.LogWarn("category filter not carried over", util.F("error", err))
		}
	}
	if lo, hi, ok := prev.TimeRange(); ok {
		if err := next.SetTimeRange(lo, hi); err != nil {
			util.LogWarn("time range not carried over", util.F("error", err))
		}
	}
	if st := prev.MarkerState(); st.Mode == marker.OneSelected {
		if err := next.Click(st.Active); err != nil {
			util.LogDebug("marker selection dropped on reload", util.F("record", st.Active))
		}
	}
}
