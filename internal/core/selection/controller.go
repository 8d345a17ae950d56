package selection

import (
	"fmt"
	"slices"
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/crossfilter"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/marker"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/metrics"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/store"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/data/aggregator"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// Dimension names
const (
	DimensionIdentity = "identity"
	DimensionTime     = "time"
	DimensionCategory = "category"
)

// SelectionObserver is called once per completed filter cascade with the new
// selection set. Observers receive their own copy.
type SelectionObserver func(selection []*model.Record)

// MarkerObserver is called once per completed click transition with the
// current selection view and machine state.
type MarkerObserver func(view []*model.Record, state marker.State)

// Config holds optional collaborators of a controller.
type Config struct {
	TimeProvider *util.TimeProvider // day buckets; defaults to the global provider
	Recorder     *metrics.Recorder  // may be nil
}

// Controller coordinates the category and time filters over one store and
// publishes the resulting selection to subscribed views. It is not safe for
// concurrent use; callers serialize events.
type Controller struct {
	store    *store.Store
	tp       *util.TimeProvider
	recorder *metrics.Recorder

	filter      *crossfilter.Filter[*model.Record]
	identityDim *crossfilter.Dimension[*model.Record, int]
	timeDim     *crossfilter.Dimension[*model.Record, int64]
	categoryDim *crossfilter.Dimension[*model.Record, int]

	categoryTotals *crossfilter.Group[*model.Record, int, int]
	stackedByDay   *crossfilter.Group[*model.Record, int64, aggregator.CategoryCounts]

	activeCategories map[int]bool // nil while no category filter is installed
	timeRange        *[2]time.Time

	markers           *marker.Machine
	selectionObserver []SelectionObserver
	markerObserver    []MarkerObserver
}

// NewController indexes every record of st.
func NewController(st *store.Store, cfg Config) (*Controller, error) {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = util.GetTimeProvider()
	}

	c := &Controller{
		store:    st,
		tp:       tp,
		recorder: cfg.Recorder,
		filter:   crossfilter.New(st.All()),
		markers:  marker.NewMachine(),
	}

	var err error
	if c.identityDim, err = crossfilter.NewDimension(c.filter, DimensionIdentity, func(r *model.Record) int { return r.ID }); err != nil {
		return nil, fmt.Errorf("identity dimension: %w", err)
	}
	if c.timeDim, err = crossfilter.NewDimension(c.filter, DimensionTime, (*model.Record).TimeKey); err != nil {
		return nil, fmt.Errorf("time dimension: %w", err)
	}
	if c.categoryDim, err = crossfilter.NewDimension(c.filter, DimensionCategory, (*model.Record).CategoryID); err != nil {
		return nil, fmt.Errorf("category dimension: %w", err)
	}

	categoryIDs := st.CategoryIDs()
	c.categoryTotals = crossfilter.NewGroup(c.categoryDim, crossfilter.Count[*model.Record](),
		crossfilter.WithCompleteKeyspace(categoryIDs...))
	c.stackedByDay = crossfilter.NewGroup(c.timeDim, aggregator.StackedByCategory(categoryIDs),
		crossfilter.WithBucket(tp.DayKey))

	c.markers.Reset(c.CurrentSelection())
	c.recorder.ObserveSelection(c.filter.SelectedCount())
	return c, nil
}

// Store returns the store the controller indexes.
func (c *Controller) Store() *store.Store {
	return c.store
}

// OnSelectionChanged subscribes to completed filter cascades.
func (c *Controller) OnSelectionChanged(obs SelectionObserver) {
	c.selectionObserver = append(c.selectionObserver, obs)
}

// OnMarkerStateChanged subscribes to completed click transitions.
func (c *Controller) OnMarkerStateChanged(obs MarkerObserver) {
	c.markerObserver = append(c.markerObserver, obs)
}

// SetCategoryFilter keeps records whose category is one of ids. An empty set
// selects nothing. Ids outside the loaded category set match nothing and are
// reported through *UnknownCategoryError after the filter is applied.
func (c *Controller) SetCategoryFilter(ids []int) error {
	active := make(map[int]bool, len(ids))
	keys := make([]int, 0, len(ids))
	var unknown []int
	for _, id := range ids {
		if _, ok := c.store.Category(id); !ok {
			unknown = append(unknown, id)
			continue
		}
		if !active[id] {
			active[id] = true
			keys = append(keys, id)
		}
	}

	c.activeCategories = active
	c.cascade(c.categoryDim.FilterIn(keys...))

	if len(unknown) > 0 {
		slices.Sort(unknown)
		util.LogWarn("category filter references unknown ids", util.F("ids", unknown))
		return &UnknownCategoryError{IDs: unknown}
	}
	return nil
}

// ToggleCategory flips one category in the active set, as a legend click
// does. With no category filter installed every category counts as active.
func (c *Controller) ToggleCategory(id int) error {
	if _, ok := c.store.Category(id); !ok {
		return &UnknownCategoryError{IDs: []int{id}}
	}

	var ids []int
	for _, active := range c.ActiveCategories() {
		if active != id {
			ids = append(ids, active)
		}
	}
	if !c.IsCategoryActive(id) {
		ids = append(ids, id)
	}
	return c.SetCategoryFilter(ids)
}

// SelectAllCategories installs the full known category set. The ids come
// from the store, so no *UnknownCategoryError is expected.
func (c *Controller) SelectAllCategories() error {
	return c.SetCategoryFilter(c.store.CategoryIDs())
}

// ResetCategoryFilter removes the category predicate altogether.
func (c *Controller) ResetCategoryFilter() {
	c.activeCategories = nil
	c.cascade(c.categoryDim.FilterAll())
}

// SetTimeRange keeps records with lo <= timestamp < hi.
func (c *Controller) SetTimeRange(lo, hi time.Time) error {
	if hi.Before(lo) {
		return fmt.Errorf("set time range %s..%s: %w", lo.Format(time.RFC3339), hi.Format(time.RFC3339), ErrInvalidRange)
	}
	c.timeRange = &[2]time.Time{lo, hi}
	c.cascade(c.timeDim.FilterRange(lo.UnixMilli(), hi.UnixMilli()))
	return nil
}

// ResetTimeRange clears the time predicate.
func (c *Controller) ResetTimeRange() {
	c.timeRange = nil
	c.cascade(c.timeDim.FilterAll())
}

// Click forwards a marker click to the state machine and notifies marker
// observers when a transition happened.
func (c *Controller) Click(id int) error {
	tr, err := c.markers.Click(id)
	if err != nil {
		return err
	}
	c.recorder.ObserveClick(tr.String())
	util.LogDebug("marker transition", util.F("record", id), util.F("transition", tr.String()))

	view, state := c.markers.SelectionView(), c.markers.State()
	for _, obs := range c.markerObserver {
		obs(slices.Clone(view), state)
	}
	return nil
}

// cascade finishes a predicate change: the selection is rebuilt, marker
// highlight state is discarded and selection observers are notified.
func (c *Controller) cascade(ch crossfilter.Change) {
	sel := c.CurrentSelection()
	c.markers.Reset(sel)
	c.recorder.ObserveCascade(ch.Dimension, ch.Flipped, len(sel))
	util.LogDebug("filter cascade",
		util.F("dimension", ch.Dimension),
		util.F("flipped", ch.Flipped),
		util.F("entered", ch.Entered),
		util.F("left", ch.Left),
		util.F("selected", len(sel)))

	for _, obs := range c.selectionObserver {
		obs(slices.Clone(sel))
	}
}

// CurrentSelection returns the records passing every filter, by id. The
// filter indexes the store in id order, so position order is id order.
func (c *Controller) CurrentSelection() []*model.Record {
	return c.filter.Selection()
}

// SelectionView returns the highlighted record alone, or the whole selection.
func (c *Controller) SelectionView() []*model.Record {
	return c.markers.SelectionView()
}

// MarkerState returns the marker machine state.
func (c *Controller) MarkerState() marker.State {
	return c.markers.State()
}

// Latest returns up to n selected records, newest first.
func (c *Controller) Latest(n int) []*model.Record {
	return c.timeDim.Top(n)
}

// Categories returns the known categories by id.
func (c *Controller) Categories() []model.Category {
	return c.store.Categories()
}

// ActiveCategories returns the ids the category filter lets through, ascending.
func (c *Controller) ActiveCategories() []int {
	if c.activeCategories == nil {
		return c.store.CategoryIDs()
	}
	ids := make([]int, 0, len(c.activeCategories))
	for id := range c.activeCategories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// HasCategoryFilter reports whether a category predicate is installed.
func (c *Controller) HasCategoryFilter() bool {
	return c.activeCategories != nil
}

// IsCategoryActive reports whether the category filter lets id through.
func (c *Controller) IsCategoryActive(id int) bool {
	if c.activeCategories == nil {
		_, ok := c.store.Category(id)
		return ok
	}
	return c.activeCategories[id]
}

// TimeRange returns the installed time range, if any.
func (c *Controller) TimeRange() (lo, hi time.Time, ok bool) {
	if c.timeRange == nil {
		return time.Time{}, time.Time{}, false
	}
	return c.timeRange[0], c.timeRange[1], true
}

// CategoryTotals returns one legend entry per known category, zero counts
// included, counted over the records passing the time filter.
func (c *Controller) CategoryTotals() []aggregator.LegendEntry {
	totals := c.categoryTotals.All()
	out := make([]aggregator.LegendEntry, 0, len(totals))
	for _, kv := range totals {
		cat, _ := c.store.Category(kv.Key)
		out = append(out, aggregator.LegendEntry{
			Category: cat,
			Count:    kv.Value,
			Active:   c.IsCategoryActive(kv.Key),
		})
	}
	return out
}

// Histogram returns the stacked per-day histogram over the records passing
// the category filter.
func (c *Controller) Histogram() aggregator.Histogram {
	return aggregator.NewHistogram(c.store.Categories(), c.stackedByDay.All(), c.tp.Location())
}

// Extent returns the chart domain: first and last record instant, padded by
// one day on each side.
func (c *Controller) Extent() (from, to time.Time, ok bool) {
	keys := c.timeDim.Keys()
	if len(keys) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first := c.tp.In(time.UnixMilli(keys[0]))
	last := c.tp.In(time.UnixMilli(keys[len(keys)-1]))
	return first.AddDate(0, 0, -1), last.AddDate(0, 0, 1), true
}

// Bounds returns the bounding box of the current selection view.
func (c *Controller) Bounds() (aggregator.Bounds, bool) {
	return aggregator.BoundsOf(c.markers.SelectionView())
}
