package analyzer

import (
	"fmt"
	"io"
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/crossfilter"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/metrics"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/selection"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/formatter"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// Analyzer loads the data path once, applies the configured filters and
// writes a snapshot of the result.
type Analyzer struct {
	config *Config
	loader *DataLoader
	out    io.Writer
	now    func() time.Time
}

func New(config *Config, out io.Writer) *Analyzer {
	return &Analyzer{
		config: config,
		loader: NewDataLoader(config, nil),
		out:    out,
		now:    time.Now,
	}
}

// Prepare loads the data and returns a controller with the configured
// filters installed.
func Prepare(loader *DataLoader, config *Config, recorder *metrics.Recorder) (*selection.Controller, *LoadResult, error) {
	res, err := loader.Load()
	if err != nil {
		return nil, res, err
	}

	tp := util.GetTimeProvider()
	c, err := selection.NewController(res.Store, selection.Config{TimeProvider: tp, Recorder: recorder})
	if err != nil {
		return nil, res, fmt.Errorf("failed to index records: %w", err)
	}
	if err := ApplyFilters(c, config, tp); err != nil {
		return nil, res, err
	}
	return c, res, nil
}

func (a *Analyzer) Run() error {
	startTime := time.Now()
	util.LogInfo("Starting media report...")

	if err := util.InitializeTimeProvider(a.config.Timezone); err != nil {
		return fmt.Errorf("failed to initialize timezone: %w", err)
	}

	f, err := formatter.New(a.config.OutputFormat)
	if err != nil {
		return err
	}

	c, res, err := Prepare(a.loader, a.config, nil)
	if err != nil {
		return err
	}
	if res.Validation != nil {
		util.LogWarn(res.Validation.Error())
	}

	limit := a.config.Limit
	if limit <= 0 {
		limit = crossfilter.Unbounded
	}
	snapshot := formatter.NewSnapshot(c, limit, a.now())

	outputStart := time.Now()
	err = f.Format(a.out, snapshot)
	util.LogDebug(fmt.Sprintf("Formatting and output duration: %v, total duration: %v",
		time.Since(outputStart), time.Since(startTime)))
	return err
}
