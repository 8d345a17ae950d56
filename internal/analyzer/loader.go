package analyzer

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/cache"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/metrics"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/store"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/data/parser"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/data/scanner"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// LoadResult describes one completed load.
type LoadResult struct {
	Store      *store.Store
	Files      []string
	Failed     map[string]error
	Stats      *LoadStats
	Validation *store.ValidationError // nil when every record was valid
}

// Result classifies the load for metrics.
func (r *LoadResult) Result() string {
	switch {
	case r.Store == nil:
		return metrics.LoadFailed
	case r.Store.Len() == 0:
		return metrics.LoadEmpty
	case r.Validation != nil || len(r.Failed) > 0 || r.Stats.Skipped() > 0:
		return metrics.LoadPartial
	default:
		return metrics.LoadOK
	}
}

// DataLoader reads the configured data path into a store. Decoded files are
// kept in memory between loads so a reload only decodes changed files.
type DataLoader struct {
	config      *Config
	memoryCache *cache.MemoryCache
	parser      *parser.Parser
	recorder    *metrics.Recorder
}

// NewDataLoader creates a new DataLoader instance. recorder may be nil.
func NewDataLoader(config *Config, recorder *metrics.Recorder) *DataLoader {
	mc := cache.NewMemoryCache()
	return &DataLoader{
		config:      config,
		memoryCache: mc,
		parser:      parser.NewParser(config.Concurrency, mc),
		recorder:    recorder,
	}
}

// ScanFiles lists the data files to load: the data path itself, or every
// data file below it when it is a directory.
func (dl *DataLoader) ScanFiles() ([]string, error) {
	info, err := os.Stat(dl.config.DataPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return scanner.NewFileScanner(dl.config.DataPath).Scan()
	}
	if !scanner.IsDataFile(dl.config.DataPath) {
		return nil, fmt.Errorf("%s is not a %s or %s file", dl.config.DataPath, model.ExtJSON, model.ExtJSONL)
	}
	return []string{dl.config.DataPath}, nil
}

// Load scans, decodes and validates the data path.
//
// A file that cannot be decoded is skipped as long as another file can. The
// returned error matches store.ErrEmptyDataset when no record is valid; the
// result is still returned in that case so callers can report the
// validation errors.
func (dl *DataLoader) Load() (*LoadResult, error) {
	start := time.Now()

	files, err := dl.ScanFiles()
	if err != nil {
		dl.recorder.ObserveLoad(metrics.LoadFailed, 0)
		return nil, fmt.Errorf("failed to scan %s: %w", dl.config.DataPath, err)
	}
	if len(files) == 0 {
		dl.recorder.ObserveLoad(metrics.LoadFailed, 0)
		return nil, fmt.Errorf("no %s or %s files found in %s", model.ExtJSON, model.ExtJSONL, dl.config.DataPath)
	}
	util.LogDebug(fmt.Sprintf("Found %d data files", len(files)))

	res := &LoadResult{
		Files:  files,
		Failed: make(map[string]error),
		Stats:  NewLoadStats(),
	}

	byFile := make(map[string][]model.RawMediaData, len(files))
	var firstErr error
	for pr := range dl.parser.ParseFiles(files) {
		res.Stats.IncrementTotal()
		if pr.Error != nil {
			res.Stats.IncrementFailure()
			res.Failed[pr.File] = pr.Error
			if firstErr == nil {
				firstErr = pr.Error
			}
			util.LogWarn(fmt.Sprintf("Failed to parse %s: %v", pr.File, pr.Error))
			continue
		}
		if pr.CacheHit {
			res.Stats.IncrementHit()
		} else {
			res.Stats.IncrementMiss(pr.File, pr.MissReason)
		}
		res.Stats.AddSkipped(pr.Skipped)
		byFile[pr.File] = pr.Records
	}
	res.Stats.PrintFinalStats()

	if len(res.Failed) == len(files) {
		dl.recorder.ObserveLoad(metrics.LoadFailed, 0)
		return nil, fmt.Errorf("no data file could be read: %w", firstErr)
	}

	// files are scanned in sorted order; keep it so implicit ids are stable
	var raws []model.RawMediaData
	for _, f := range files {
		raws = append(raws, byFile[f]...)
	}

	st, err := store.Load(raws)
	res.Store = st
	errors.As(err, &res.Validation)
	dl.recorder.ObserveLoad(res.Result(), st.Excluded())

	util.LogInfo("data loaded",
		util.F("files", len(files)),
		util.F("records", st.Len()),
		util.F("excluded", st.Excluded()),
		util.F("duration", time.Since(start).String()))

	if errors.Is(err, store.ErrEmptyDataset) {
		return res, err
	}
	return res, nil
}

// GetMemoryCache returns the decode cache.
func (dl *DataLoader) GetMemoryCache() *cache.MemoryCache {
	return dl.memoryCache
}
