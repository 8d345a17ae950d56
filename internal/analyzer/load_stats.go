package analyzer

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/cache"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// LoadStats counts what happened to each data file during a load.
type LoadStats struct {
	totalFiles   int64
	cacheHits    int64
	cacheMisses  int64
	failures     int64
	skippedLines int64
	mu           sync.Mutex
	missDetails  []MissDetail
}

// MissDetail records details of a cache miss
type MissDetail struct {
	FilePath string
	Reason   cache.MissReason
}

// NewLoadStats creates a new LoadStats instance
func NewLoadStats() *LoadStats {
	return &LoadStats{
		missDetails: make([]MissDetail, 0),
	}
}

// IncrementTotal increases the total file count
func (ls *LoadStats) IncrementTotal() {
	atomic.AddInt64(&ls.totalFiles, 1)
}

// IncrementHit increases the cache hit count
func (ls *LoadStats) IncrementHit() {
	atomic.AddInt64(&ls.cacheHits, 1)
}

// IncrementMiss increases the cache miss count and records the miss detail
func (ls *LoadStats) IncrementMiss(filePath string, reason cache.MissReason) {
	atomic.AddInt64(&ls.cacheMisses, 1)

	ls.mu.Lock()
	ls.missDetails = append(ls.missDetails, MissDetail{
		FilePath: filePath,
		Reason:   reason,
	})
	ls.mu.Unlock()
}

// IncrementFailure increases the failure count
func (ls *LoadStats) IncrementFailure() {
	atomic.AddInt64(&ls.failures, 1)
}

// AddSkipped adds undecodable lines of one file.
func (ls *LoadStats) AddSkipped(n int) {
	atomic.AddInt64(&ls.skippedLines, int64(n))
}

// GetStats returns the current statistics and hit rate
func (ls *LoadStats) GetStats() (total, hits, misses, failures int64, hitRate float64) {
	total = atomic.LoadInt64(&ls.totalFiles)
	hits = atomic.LoadInt64(&ls.cacheHits)
	misses = atomic.LoadInt64(&ls.cacheMisses)
	failures = atomic.LoadInt64(&ls.failures)

	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return
}

// Skipped returns the number of undecodable lines seen.
func (ls *LoadStats) Skipped() int {
	return int(atomic.LoadInt64(&ls.skippedLines))
}

// PrintFinalStats logs the load statistics and a summary of cache miss reasons
func (ls *LoadStats) PrintFinalStats() {
	total, hits, misses, failures, hitRate := ls.GetStats()

	util.LogInfo(fmt.Sprintf("Load complete: %d files, cache hit rate %.1f%% (%d hits/%d misses/%d failures), %d lines skipped",
		total, hitRate, hits, misses, failures, ls.Skipped()))

	if misses > 0 {
		ls.mu.Lock()
		reasonCounts := make(map[cache.MissReason]int)
		for _, detail := range ls.missDetails {
			reasonCounts[detail.Reason]++
		}
		ls.mu.Unlock()

		for reason, count := range reasonCounts {
			util.LogDebug(fmt.Sprintf("  cache miss %s: %d files", reason, count))
		}
	}
}
