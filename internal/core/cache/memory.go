package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// MissReason explains why a lookup did not return cached records.
type MissReason int

const (
	MissReasonNone MissReason = iota
	MissReasonNotFound
	MissReasonSize
	MissReasonModTime
)

func (r MissReason) String() string {
	switch r {
	case MissReasonNone:
		return "hit"
	case MissReasonNotFound:
		return "not found"
	case MissReasonSize:
		return "size changed"
	case MissReasonModTime:
		return "modtime changed"
	default:
		return "unknown"
	}
}

// Entry holds the decoded records of one input file together with the file
// attributes they were decoded from.
type Entry struct {
	Path         string
	Size         int64
	ModTime      int64 // unix nanoseconds
	Records      []model.RawMediaData
	LastAccessed int64
}

// MemoryCache keeps decoded input files between reloads so unchanged files
// are not decoded again.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	// Double buffering support
	pendingClear  bool
	shadowEntries map[string]*Entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*Entry),
	}
}

func (mc *MemoryCache) Set(entry *Entry) {
	if entry == nil {
		return
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()

	entry.LastAccessed = time.Now().Unix()

	// If pending clear, add to shadow buffer instead
	if mc.pendingClear && mc.shadowEntries != nil {
		mc.shadowEntries[entry.Path] = entry
	} else {
		mc.entries[entry.Path] = entry
	}
}

func (mc *MemoryCache) Get(path string) (*Entry, bool) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	entry, ok := mc.entries[path]
	if ok {
		entry.LastAccessed = time.Now().Unix()
	}
	return entry, ok
}

// Lookup returns the cached records of path when the cached size and
// modification time still match the file. While a clear is pending only
// entries set since the clear can hit.
func (mc *MemoryCache) Lookup(path string, size int64, modTime time.Time) ([]model.RawMediaData, MissReason) {
	mc.mu.RLock()
	entries := mc.entries
	if mc.pendingClear && mc.shadowEntries != nil {
		entries = mc.shadowEntries
	}
	entry, ok := entries[path]
	mc.mu.RUnlock()
	if !ok {
		return nil, MissReasonNotFound
	}
	if entry.Size != size {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: size changed (cached: %d, current: %d)", path, entry.Size, size))
		return nil, MissReasonSize
	}
	if entry.ModTime != modTime.UnixNano() {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: modtime changed", path))
		return nil, MissReasonModTime
	}
	return entry.Records, MissReasonNone
}

// Remove drops path from the cache.
func (mc *MemoryCache) Remove(path string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	delete(mc.entries, path)
	if mc.shadowEntries != nil {
		delete(mc.shadowEntries, path)
	}
}

func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.entries)
}

// Clear marks the cache for clearing. Existing entries stay readable until
// CommitClear swaps in the entries set since.
func (mc *MemoryCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.pendingClear = true
	mc.shadowEntries = make(map[string]*Entry)

	util.LogDebug("MemoryCache: Marked for pending clear, maintaining data until new data is ready")
}

// CommitClear performs the actual cache clear after new data is loaded
func (mc *MemoryCache) CommitClear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.pendingClear && mc.shadowEntries != nil {
		mc.entries = mc.shadowEntries
		mc.shadowEntries = nil
		mc.pendingClear = false
		util.LogDebug("MemoryCache: Committed clear with new data")
	}
}

// CancelClear cancels a pending clear operation
func (mc *MemoryCache) CancelClear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.pendingClear = false
	mc.shadowEntries = nil
	util.LogDebug("MemoryCache: Cancelled pending clear")
}
