package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/cache"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// Parser decodes media record files. A .json file holds an array of records
// (or a single record object); a .jsonl file holds one record per line.
type Parser struct {
	concurrency int
	cache       *cache.MemoryCache
}

// ParseResult represents the result of parsing a single file.
type ParseResult struct {
	File       string
	Records    []model.RawMediaData
	Skipped    int // undecodable .jsonl lines
	CacheHit   bool
	MissReason cache.MissReason
	Error      error
}

// NewParser creates a new Parser instance. A nil cache disables caching.
func NewParser(concurrency int, mc *cache.MemoryCache) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		cache:       mc,
	}
}

// ParseFile decodes the file at path. Files whose size and modification time
// match a cached decode are served from the cache.
func (p *Parser) ParseFile(path string) ([]model.RawMediaData, int, error) {
	res := p.parseFile(path)
	return res.Records, res.Skipped, res.Error
}

func (p *Parser) parseFile(path string) ParseResult {
	res := ParseResult{File: path, MissReason: cache.MissReasonNotFound}
	info, err := os.Stat(path)
	if err != nil {
		res.Error = err
		return res
	}

	if p.cache != nil {
		recs, reason := p.cache.Lookup(path, info.Size(), info.ModTime())
		if reason == cache.MissReasonNone {
			util.LogDebug(fmt.Sprintf("Cache hit: %s", path))
			res.Records, res.CacheHit, res.MissReason = recs, true, reason
			return res
		}
		util.LogDebug(fmt.Sprintf("Cache miss: %s (%s)", path, reason))
		res.MissReason = reason
	}

	util.LogDebug(fmt.Sprintf("Start parsing file: %s", path))

	file, err := os.Open(path)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Failed to open file: %s - %v", path, err))
		res.Error = err
		return res
	}
	defer file.Close()

	recs, skipped, err := Decode(file, filepath.Ext(path))
	if err != nil {
		res.Error = fmt.Errorf("parse %s: %w", path, err)
		return res
	}
	if skipped > 0 {
		util.LogWarn("skipped undecodable lines", util.F("file", path), util.F("lines", skipped))
	}

	if p.cache != nil {
		p.cache.Set(&cache.Entry{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime().UnixNano(),
			Records: recs,
		})
	}
	res.Records, res.Skipped = recs, skipped
	return res
}

// Decode reads records from r in the format named by ext. For .jsonl input
// undecodable lines are skipped and counted; for .json input any syntax
// error fails the whole document.
func Decode(r io.Reader, ext string) ([]model.RawMediaData, int, error) {
	switch strings.ToLower(ext) {
	case model.ExtJSONL:
		return decodeLines(r)
	case model.ExtJSON, "":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, 0, err
		}
		recs, err := decodeDocument(data)
		return recs, 0, err
	default:
		return nil, 0, fmt.Errorf("unsupported file extension %q", ext)
	}
}

func decodeDocument(data []byte) ([]model.RawMediaData, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '{' {
		var rec model.RawMediaData
		if err := sonic.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
		return []model.RawMediaData{rec}, nil
	}

	var recs []model.RawMediaData
	if err := sonic.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func decodeLines(r io.Reader) ([]model.RawMediaData, int, error) {
	var recs []model.RawMediaData
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	skipped := 0
	for scanner.Scan() {
		lineCount++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec model.RawMediaData
		if err := sonic.Unmarshal(line, &rec); err != nil {
			util.LogDebug(fmt.Sprintf("Skip invalid JSON line %d - %v", lineCount, err))
			skipped++
			continue
		}
		recs = append(recs, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return recs, skipped, nil
}

// ParseFiles parses multiple files concurrently and returns a channel of ParseResult.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebug(fmt.Sprintf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency))

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fileStart := time.Now()
			res := p.parseFile(f)
			if res.Error != nil {
				util.LogDebug(fmt.Sprintf("File parsing failed: %s, duration %v - %v", f, time.Since(fileStart), res.Error))
			}

			results <- res
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebug(fmt.Sprintf("Concurrent parsing finished, total duration: %v", time.Since(start)))
	}()

	return results
}
