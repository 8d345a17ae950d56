package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// FileScanner finds media record files below a directory.
type FileScanner struct {
	baseDir string
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{baseDir: baseDir}
}

// IsDataFile reports whether path names a .json or .jsonl file.
func IsDataFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == model.ExtJSON || ext == model.ExtJSONL
}

// Scan walks the directory and returns every data file path in lexical order.
// Hidden directories are skipped. Unreadable entries are logged and skipped.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip file (error): %s - %v", path, err))
			return nil
		}

		if info.IsDir() {
			if path != s.baseDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			dirCount++
			return nil
		}

		totalCount++
		if IsDataFile(path) {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, scanned %d directories, %d files, found %d data files",
		time.Since(start), dirCount, totalCount, len(files)))

	return files, err
}
