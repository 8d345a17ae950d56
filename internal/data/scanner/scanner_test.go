package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileScanner(t *testing.T) {
	s := NewFileScanner("/tmp/test")
	assert.Equal(t, "/tmp/test", s.baseDir)
}

func TestFileScannerScanEmptyDirectory(t *testing.T) {
	files, err := NewFileScanner(t.TempDir()).Scan()
	require.NoError(t, err)
	assert.Empty(t, files, "Empty directory should return no files")
}

func TestFileScannerScanNonExistentDirectory(t *testing.T) {
	files, err := NewFileScanner("/path/that/does/not/exist").Scan()
	require.NoError(t, err, "Scanner should handle non-existent directory gracefully")
	assert.Empty(t, files)
}

func TestFileScannerFindsDataFiles(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := []struct {
		path   string
		isData bool
	}{
		{"b.json", true},
		{"a.jsonl", true},
		{"upper.JSON", true},
		{"readme.txt", false},
		{"subdir/c.json", true},
		{"subdir/other.log", false},
		{".hidden/d.json", false},
	}

	var expected []string
	for _, tf := range testFiles {
		full := filepath.Join(tempDir, tf.path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("[]"), 0644))
		if tf.isData {
			expected = append(expected, full)
		}
	}

	files, err := NewFileScanner(tempDir).Scan()
	require.NoError(t, err)
	assert.ElementsMatch(t, expected, files)
	assert.IsIncreasing(t, files)
}

func TestIsDataFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"x.json", true},
		{"x.jsonl", true},
		{"X.JSONL", true},
		{"x.json.bak", false},
		{"x", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDataFile(tt.path))
		})
	}
}
