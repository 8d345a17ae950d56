package fixtures

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
)

// Categories used by generated datasets.
var (
	CategoryNoise   = model.RawCategory{ID: intPtr(1), Shortname: "Noise", Longname: "Noise pollution"}
	CategoryLitter  = model.RawCategory{ID: intPtr(2), Shortname: "Litter", Longname: "Litter and illegal dumping"}
	CategoryTraffic = model.RawCategory{ID: intPtr(3), Shortname: "Traffic", Longname: "Traffic hazards"}
)

func intPtr(v int) *int {
	return &v
}

// TestDataGenerator writes media record files for tests.
type TestDataGenerator struct {
	baseDir string
}

// NewTestDataGenerator creates a new test data generator
func NewTestDataGenerator(baseDir string) *TestDataGenerator {
	return &TestDataGenerator{
		baseDir: baseDir,
	}
}

// Record builds one raw record with an explicit id.
func Record(id int, category model.RawCategory, ts time.Time, lat, lng float64) model.RawMediaData {
	cat := category
	return model.RawMediaData{
		ID:        intPtr(id),
		UUID:      fmt.Sprintf("uuid-%04d", id),
		Timestamp: ts.UTC().Format(time.RFC3339),
		Location:  &model.Location{Lat: lat, Lng: lng},
		Images: []model.MediaElement{{
			URL:          fmt.Sprintf("https://media.example.org/%d.jpg", id),
			ThumbnailURL: fmt.Sprintf("https://media.example.org/%d_thumb.jpg", id),
			Title:        fmt.Sprintf("Report %d", id),
		}},
		Category: &cat,
	}
}

// SimpleDataset returns three records (categories Noise, Litter, Noise) on
// consecutive days starting at start.
func SimpleDataset(start time.Time) []model.RawMediaData {
	return []model.RawMediaData{
		Record(1, CategoryNoise, start, 52.4500, 13.5200),
		Record(2, CategoryLitter, start.Add(24*time.Hour), 52.4600, 13.5300),
		Record(3, CategoryNoise, start.Add(48*time.Hour), 52.4700, 13.5100),
	}
}

// LargeDataset returns n records spread over days with a fixed seed.
func LargeDataset(start time.Time, days, n int) []model.RawMediaData {
	rng := rand.New(rand.NewSource(7))
	cats := []model.RawCategory{CategoryNoise, CategoryLitter, CategoryTraffic}
	out := make([]model.RawMediaData, 0, n)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(rng.Intn(days*24*60)) * time.Minute)
		out = append(out, Record(i+1, cats[rng.Intn(len(cats))], ts,
			52.40+rng.Float64()*0.1, 13.45+rng.Float64()*0.1))
	}
	return out
}

// WriteJSON writes records as a JSON array to name below the base directory.
func (g *TestDataGenerator) WriteJSON(name string, records []model.RawMediaData) (string, error) {
	data, err := sonic.Marshal(records)
	if err != nil {
		return "", err
	}
	return g.write(name, data)
}

// WriteJSONL writes records one per line to name below the base directory.
func (g *TestDataGenerator) WriteJSONL(name string, records []model.RawMediaData) (string, error) {
	var data []byte
	for _, rec := range records {
		line, err := sonic.Marshal(rec)
		if err != nil {
			return "", err
		}
		data = append(data, line...)
		data = append(data, '\n')
	}
	return g.write(name, data)
}

// WriteRaw writes content verbatim to name below the base directory.
func (g *TestDataGenerator) WriteRaw(name, content string) (string, error) {
	return g.write(name, []byte(content))
}

func (g *TestDataGenerator) write(name string, data []byte) (string, error) {
	path := filepath.Join(g.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// GetBaseDir returns the base directory for test data
func (g *TestDataGenerator) GetBaseDir() string {
	return g.baseDir
}
