package analyzer

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
)

// NoSelection means no marker is clicked on startup.
const NoSelection = -1

// Config contains configuration shared by the report and watch commands.
type Config struct {
	// DataPath is a data file or a directory scanned for data files.
	DataPath    string
	Concurrency int
	Timezone    string

	// Initial filters. Categories nil means no category filter; an empty
	// non-nil slice selects nothing.
	Categories []int
	From       string // YYYY-MM-DD or ISO-8601, inclusive
	To         string // exclusive
	Duration   string // lookback such as 7d, relative to the newest record
	Select     int    // record id to click, or NoSelection

	// Report output
	OutputFormat string
	Limit        int
}

// Validate fills defaults and rejects contradictory settings.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("no data file or directory given")
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.NumCPU()
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.OutputFormat == "" {
		c.OutputFormat = model.FormatTable
	}
	switch c.OutputFormat {
	case model.FormatTable, model.FormatJSON, model.FormatCSV, model.FormatSummary:
	default:
		return fmt.Errorf("unsupported output format %q", c.OutputFormat)
	}
	if c.Duration != "" && c.From != "" {
		return errors.New("--duration and --from are mutually exclusive")
	}
	if c.Limit < 0 {
		c.Limit = 0
	}
	return nil
}
