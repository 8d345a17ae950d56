package dashboard

import (
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/analyzer"
)

// Config contains configuration for the watch command
type Config struct {
	analyzer.Config

	Title string

	// Refresh settings
	RefreshInterval time.Duration // periodic reload; 0 relies on file events only
	UIRefreshRate   float64       // redraws per second

	// MetricsAddr serves prometheus metrics when set, e.g. ":9090".
	MetricsAddr string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.Title == "" {
		c.Title = "Media Dashboard"
	}
	if c.RefreshInterval < 0 {
		c.RefreshInterval = 0
	}
	if c.UIRefreshRate <= 0 {
		c.UIRefreshRate = 1
	}
	return nil
}
