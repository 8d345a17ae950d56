package analyzer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/selection"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

var (
	durationPattern = regexp.MustCompile(`(\d+)([hymwd])`)
	durationFormat  = regexp.MustCompile(`^(\d+[hymwd])+$`)
)

// ApplyFilters installs the configured category filter, time range and
// marker selection on c, in that order. Unknown category ids are logged and
// otherwise ignored.
func ApplyFilters(c *selection.Controller, cfg *Config, tp *util.TimeProvider) error {
	if cfg.Categories != nil {
		err := c.SetCategoryFilter(cfg.Categories)
		var unknown *selection.UnknownCategoryError
		if err != nil && !errors.As(err, &unknown) {
			return err
		}
	}

	lo, hi, ok, err := ResolveTimeRange(c, cfg, tp)
	if err != nil {
		return err
	}
	if ok {
		if err := c.SetTimeRange(lo, hi); err != nil {
			return err
		}
	}

	if cfg.Select != NoSelection {
		if err := c.Click(cfg.Select); err != nil {
			return fmt.Errorf("select record %d: %w", cfg.Select, err)
		}
	}
	return nil
}

// ResolveTimeRange turns the configured --from/--to/--duration into a
// half-open range. An open end is taken from the data: the oldest record for
// the start, just past the newest record for the end. A lookback counts back
// from the end. ok is false when no time option is set.
func ResolveTimeRange(c *selection.Controller, cfg *Config, tp *util.TimeProvider) (lo, hi time.Time, ok bool, err error) {
	if cfg.From == "" && cfg.To == "" && cfg.Duration == "" {
		return time.Time{}, time.Time{}, false, nil
	}

	oldest, newest, found := recordSpan(c)
	if !found {
		return time.Time{}, time.Time{}, false, nil
	}

	hi = newest.Add(time.Millisecond)
	if cfg.To != "" {
		if hi, err = tp.ParseDay(cfg.To); err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("invalid --to: %w", err)
		}
	}

	lo = oldest
	switch {
	case cfg.Duration != "":
		d, err := parseDuration(cfg.Duration)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		lo = hi.Add(-d)
	case cfg.From != "":
		if lo, err = tp.ParseDay(cfg.From); err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("invalid --from: %w", err)
		}
	}

	if hi.Before(lo) {
		return time.Time{}, time.Time{}, false, fmt.Errorf("time range %s..%s: %w",
			util.FormatTimestamp(lo), util.FormatTimestamp(hi), selection.ErrInvalidRange)
	}
	return lo, hi, true, nil
}

// recordSpan returns the oldest and newest record timestamp of the store.
func recordSpan(c *selection.Controller) (oldest, newest time.Time, ok bool) {
	for i, rec := range c.Store().All() {
		if i == 0 || rec.Timestamp.Before(oldest) {
			oldest = rec.Timestamp
		}
		if i == 0 || rec.Timestamp.After(newest) {
			newest = rec.Timestamp
		}
		ok = true
	}
	return oldest, newest, ok
}

// parseDuration parses a lookback such as 12h, 7d, 2w, 3m or 1y. Components
// add up, so 1w2d is nine days. Months count as 30 days and years as 365.
func parseDuration(durationStr string) (time.Duration, error) {
	if !durationFormat.MatchString(durationStr) {
		return 0, fmt.Errorf("invalid duration format: %s", durationStr)
	}
	matches := durationPattern.FindAllStringSubmatch(durationStr, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid duration format: %s", durationStr)
	}

	var totalDuration time.Duration
	for _, match := range matches {
		value, err := strconv.Atoi(match[1])
		if err != nil {
			return 0, fmt.Errorf("invalid number in duration: %s", match[1])
		}

		switch match[2] {
		case "h":
			totalDuration += time.Duration(value) * time.Hour
		case "d":
			totalDuration += time.Duration(value) * 24 * time.Hour
		case "w":
			totalDuration += time.Duration(value) * 7 * 24 * time.Hour
		case "m":
			totalDuration += time.Duration(value) * 30 * 24 * time.Hour
		case "y":
			totalDuration += time.Duration(value) * 365 * 24 * time.Hour
		default:
			return 0, fmt.Errorf("unsupported time unit: %s", match[2])
		}
	}
	return totalDuration, nil
}
