package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/analyzer"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug     bool
	logFormat string

	// Data path
	dataPath string

	// Output related
	outputFormat string
	timezone     string

	// Filtering
	categories string
	from       string
	to         string
	duration   string
	selectID   int
	limit      int

	rootCmd = &cobra.Command{
		Use:   "media-dashboard [flags]",
		Short: "Cross-filter dashboard for geotagged media reports",
		Long: `media-dashboard loads geotagged, categorised media records and filters them
by category and time range the way the map dashboard does.

Without a subcommand it prints a report of the filtered selection.

Examples:
  media-dashboard --data ./data                        # Report every record
  media-dashboard --data reports.json --categories 1,3 # Only categories 1 and 3
  media-dashboard --from 2020-05-01 --to 2020-06-01    # One month
  media-dashboard --duration 7d --output json          # Last week of data as JSON
  media-dashboard --select 42                          # Details of record 42
  media-dashboard watch                                # Interactive dashboard`,
		SilenceUsage: true,
		RunE:         runReport,
	}
)

const (
	defaultLogFile  = "~/.media-dashboard/logs/app.log"
	defaultDataPath = "data"
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", defaultDataPath,
		"Data file (.json, .jsonl) or directory of data files")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone for day buckets (e.g., Europe/Berlin, UTC)")

	// Initial filters
	rootCmd.PersistentFlags().StringVarP(&categories, "categories", "c", "",
		"Category ids to keep (e.g., 1,3); \"none\" or an empty value keeps none")
	rootCmd.PersistentFlags().StringVar(&from, "from", "",
		"Start of the time range, inclusive (YYYY-MM-DD or ISO-8601)")
	rootCmd.PersistentFlags().StringVar(&to, "to", "",
		"End of the time range, exclusive (YYYY-MM-DD or ISO-8601)")
	rootCmd.PersistentFlags().StringVarP(&duration, "duration", "d", "",
		"Time range looking back from the newest record (e.g., 12h, 7d, 2w, 1m, 1w2d)")
	rootCmd.PersistentFlags().IntVar(&selectID, "select", analyzer.NoSelection,
		"Record id to select as the active marker")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	rootCmd.Flags().StringVar(&outputFormat, "format", "",
		"Alias for --output")
	rootCmd.Flags().IntVar(&limit, "limit", 0,
		"Limit listed records (0 = unlimited)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(util.FormatText),
		"Log format (text, json)")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Handle format alias
	if format := cmd.Flags().Lookup("format"); format != nil && format.Changed {
		outputFormat = format.Value.String()
	}

	if err := initLogging(); err != nil {
		return err
	}

	config, err := baseConfig(cmd)
	if err != nil {
		return err
	}
	config.OutputFormat = outputFormat
	config.Limit = limit
	if err := config.Validate(); err != nil {
		return err
	}

	return analyzer.New(config, cmd.OutOrStdout()).Run()
}

// baseConfig builds the configuration shared by every command from flags.
func baseConfig(cmd *cobra.Command) (*analyzer.Config, error) {
	config := &analyzer.Config{
		DataPath:    expandPath(dataPath),
		Concurrency: runtime.NumCPU(),
		Timezone:    timezone,
		From:        from,
		To:          to,
		Duration:    duration,
		Select:      selectID,
	}
	if f := cmd.Flags().Lookup("categories"); f != nil && f.Changed {
		ids, err := parseCategories(categories)
		if err != nil {
			return nil, err
		}
		config.Categories = ids
	}
	return config, nil
}

// parseCategories parses a comma separated id list. An empty list is
// non-nil so that it selects nothing.
func parseCategories(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	ids := []int{}
	if value == "" || value == "none" {
		return ids, nil
	}
	for _, part := range strings.Split(value, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid category id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// initLogging sets up the global logger from the debug flags.
func initLogging() error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return util.InitLogger(logLevel, logFile, debug, util.LogFormat(logFormat))
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
