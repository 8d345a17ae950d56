package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/application/dashboard"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/metrics"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/display"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

var (
	// Display related flags
	watchTitle            string
	watchRefreshInterval  time.Duration
	watchRefreshPerSecond float64

	// Metrics
	watchMetricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive cross-filter dashboard in the terminal",
	Long: `Shows the category legend, the per-day histogram and the map markers of the
current selection and keeps them in sync while you filter.

Data files are reloaded when they change on disk; filters and the active
marker carry over to the new data. Press 'h' inside the dashboard for keys.`,
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchTitle, "title", "Media Dashboard",
		"Dashboard title")
	watchCmd.Flags().DurationVar(&watchRefreshInterval, "refresh-interval", 0,
		"Reload data periodically (e.g., 30s); 0 reloads on file changes only")
	watchCmd.Flags().Float64Var(&watchRefreshPerSecond, "refresh-per-second", 1,
		"Display refresh rate (0.1-20 Hz)")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "",
		"Serve prometheus metrics on this address (e.g., :9090)")
}

// watchConfig builds the dashboard configuration from flags.
func watchConfig(cmd *cobra.Command) (*dashboard.Config, error) {
	if watchRefreshPerSecond < 0.1 || watchRefreshPerSecond > 20 {
		return nil, fmt.Errorf("refresh-per-second must be between 0.1 and 20")
	}

	base, err := baseConfig(cmd)
	if err != nil {
		return nil, err
	}
	config := &dashboard.Config{
		Config:          *base,
		Title:           watchTitle,
		RefreshInterval: watchRefreshInterval,
		UIRefreshRate:   watchRefreshPerSecond,
		MetricsAddr:     watchMetricsAddr,
	}
	return config, config.Validate()
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	config, err := watchConfig(cmd)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	orchestrator, err := dashboard.NewOrchestrator(config, display.NewTerminalDisplay(os.Stdout), recorder)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	// Set up signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if config.MetricsAddr != "" {
		srv := metricsServer(config.MetricsAddr, registry)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				util.LogError("metrics server stopped", util.F("error", err))
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
		util.LogInfo("serving metrics", util.F("addr", config.MetricsAddr))
	}

	return orchestrator.Run(ctx)
}

// metricsServer exposes the registry on /metrics.
func metricsServer(addr string, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
