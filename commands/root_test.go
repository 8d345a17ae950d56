package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/metrics"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/formatter"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/testing/fixtures"
)

var start = time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)

// resetFlags restores every flag of cmd and its subcommands to its default
// so commands can be executed repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSimpleDataset(t *testing.T) string {
	t.Helper()
	path, err := fixtures.NewTestDataGenerator(t.TempDir()).WriteJSON("media.json", fixtures.SimpleDataset(start))
	require.NoError(t, err)
	return path
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected func(string) string
	}{
		{
			name:  "home directory expansion",
			input: "~/test/path",
			expected: func(home string) string {
				return filepath.Join(home, "test/path")
			},
		},
		{
			name:  "absolute path unchanged",
			input: "/absolute/path",
			expected: func(home string) string {
				return "/absolute/path"
			},
		},
		{
			name:  "relative path converted to absolute",
			input: "relative/path",
			expected: func(home string) string {
				abs, _ := filepath.Abs("relative/path")
				return abs
			},
		},
	}

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			expected := tt.expected(home)
			assert.Equal(t, expected, result)
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test", "nested", "dir")

	err := ensureDir(testDir)
	assert.NoError(t, err)

	// Verify directory was created
	info, err := os.Stat(testDir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())

	// Test idempotency
	err = ensureDir(testDir)
	assert.NoError(t, err)
}

func TestParseCategories(t *testing.T) {
	tests := []struct {
		input    string
		expected []int
		wantErr  bool
	}{
		{"1,3", []int{1, 3}, false},
		{" 2 , 5 ", []int{2, 5}, false},
		{"", []int{}, false},
		{"none", []int{}, false},
		{"1,x", nil, true},
		{"-1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseCategories(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRootCommandFlags(t *testing.T) {
	resetFlags(rootCmd)

	tests := []struct {
		flag         string
		defaultValue string
		shorthand    string
	}{
		{"data", defaultDataPath, ""},
		{"duration", "", "d"},
		{"categories", "", "c"},
		{"from", "", ""},
		{"to", "", ""},
		{"select", "-1", ""},
		{"output", "table", "o"},
		{"limit", "0", ""},
		{"timezone", "Local", ""},
		{"log-format", "text", ""},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := rootCmd.Flags().Lookup(tt.flag)
			if flag == nil {
				flag = rootCmd.PersistentFlags().Lookup(tt.flag)
			}
			require.NotNil(t, flag)
			assert.Equal(t, tt.defaultValue, flag.DefValue)
			if tt.shorthand != "" {
				assert.Equal(t, tt.shorthand, flag.Shorthand)
			}
		})
	}

	assert.Equal(t, "media-dashboard [flags]", rootCmd.Use)
	assert.NotNil(t, rootCmd.Flags().Lookup("format"))
}

func TestReportJSON(t *testing.T) {
	path := writeSimpleDataset(t)

	out, err := executeCommand(t, "--data", path, "--timezone", "UTC", "--output", "json", "--categories", "2")
	require.NoError(t, err)

	var snap formatter.Snapshot
	require.NoError(t, sonic.UnmarshalString(out, &snap))
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, 1, snap.Selected)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, 2, snap.Records[0].ID)
}

func TestReportFormatAliasAndLimit(t *testing.T) {
	path := writeSimpleDataset(t)

	out, err := executeCommand(t, "--data", path, "--timezone", "UTC", "--format", "csv", "--limit", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id,uuid,timestamp"))
}

func TestReportEmptyCategoriesSelectsNothing(t *testing.T) {
	path := writeSimpleDataset(t)

	out, err := executeCommand(t, "--data", path, "--timezone", "UTC", "--output", "json", "--categories", "none")
	require.NoError(t, err)

	var snap formatter.Snapshot
	require.NoError(t, sonic.UnmarshalString(out, &snap))
	assert.Equal(t, 0, snap.Selected)
	assert.Empty(t, snap.Records)
}

func TestReportRejectsInvalidFlags(t *testing.T) {
	path := writeSimpleDataset(t)

	_, err := executeCommand(t, "--data", path, "--duration", "1d", "--from", "2020-05-01")
	assert.Error(t, err)

	_, err = executeCommand(t, "--data", path, "--duration", "7dfoo")
	assert.Error(t, err)

	_, err = executeCommand(t, "--data", path, "--categories", "a,b")
	assert.Error(t, err)

	_, err = executeCommand(t, "--data", path, "--output", "xml")
	assert.Error(t, err)

	_, err = executeCommand(t, "--data", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	_, err := gen.WriteJSON("good.json", fixtures.SimpleDataset(start))
	require.NoError(t, err)
	_, err = gen.WriteRaw("mixed.jsonl",
		"{\"uuid\": \"no-category\", \"timestamp\": \"2020-05-01\"}\nnot json\n")
	require.NoError(t, err)

	out, err := executeCommand(t, "validate", "--data", gen.GetBaseDir(), "--timezone", "UTC")
	require.NoError(t, err)
	assert.Contains(t, out, "Files: 2 (0 failed, 0 cached)")
	assert.Contains(t, out, "Skipped lines: 1")
	assert.Contains(t, out, "Valid: 3")
	assert.Contains(t, out, "Excluded: 1")
	assert.Contains(t, out, "no-category")
	assert.Contains(t, out, "Category 2 Litter")

	_, err = executeCommand(t, "validate", "--data", gen.GetBaseDir(), "--timezone", "UTC", "--strict")
	assert.ErrorIs(t, err, ErrInvalidData)

	clean := writeSimpleDataset(t)
	_, err = executeCommand(t, "validate", "--data", clean, "--timezone", "UTC", "--strict")
	assert.NoError(t, err)
}

func TestWatchConfig(t *testing.T) {
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	dataPath = writeSimpleDataset(t)
	watchRefreshPerSecond = 50
	_, err := watchConfig(watchCmd)
	assert.Error(t, err)

	watchRefreshPerSecond = 2
	watchRefreshInterval = 30 * time.Second
	watchMetricsAddr = ":9100"
	cfg, err := watchConfig(watchCmd)
	require.NoError(t, err)
	assert.Equal(t, "Media Dashboard", cfg.Title)
	assert.Equal(t, float64(2), cfg.UIRefreshRate)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, dataPath, cfg.DataPath)
	assert.Nil(t, cfg.Categories)
}

func TestMetricsServer(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)
	recorder.ObserveSelection(7)

	srv := metricsServer(":0", registry)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "media_dashboard_selection_size 7")
}
