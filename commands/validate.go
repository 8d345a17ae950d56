package commands

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/analyzer"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/metrics"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/store"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// ErrInvalidData is returned by validate --strict when anything was dropped.
var ErrInvalidData = errors.New("data contains invalid input")

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check data files and list every excluded record",
	Long: `Loads the data path the same way report and watch do and prints which files
could not be decoded, how many JSON Lines were skipped, and every record that
was excluded by validation together with the reason.`,
	SilenceUsage: true,
	RunE:         runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateStrict, "strict", false,
		"Exit with an error when any file, line or record was dropped")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	config, err := baseConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if err := util.InitializeTimeProvider(config.Timezone); err != nil {
		return fmt.Errorf("failed to initialize timezone: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, util.FormatHeaderTitle("=== Media Data Validation ==="))
	fmt.Fprintf(out, "Data Path: %s\n", config.DataPath)

	res, err := analyzer.NewDataLoader(config, nil).Load()
	if res == nil {
		return err
	}
	printLoadReport(out, res)

	if err != nil {
		return err
	}
	if validateStrict && res.Result() != metrics.LoadOK {
		return ErrInvalidData
	}
	return nil
}

func printLoadReport(out io.Writer, res *analyzer.LoadResult) {
	total, hits, _, failures, _ := res.Stats.GetStats()
	fmt.Fprintf(out, "Files: %d (%d failed, %d cached)\n", total, failures, hits)

	if len(res.Failed) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, util.FormatSectionTitle("Unreadable files"))
		files := make([]string, 0, len(res.Failed))
		for f := range res.Failed {
			files = append(files, f)
		}
		slices.Sort(files)
		for _, f := range files {
			fmt.Fprintf(out, "  %s: %v\n", f, res.Failed[f])
		}
	}

	if skipped := res.Stats.Skipped(); skipped > 0 {
		fmt.Fprintf(out, "Skipped lines: %d\n", skipped)
	}

	st := res.Store
	fmt.Fprintln(out)
	fmt.Fprintln(out, util.FormatSectionTitle("Records"))
	fmt.Fprintf(out, "  Valid: %s\n", util.FormatNumber(st.Len()))
	fmt.Fprintf(out, "  Excluded: %s\n", util.FormatNumber(st.Excluded()))
	for _, c := range st.Categories() {
		fmt.Fprintf(out, "  Category %d %s (%s)\n", c.ID, c.Shortname, c.Longname)
	}

	if res.Validation != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, util.FormatSectionTitle("Excluded records"))
		printRecordErrors(out, res.Validation.Records)
	}
}

func printRecordErrors(out io.Writer, errs []store.RecordError) {
	for _, e := range errs {
		fmt.Fprintf(out, "  %s\n", e.Error())
	}
}
