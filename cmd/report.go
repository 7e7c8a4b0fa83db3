package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"flextime/config"
	"flextime/output"
	"flextime/overtime"
)

var reportTimeout time.Duration

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the daily overtime table and render a chart",
	Long: `Fetch time entries, bucket them per day, and compare each day against the
configured workday.

Records come from one of three sources:
- report: the Toggl detailed report search (paginated, default)
- entries: the flat Toggl time entry listing
- a local CSV/Excel export when --csv is set

The table lists one row per day with first project, description, start/stop
of the day and the deviation from the workday. A PNG chart of the daily
deviations is written to the figures directory.`,
	Example: `
  # Last 30 days from the report API
  flextime report --workspace 1234567

  # Flat time entry listing instead of the report search
  flextime report --workspace 1234567 --source entries

  # Local export, custom filter and figures directory
  flextime report --csv ./toggl-export.csv --description "Jobb" --fig_dir ./figures
`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, config.PipelineKeys()...)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := config.Load()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		records, err := loadRecords(ctx, opts)
		if err != nil {
			return err
		}

		filtered := overtime.Filter(records, opts.Description, opts.StartDate, opts.EndDate)
		buckets, total := overtime.Compute(filtered, opts.Workday())

		output.PrintTable(os.Stdout, buckets, total)

		if len(buckets) == 0 {
			fmt.Println("No matching records; skipping chart.")
			return nil
		}

		chartPath, err := output.SaveChart(opts.FigDir, buckets, total, time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("Chart written: %s\n", chartPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	addPipelineFlags(reportCmd)
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 60*time.Second, "Timeout for the whole Toggl fetch")
}
