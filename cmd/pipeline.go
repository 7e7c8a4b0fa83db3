package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"flextime/config"
	"flextime/importer"
	"flextime/timesheet"
	"flextime/toggl"
)

// addPipelineFlags registers the flags shared by every command that produces
// overtime buckets. The flag names double as configuration keys, so values
// resolve in the usual order: flag, environment, config file, default.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String(config.KeyCSV, "", "Exported CSV/Excel file to read instead of the Toggl API (Windows paths are translated for WSL)")
	cmd.Flags().String(config.KeyStartDate, "", "Window start (inclusive), e.g. 2026-01-01 (default: 30 days ago)")
	cmd.Flags().String(config.KeyEndDate, "", "Window end (inclusive), e.g. 2026-01-31 (default: now)")
	cmd.Flags().String(config.KeyAPIToken, "", "Toggl API token (env: TOGGL_API_TOKEN)")
	cmd.Flags().String(config.KeyDescription, "", "Case-insensitive substring filter on descriptions (default: Jobb)")
	cmd.Flags().String(config.KeyFigDir, "", "Directory for generated charts (default: plots)")
	cmd.Flags().Int(config.KeyWorkdayHours, 8, "Expected working hours per day")
	cmd.Flags().String(config.KeyWorkspace, "", "Toggl workspace ID used by report queries")
	cmd.Flags().String(config.KeySource, "", "Remote source: report|entries (default: report)")
}

// loadRecords produces the canonical record list for one run, either from a
// local spreadsheet or from the Toggl API, and reports drop counts so data
// quality problems stay visible.
func loadRecords(ctx context.Context, opts config.Options) ([]timesheet.Record, error) {
	if !opts.RemoteMode() {
		result, err := importer.Load(opts.CSV, "")
		if err != nil {
			return nil, err
		}
		if result.RowsDropped > 0 {
			fmt.Printf("Warning: dropped %d unparsable row(s) from %s\n", result.RowsDropped, opts.CSV)
		}
		fmt.Printf("Source loaded. Rows read: %d, Rows mapped: %d, Rows skipped: %d, Rows dropped: %d\n",
			result.RowsRead, result.RowsMapped, result.RowsSkipped, result.RowsDropped)
		return result.Records, nil
	}

	client, err := toggl.NewClient(toggl.ClientConfig{
		APIToken: opts.APIToken,
		Logger:   slog.Default(),
	})
	if err != nil {
		return nil, err
	}

	records, dropped, err := fetchRemoteRecords(ctx, client, opts)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		fmt.Printf("Warning: skipped %d running or incomplete entry/entries\n", dropped)
	}
	fmt.Printf("Fetched %d record(s) from Toggl.\n", len(records))
	return records, nil
}

func fetchRemoteRecords(ctx context.Context, client toggl.Client, opts config.Options) ([]timesheet.Record, int, error) {
	if opts.Source == config.SourceEntries {
		entries, err := client.ListTimeEntries(ctx, opts.StartDate, opts.EndDate)
		if err != nil {
			return nil, 0, err
		}
		records, dropped := timesheet.FromTimeEntries(entries, time.Local)
		return records, dropped, nil
	}

	rows, err := client.SearchReport(ctx, toggl.ReportQuery{
		WorkspaceID: opts.Workspace,
		Description: opts.Description,
		StartDate:   opts.StartDate,
		EndDate:     opts.EndDate,
	})
	if err != nil {
		return nil, 0, err
	}
	records, dropped := timesheet.FromReport(rows, time.Local)
	return records, dropped, nil
}
