package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"flextime/config"
	"flextime/output"
	"flextime/overtime"
)

var (
	exportFormat  string
	exportOutput  string
	exportTimeout time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export daily overtime buckets to CSV/Excel",
	Long: `Run the same pipeline as "report" and write the daily buckets to a file
instead of rendering table and chart.

Output format can be selected explicitly via --format or inferred from the
--output extension.`,
	Example: `
  # Export daily buckets to CSV
  flextime export --workspace 1234567 --output ./overtime.csv

  # Export daily buckets to Excel
  flextime export --workspace 1234567 --output ./overtime.xlsx

  # Force Excel format independent of extension
  flextime export --csv ./toggl-export.csv --format excel --output ./overtime.out
`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, config.PipelineKeys()...)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := config.Load()
		if err != nil {
			return err
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		records, err := loadRecords(ctx, opts)
		if err != nil {
			return err
		}

		filtered := overtime.Filter(records, opts.Description, opts.StartDate, opts.EndDate)
		buckets, total := overtime.Compute(filtered, opts.Workday())

		if err := output.WriteDaily(exportOutput, format, buckets); err != nil {
			return err
		}

		fmt.Printf("Export completed. Days: %d, Total overtime: %s, Format: %s, File: %s\n",
			len(buckets), overtime.FormatHM(total), format, exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addPipelineFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", 60*time.Second, "Timeout for the whole Toggl fetch")

	_ = exportCmd.MarkFlagRequired("output")
}
