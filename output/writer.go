package output

import (
	"fmt"
	"strings"

	"flextime/overtime"
)

// WriteDaily writes the per-day buckets to path in the given format.
func WriteDaily(path, format string, buckets []overtime.DayBucket) error {
	switch normalizeFormat(format) {
	case "csv":
		return writeDailyCSV(path, buckets)
	case "excel", "xlsx":
		return writeDailyExcel(path, buckets)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

func dailyHeaders() []string {
	return []string{"Day", "ProjectID", "Description", "Start", "Stop", "Duration", "Overtime"}
}

func dailyRow(bucket overtime.DayBucket) []string {
	return []string{
		bucket.Day.Format("2006-01-02"),
		projectLabel(bucket.ProjectID),
		bucket.Description,
		bucket.Start.Format("15:04"),
		bucket.Stop.Format("15:04"),
		overtime.FormatHM(bucket.Total),
		overtime.FormatHM(bucket.Deviation),
	}
}
