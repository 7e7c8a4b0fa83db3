package output

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"flextime/overtime"
)

// PrintTable writes the per-day report followed by the summed overtime.
func PrintTable(w io.Writer, buckets []overtime.DayBucket, total time.Duration) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tPROJECT\tDESCRIPTION\tSTART\tSTOP\tDURATION\tOVERTIME")
	for _, bucket := range buckets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			bucket.Day.Format("2006-01-02"),
			projectLabel(bucket.ProjectID),
			bucket.Description,
			bucket.Start.Format("15:04"),
			bucket.Stop.Format("15:04"),
			overtime.FormatHM(bucket.Total),
			overtime.FormatHM(bucket.Deviation),
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nTotal overtime: %s\n", overtime.FormatHM(total))
}

func projectLabel(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}
