package timesheet

import (
	"time"

	"flextime/toggl"
)

// Record is the normalized work session every source converges to. Duration
// is authoritative for aggregation; Start and Stop drive window filtering and
// day bucketing.
type Record struct {
	ProjectID   *int64
	Description string
	Start       time.Time
	Stop        time.Time
	Duration    time.Duration
}

// FromTimeEntries converts flat v9 entries into records. Timestamps arrive
// with their UTC offset and are rendered in loc's wall clock. Entries still
// running (nil stop or negative duration) are dropped; the count of dropped
// entries is returned alongside the records.
func FromTimeEntries(entries []toggl.TimeEntry, loc *time.Location) ([]Record, int) {
	if loc == nil {
		loc = time.Local
	}

	records := make([]Record, 0, len(entries))
	dropped := 0
	for _, entry := range entries {
		if entry.Stop == nil || entry.Duration < 0 {
			dropped++
			continue
		}
		records = append(records, Record{
			ProjectID:   entry.ProjectID,
			Description: entry.Description,
			Start:       entry.Start.In(loc),
			Stop:        entry.Stop.In(loc),
			Duration:    time.Duration(entry.Duration) * time.Second,
		})
	}
	return records, dropped
}

// FromReport converts report rows into records. Only the first span of a row
// is read; rows without spans are dropped and counted.
func FromReport(rows []toggl.ReportRow, loc *time.Location) ([]Record, int) {
	if loc == nil {
		loc = time.Local
	}

	records := make([]Record, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if len(row.TimeEntries) == 0 {
			dropped++
			continue
		}
		span := row.TimeEntries[0]
		records = append(records, Record{
			ProjectID:   row.ProjectID,
			Description: row.Description,
			Start:       span.Start.In(loc),
			Stop:        span.Stop.In(loc),
			Duration:    time.Duration(span.Seconds) * time.Second,
		})
	}
	return records, dropped
}
