package overtime

import (
	"sort"
	"strings"
	"time"

	"flextime/internal/timeutil"
	"flextime/timesheet"
)

// DayBucket aggregates all matching records of one calendar day. ProjectID
// and Description come from the first record of the day in source order;
// Start and Stop are the earliest start and latest stop.
type DayBucket struct {
	Day         time.Time
	ProjectID   *int64
	Description string
	Start       time.Time
	Stop        time.Time
	Total       time.Duration
	Deviation   time.Duration
}

// Filter keeps records whose description contains the filter text
// (case-insensitive) and whose span lies inside the window. The window start
// is inclusive; a record stopping exactly at end is kept. An empty filter
// matches everything.
func Filter(records []timesheet.Record, description string, start, end time.Time) []timesheet.Record {
	needle := strings.ToLower(strings.TrimSpace(description))

	kept := make([]timesheet.Record, 0, len(records))
	for _, record := range records {
		if needle != "" && !strings.Contains(strings.ToLower(record.Description), needle) {
			continue
		}
		if record.Start.Before(start) || record.Stop.After(end) {
			continue
		}
		kept = append(kept, record)
	}
	return kept
}

// Compute buckets records by the calendar day of their start and derives each
// day's deviation from the expected workday. Days without records produce no
// bucket. The second return value is the deviation summed over all buckets.
func Compute(records []timesheet.Record, workday time.Duration) ([]DayBucket, time.Duration) {
	if len(records) == 0 {
		return []DayBucket{}, 0
	}

	byDay := make(map[string][]timesheet.Record)
	for _, record := range records {
		day := record.Start.Format("2006-01-02")
		byDay[day] = append(byDay[day], record)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	buckets := make([]DayBucket, 0, len(days))
	total := time.Duration(0)
	for _, day := range days {
		bucket := bucketDay(byDay[day], workday)
		total += bucket.Deviation
		buckets = append(buckets, bucket)
	}

	return buckets, total
}

func bucketDay(records []timesheet.Record, workday time.Duration) DayBucket {
	first := records[0]
	bucket := DayBucket{
		Day:         timeutil.StartOfDay(first.Start),
		ProjectID:   first.ProjectID,
		Description: first.Description,
		Start:       first.Start,
		Stop:        first.Stop,
	}

	for _, record := range records {
		if record.Start.Before(bucket.Start) {
			bucket.Start = record.Start
		}
		if record.Stop.After(bucket.Stop) {
			bucket.Stop = record.Stop
		}
		bucket.Total += record.Duration
	}

	bucket.Deviation = bucket.Total - workday
	return bucket
}
