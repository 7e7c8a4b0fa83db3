package importer

import (
	"fmt"
	"strconv"
	"time"

	"flextime/internal/timeutil"
	"flextime/timesheet"
)

// MapRow converts one export row into the canonical record. Toggl exports
// split start and stop into date and time columns; hand-written sheets often
// carry a combined datetime column. Both layouts are accepted. Rows without a
// description are skipped without error; the second return value reports
// whether the row was mapped.
func MapRow(row Row) (timesheet.Record, bool, error) {
	description := row.Get("description")
	if description == "" {
		return timesheet.Record{}, false, nil
	}

	start, err := rowTime(row, []string{"start", "startdatetime"}, "startdate", "starttime")
	if err != nil {
		return timesheet.Record{}, false, fmt.Errorf("row %d: parse start: %w", row.Number, err)
	}
	stop, err := rowTime(row, []string{"stop", "stopdatetime", "end", "enddatetime"}, "enddate", "endtime")
	if err != nil {
		return timesheet.Record{}, false, fmt.Errorf("row %d: parse stop: %w", row.Number, err)
	}
	if stop.Before(start) {
		return timesheet.Record{}, false, fmt.Errorf("row %d: stop precedes start", row.Number)
	}

	duration := stop.Sub(start)
	if raw := row.Get("duration"); raw != "" {
		parsed, parseErr := parseClockDuration(raw)
		if parseErr != nil {
			return timesheet.Record{}, false, fmt.Errorf("row %d: parse duration: %w", row.Number, parseErr)
		}
		duration = parsed
	}

	record := timesheet.Record{
		Description: description,
		Start:       start,
		Stop:        stop,
		Duration:    duration,
	}
	// Exports carry the project as a name more often than as an id; only a
	// numeric value maps onto the id field.
	if raw := row.Get("projectid", "project"); raw != "" {
		if id, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
			record.ProjectID = &id
		}
	}
	return record, true, nil
}

func rowTime(row Row, combinedKeys []string, dateKey, timeKey string) (time.Time, error) {
	if value := row.Get(combinedKeys...); value != "" {
		return timeutil.ParseDate(value)
	}

	date := row.Get(dateKey)
	if date == "" {
		return time.Time{}, fmt.Errorf("missing %s column", combinedKeys[0])
	}
	if clock := row.Get(timeKey); clock != "" {
		return timeutil.ParseDate(date + " " + clock)
	}
	return timeutil.ParseDate(date)
}
