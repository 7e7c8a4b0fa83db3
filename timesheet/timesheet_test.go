package timesheet

import (
	"testing"
	"time"

	"flextime/toggl"
)

func TestFromTimeEntries_RendersLocalWallClock(t *testing.T) {
	t.Parallel()

	projectID := int64(77)
	stop := time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC)
	entries := []toggl.TimeEntry{
		{
			ID:          1,
			Description: "Jobb: weekly sync",
			ProjectID:   &projectID,
			Start:       time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC),
			Stop:        &stop,
			Duration:    28800,
		},
	}

	loc := time.FixedZone("CET", 60*60)
	records, dropped := FromTimeEntries(entries, loc)
	if dropped != 0 {
		t.Fatalf("expected no drops, got %d", dropped)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	record := records[0]
	if record.Start.Hour() != 8 || record.Stop.Hour() != 16 {
		t.Fatalf("expected 08:00-16:00 wall clock, got %v-%v", record.Start, record.Stop)
	}
	if record.Duration != 8*time.Hour {
		t.Fatalf("unexpected duration: %v", record.Duration)
	}
	if record.ProjectID == nil || *record.ProjectID != 77 {
		t.Fatalf("unexpected project id: %+v", record.ProjectID)
	}
}

func TestFromTimeEntries_DropsRunningEntries(t *testing.T) {
	t.Parallel()

	stop := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	entries := []toggl.TimeEntry{
		{ID: 1, Start: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), Stop: &stop, Duration: 14400},
		{ID: 2, Start: time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC), Stop: nil, Duration: -1705320000},
	}

	records, dropped := FromTimeEntries(entries, time.UTC)
	if dropped != 1 {
		t.Fatalf("expected 1 dropped entry, got %d", dropped)
	}
	if len(records) != 1 || records[0].Duration != 4*time.Hour {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestFromTimeEntries_DurationIsAuthoritative(t *testing.T) {
	t.Parallel()

	// Stop minus start disagrees with the reported seconds; the reported
	// value wins.
	stop := time.Date(2024, 1, 15, 9, 0, 1, 0, time.UTC)
	entries := []toggl.TimeEntry{
		{ID: 1, Start: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), Stop: &stop, Duration: 3600},
	}

	records, _ := FromTimeEntries(entries, time.UTC)
	if len(records) != 1 || records[0].Duration != time.Hour {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestFromReport_UsesFirstSpanOnly(t *testing.T) {
	t.Parallel()

	projectID := int64(12)
	rows := []toggl.ReportRow{
		{
			Description: "Jobb: maintenance",
			ProjectID:   &projectID,
			TimeEntries: []toggl.ReportSpan{
				{
					ID:      1,
					Seconds: 5400,
					Start:   time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC),
					Stop:    time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
				},
				{
					ID:      2,
					Seconds: 99999,
					Start:   time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC),
					Stop:    time.Date(2024, 1, 16, 8, 30, 0, 0, time.UTC),
				},
			},
		},
	}

	records, dropped := FromReport(rows, time.UTC)
	if dropped != 0 {
		t.Fatalf("expected no drops, got %d", dropped)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Duration != 90*time.Minute {
		t.Fatalf("expected first span duration, got %v", records[0].Duration)
	}
	if records[0].Start.Day() != 15 {
		t.Fatalf("expected first span start, got %v", records[0].Start)
	}
}

func TestFromReport_DropsRowsWithoutSpans(t *testing.T) {
	t.Parallel()

	rows := []toggl.ReportRow{
		{Description: "empty row"},
		{
			Description: "Jobb: review",
			TimeEntries: []toggl.ReportSpan{
				{
					Seconds: 1800,
					Start:   time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC),
					Stop:    time.Date(2024, 1, 15, 7, 30, 0, 0, time.UTC),
				},
			},
		},
	}

	records, dropped := FromReport(rows, time.UTC)
	if dropped != 1 {
		t.Fatalf("expected 1 dropped row, got %d", dropped)
	}
	if len(records) != 1 || records[0].Description != "Jobb: review" {
		t.Fatalf("unexpected records: %+v", records)
	}
}
