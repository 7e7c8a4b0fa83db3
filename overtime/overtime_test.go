package overtime

import (
	"testing"
	"time"

	"flextime/timesheet"
)

func record(description string, start, stop time.Time) timesheet.Record {
	return timesheet.Record{
		Description: description,
		Start:       start,
		Stop:        stop,
		Duration:    stop.Sub(start),
	}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 1, day, hour, minute, 0, 0, time.Local)
}

func TestFilter_DescriptionIsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	records := []timesheet.Record{
		record("Jobb: weekly sync", at(15, 8, 0), at(15, 12, 0)),
		record("JOBB travel", at(15, 13, 0), at(15, 14, 0)),
		record("private errand", at(15, 14, 0), at(15, 15, 0)),
	}

	start := at(1, 0, 0)
	end := at(31, 0, 0)

	kept := Filter(records, "jobb", start, end)
	if len(kept) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(kept), kept)
	}

	all := Filter(records, "", start, end)
	if len(all) != 3 {
		t.Fatalf("expected empty filter to keep all records, got %d", len(all))
	}
}

func TestFilter_WindowBoundaries(t *testing.T) {
	t.Parallel()

	windowStart := at(10, 0, 0)
	windowEnd := at(20, 0, 0)

	inside := record("Jobb", at(12, 8, 0), at(12, 16, 0))
	startsAtWindowStart := record("Jobb", windowStart, at(10, 8, 0))
	stopsAtWindowEnd := record("Jobb", at(19, 16, 0), windowEnd)
	startsJustBefore := record("Jobb", windowStart.Add(-time.Second), at(10, 8, 0))
	stopsJustAfter := record("Jobb", at(19, 16, 0), windowEnd.Add(time.Second))

	records := []timesheet.Record{inside, startsAtWindowStart, stopsAtWindowEnd, startsJustBefore, stopsJustAfter}
	kept := Filter(records, "", windowStart, windowEnd)

	if len(kept) != 3 {
		t.Fatalf("expected 3 records inside the window, got %d: %+v", len(kept), kept)
	}
	for _, r := range kept {
		if r.Start.Before(windowStart) || r.Stop.After(windowEnd) {
			t.Fatalf("record escapes window: %+v", r)
		}
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	t.Parallel()

	buckets, total := Compute(nil, 8*time.Hour)
	if len(buckets) != 0 {
		t.Fatalf("expected no buckets, got %+v", buckets)
	}
	if total != 0 {
		t.Fatalf("expected zero total, got %v", total)
	}
}

func TestCompute_ExactWorkdayHasZeroDeviation(t *testing.T) {
	t.Parallel()

	records := []timesheet.Record{
		record("Jobb", at(15, 8, 0), at(15, 16, 0)),
	}

	buckets, total := Compute(records, 8*time.Hour)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].Deviation != 0 {
		t.Fatalf("expected zero deviation, got %v", buckets[0].Deviation)
	}
	if total != 0 {
		t.Fatalf("expected zero total, got %v", total)
	}
}

func TestCompute_SplitDayAccumulates(t *testing.T) {
	t.Parallel()

	// The morning and afternoon sessions of one day become a single bucket
	// spanning first start to last stop.
	records := []timesheet.Record{
		record("Jobb: morning", at(1, 8, 0), at(1, 12, 0)),
		record("Jobb: afternoon", at(1, 12, 30), at(1, 18, 0)),
	}

	buckets, total := Compute(records, 8*time.Hour)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}

	bucket := buckets[0]
	if bucket.Total != 9*time.Hour+30*time.Minute {
		t.Fatalf("unexpected total: %v", bucket.Total)
	}
	if bucket.Deviation != 90*time.Minute {
		t.Fatalf("unexpected deviation: %v", bucket.Deviation)
	}
	if got := FormatHM(bucket.Deviation); got != "01:30" {
		t.Fatalf("unexpected formatted deviation: %q", got)
	}
	if total != 90*time.Minute {
		t.Fatalf("unexpected summed deviation: %v", total)
	}
	if int64(total/time.Second) != 5400 {
		t.Fatalf("unexpected total seconds: %d", int64(total/time.Second))
	}

	if !bucket.Start.Equal(at(1, 8, 0)) || !bucket.Stop.Equal(at(1, 18, 0)) {
		t.Fatalf("unexpected span: %v-%v", bucket.Start, bucket.Stop)
	}
	if bucket.Description != "Jobb: morning" {
		t.Fatalf("expected first record's description, got %q", bucket.Description)
	}
}

func TestCompute_DaysAreSortedAndIndependent(t *testing.T) {
	t.Parallel()

	projectA := int64(1)
	projectB := int64(2)

	third := record("Jobb: wednesday", at(3, 8, 0), at(3, 15, 0))
	third.ProjectID = &projectB
	first := record("Jobb: monday", at(1, 8, 0), at(1, 17, 0))
	first.ProjectID = &projectA

	// Out of order on purpose; buckets come back sorted by day.
	records := []timesheet.Record{third, first}

	buckets, total := Compute(records, 8*time.Hour)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if !buckets[0].Day.Before(buckets[1].Day) {
		t.Fatalf("buckets not sorted by day: %v, %v", buckets[0].Day, buckets[1].Day)
	}
	if buckets[0].Deviation != time.Hour || buckets[1].Deviation != -time.Hour {
		t.Fatalf("unexpected deviations: %v, %v", buckets[0].Deviation, buckets[1].Deviation)
	}
	if total != 0 {
		t.Fatalf("expected deviations to cancel out, got %v", total)
	}
	if buckets[0].ProjectID == nil || *buckets[0].ProjectID != projectA {
		t.Fatalf("unexpected project on first bucket: %+v", buckets[0].ProjectID)
	}
}

func TestCompute_BucketsByStartDay(t *testing.T) {
	t.Parallel()

	// A session across midnight counts for the day it started.
	records := []timesheet.Record{
		record("Jobb: night shift", at(1, 22, 0), at(2, 2, 0)),
	}

	buckets, _ := Compute(records, 8*time.Hour)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].Day.Day() != 1 {
		t.Fatalf("expected bucket on day 1, got %v", buckets[0].Day)
	}
}
