// internal/analytics/report_test.go

package analytics

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestBuildReportWindow(t *testing.T) {
	until := day("2026-08-31")
	buckets := BuildReport(nil, until)

	if len(buckets) != ReportDays {
		t.Fatalf("len = %d, want %d", len(buckets), ReportDays)
	}
	if !buckets[0].Date.Equal(until.AddDate(0, 0, -(ReportDays - 1))) {
		t.Errorf("window starts at %v", buckets[0].Date)
	}
	if !buckets[len(buckets)-1].Date.Equal(until) {
		t.Errorf("window ends at %v", buckets[len(buckets)-1].Date)
	}
}

func TestBuildReportNormalizesToPeak(t *testing.T) {
	until := day("2026-08-31")
	counts := []DayCount{
		{Day: day("2026-08-31"), Count: 200},
		{Day: day("2026-08-30"), Count: 50},
		{Day: day("2026-08-29"), Count: 1},
	}
	buckets := BuildReport(counts, until)

	last := buckets[len(buckets)-1]
	if last.Count != 200 || last.Percent != 100 {
		t.Errorf("peak day = %+v, want count 200 at 100%%", last)
	}

	half := buckets[len(buckets)-2]
	if half.Percent != 25 {
		t.Errorf("50/200 day percent = %v, want 25", half.Percent)
	}

	// A single view renders at the 1% floor, not 0.5%.
	low := buckets[len(buckets)-3]
	if low.Count != 1 || low.Percent < 1 {
		t.Errorf("low day = %+v, want the 1%% floor", low)
	}

	// Empty days keep the floor too so the chart baseline is stable.
	empty := buckets[0]
	if empty.Count != 0 || empty.Percent != 1 {
		t.Errorf("empty day = %+v", empty)
	}
	if empty.NegPercent != 99 {
		t.Errorf("NegPercent = %v, want 99", empty.NegPercent)
	}
}

func TestBuildReportIgnoresRowsOutsideWindow(t *testing.T) {
	until := day("2026-08-31")
	counts := []DayCount{
		{Day: day("2026-01-01"), Count: 9999}, // stale row, outside the window
		{Day: day("2026-08-31"), Count: 10},
	}
	buckets := BuildReport(counts, until)

	for _, b := range buckets {
		if b.Count == 9999 {
			t.Fatalf("stale row leaked into the window: %+v", b)
		}
	}
	if buckets[len(buckets)-1].Count != 10 {
		t.Fatalf("in-window row lost: %+v", buckets[len(buckets)-1])
	}
}
