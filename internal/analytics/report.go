// internal/analytics/report.go
//
// Daily-bucket reporting over the raw event rows.
//
// The owner dashboard shows the last 25 days as a bar chart: per-day
// counts normalized to percent-of-peak so the tallest bar always fills
// the column.  Days with at least one view get a 1% floor so the bar
// stays visible.  Aggregation reads the raw rows; nothing here mutates.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ReportDays is the dashboard window.
const ReportDays = 25

// DayCount is one aggregated row from the store.
type DayCount struct {
	Day   time.Time `db:"day"`
	Count int       `db:"count"`
}

// DayBucket is one rendered chart column.
type DayBucket struct {
	Date       time.Time
	Count      int
	Percent    float64 // of the busiest day in the window
	NegPercent float64 // 100 - Percent, for SVG offsets
}

// PostDayCounts aggregates views of one post since the cutoff.
func PostDayCounts(ctx context.Context, db *sqlx.DB, postID int64, since time.Time) ([]DayCount, error) {
	var rows []DayCount
	err := db.SelectContext(ctx, &rows,
		`SELECT DATE(created_at) AS day, COUNT(*) AS count
		   FROM analytic_post
		  WHERE post_id = ? AND created_at > ?
		  GROUP BY DATE(created_at)`, postID, since)
	if err != nil {
		return nil, fmt.Errorf("post day counts: %w", err)
	}
	return rows, nil
}

// PageDayCounts aggregates views of one page path since the cutoff.
func PageDayCounts(ctx context.Context, db *sqlx.DB, ownerID int64, path string, since time.Time) ([]DayCount, error) {
	var rows []DayCount
	err := db.SelectContext(ctx, &rows,
		`SELECT DATE(created_at) AS day, COUNT(*) AS count
		   FROM analytic_page
		  WHERE owner_id = ? AND path = ? AND created_at > ?
		  GROUP BY DATE(created_at)`, ownerID, path, since)
	if err != nil {
		return nil, fmt.Errorf("page day counts: %w", err)
	}
	return rows, nil
}

// BuildReport fills the window [until-ReportDays+1, until] with buckets,
// normalizing counts against the busiest day.
func BuildReport(counts []DayCount, until time.Time) []DayBucket {
	until = until.Truncate(24 * time.Hour)

	perDay := make(map[time.Time]int, len(counts))
	peak := 1
	for _, c := range counts {
		day := c.Day.Truncate(24 * time.Hour)
		perDay[day] += c.Count
		if perDay[day] > peak {
			peak = perDay[day]
		}
	}

	buckets := make([]DayBucket, 0, ReportDays)
	for i := ReportDays - 1; i >= 0; i-- {
		day := until.AddDate(0, 0, -i)
		count := perDay[day]
		pct := float64(count) * 100 / float64(peak)
		if pct < 1 {
			pct = 1 // floor so a single view still renders
		}
		buckets = append(buckets, DayBucket{
			Date:       day,
			Count:      count,
			Percent:    pct,
			NegPercent: 100 - pct,
		})
	}
	return buckets
}
