// internal/web/analytics.go
//
// Owner-facing view reports.  Buckets come back percent-of-peak so a
// dashboard can draw bars without any client-side math.
package web

import (
	"net/http"
	"time"

	"github.com/plumeblog/plume/internal/analytics"
	"github.com/plumeblog/plume/internal/content"
)

type bucketJSON struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

func toBucketJSON(buckets []analytics.DayBucket) []bucketJSON {
	out := make([]bucketJSON, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, bucketJSON{
			Date:    b.Date.Format("2006-01-02"),
			Count:   b.Count,
			Percent: b.Percent,
		})
	}
	return out
}

func (h *Handlers) postAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	// Ownership check first: the analytics of somebody else's post must
	// 404, not leak counts.
	p, err := content.PostByID(r.Context(), h.DB, ownerID(r), id)
	if err != nil {
		fail(w, err)
		return
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -analytics.ReportDays)
	counts, err := analytics.PostDayCounts(r.Context(), h.DB, p.ID, since)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"post_id": p.ID,
		"slug":    p.Slug,
		"days":    toBucketJSON(analytics.BuildReport(counts, now)),
	})
}

func (h *Handlers) pageAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	p, err := content.PageByID(r.Context(), h.DB, ownerID(r), id)
	if err != nil {
		fail(w, err)
		return
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -analytics.ReportDays)
	counts, err := analytics.PageDayCounts(r.Context(), h.DB, ownerID(r), p.Slug, since)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page_id": p.ID,
		"slug":    p.Slug,
		"days":    toBucketJSON(analytics.BuildReport(counts, now)),
	})
}
