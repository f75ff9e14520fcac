// internal/analytics/recorder.go
//
// Append-only view recorder.
//
// Context
// -------
// Public reads append one row per view: AnalyticPost references the post,
// AnalyticPage references (owner, normalized path).  Rows are raw events,
// one per view with a timestamp, so downstream reporting can bucket them
// however it likes.  Two kinds of views are never recorded:
//
//   • the owner looking at their own content (callers gate on IsOwner),
//   • crawlers, using the user-agent fingerprint from requestinfo.
//
// Recording is fire-and-forget: a failed insert is logged and counted,
// never surfaced to the reader.
package analytics

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/plumeblog/plume/internal/metrics"
	"github.com/plumeblog/plume/internal/requestinfo"
)

// Recorder writes analytic rows.  Zero value is unusable; construct with
// the control-plane DB.
type Recorder struct {
	DB *sqlx.DB
}

// PostView records one anonymous view of a post.
func (rec *Recorder) PostView(ctx context.Context, postID int64) {
	info := requestinfo.FromContext(ctx)
	if info != nil && info.UA.IsBot {
		return
	}
	_, err := rec.DB.ExecContext(ctx,
		`INSERT INTO analytic_post (post_id, country, created_at) VALUES (?, ?, NOW())`,
		postID, country(info))
	if err != nil {
		zap.S().Warnw("analytic post insert failed", "post_id", postID, "err", err)
		return
	}
	metrics.AnalyticEventsTotal.WithLabelValues("post").Inc()
}

// PageView records one anonymous view of a page or the blog index.  path
// is stored without surrounding slashes ("index", "about").
func (rec *Recorder) PageView(ctx context.Context, ownerID int64, path string) {
	info := requestinfo.FromContext(ctx)
	if info != nil && info.UA.IsBot {
		return
	}
	_, err := rec.DB.ExecContext(ctx,
		`INSERT INTO analytic_page (owner_id, path, country, created_at) VALUES (?, ?, ?, NOW())`,
		ownerID, path, country(info))
	if err != nil {
		zap.S().Warnw("analytic page insert failed", "owner_id", ownerID, "path", path, "err", err)
		return
	}
	metrics.AnalyticEventsTotal.WithLabelValues("page").Inc()
}

func country(info *requestinfo.Info) string {
	if info == nil {
		return ""
	}
	return info.Geo.CountryISO
}
