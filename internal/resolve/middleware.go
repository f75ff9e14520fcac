// internal/resolve/middleware.go
//
// Host-resolution middleware.
//
// Context
// -------
// Runs before every content handler and decides, per request:
//
//  1. Which blog (if any) owns the request, from the Host header.
//  2. Whether the request must be redirected first: reserved subdomain,
//     tenant with a custom domain, or retired blog.
//  3. Or whether it dies here: unknown subdomain (404), unrecognised
//     host (400).
//
// The outcome is an immutable Resolution in the request context.  The
// TenantSource interface keeps this package independent of the cache
// implementation and makes the middleware trivially testable.
//
// Redirect rules (subdomain branch)
// ---------------------------------
// Owners browsing their own blog are never redirected; everyone else is
// forwarded to the tenant's custom domain (same path) or, if the blog is
// retired, to the redirect domain with the first path segment stripped.
// A redirect domain wins over a custom domain when both are set.
package resolve

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/plumeblog/plume/internal/denylist"
	"github.com/plumeblog/plume/internal/metrics"
	"github.com/plumeblog/plume/internal/tenant"
	"github.com/plumeblog/plume/internal/viewer"
)

// TenantSource is the minimal contract the middleware needs.  Satisfied by
// *tenant.Cache; defined here so tests can inject a fixture map.
type TenantSource interface {
	ByUsername(ctx context.Context, username string) (*tenant.Record, error)
	ByCustomDomain(ctx context.Context, host string) (*tenant.Record, error)
}

// Middleware returns the chi middleware enforcing the rules above.
func Middleware(src TenantSource, canonical Canonical) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := StripPort(r.Host)

			class, sub := canonical.Classify(host)
			switch class {
			case ClassCanonical:
				metrics.ResolveTotal.WithLabelValues("canonical").Inc()
				serve(next, w, r, CanonicalResolution())

			case ClassSubdomain:
				resolveSubdomain(src, canonical, sub, next, w, r)

			case ClassCustomCandidate:
				resolveCustomDomain(src, host, next, w, r)
			}
		})
	}
}

func resolveSubdomain(src TenantSource, canonical Canonical, sub string,
	next http.Handler, w http.ResponseWriter, r *http.Request) {

	// Reserved names never reach a tenant lookup; this is a routing
	// decision, not an error.
	if denylist.UsernameDisallowed(sub) {
		metrics.ResolveTotal.WithLabelValues("reserved").Inc()
		metrics.RedirectTotal.WithLabelValues("reserved").Inc()
		http.Redirect(w, r, Target{Host: canonical.Host, Path: "/"}.String(), http.StatusFound)
		return
	}

	rec, err := src.ByUsername(r.Context(), sub)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			metrics.ResolveTotal.WithLabelValues("unknown").Inc()
			http.NotFound(w, r)
			return
		}
		zap.S().Errorw("tenant lookup failed", "subdomain", sub, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	metrics.ResolveTotal.WithLabelValues("subdomain").Inc()

	// Redirects apply to anonymous viewers and to accounts browsing
	// somebody else's blog.  The owner stays put.
	v, authed := viewer.FromContext(r.Context())
	if !authed || !v.IsOwnerOf(sub) {
		if tgt, reason, ok := tenantRedirect(rec, r.URL.Path); ok {
			metrics.RedirectTotal.WithLabelValues(reason).Inc()
			http.Redirect(w, r, tgt.String(), http.StatusFound)
			return
		}
	}

	serve(next, w, r, TenantScoped(rec))
}

func resolveCustomDomain(src TenantSource, host string,
	next http.Handler, w http.ResponseWriter, r *http.Request) {

	rec, err := src.ByCustomDomain(r.Context(), host)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			// Host matches neither canonical, subdomain, nor any
			// registered custom domain.
			metrics.ResolveTotal.WithLabelValues("invalid").Inc()
			http.Error(w, "unrecognized host", http.StatusBadRequest)
			return
		}
		zap.S().Errorw("custom domain lookup failed", "host", host, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	metrics.ResolveTotal.WithLabelValues("custom_domain").Inc()

	// Retired blog keeping its custom domain pointed here: forward to the
	// new home, content served from its root.
	if rec.HasRedirectDomain() {
		metrics.RedirectTotal.WithLabelValues("retired").Inc()
		tgt := TargetFromDomain(*rec.RedirectDomain, StripFirstSegment(r.URL.Path))
		http.Redirect(w, r, tgt.String(), http.StatusFound)
		return
	}

	serve(next, w, r, TenantScoped(rec))
}

// tenantRedirect computes the non-owner redirect for a subdomain request.
// The custom-domain target keeps the path; the retirement target strips
// the first segment.  Retirement wins when both are set.
func tenantRedirect(rec *tenant.Record, path string) (Target, string, bool) {
	var (
		tgt    Target
		reason string
		found  bool
	)
	if rec.HasCustomDomain() {
		tgt = TargetFromDomain(*rec.CustomDomain, path)
		reason = "custom_domain"
		found = true
	}
	if rec.HasRedirectDomain() {
		tgt = TargetFromDomain(*rec.RedirectDomain, StripFirstSegment(path))
		reason = "retired"
		found = true
	}
	return tgt, reason, found
}

func serve(next http.Handler, w http.ResponseWriter, r *http.Request, res Resolution) {
	ctx := WithResolution(r.Context(), res)
	next.ServeHTTP(w, r.WithContext(ctx))
}
