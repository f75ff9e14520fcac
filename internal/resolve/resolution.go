// internal/resolve/resolution.go
//
// Immutable per-request resolution result.
//
// Context
// -------
// The host middleware classifies every inbound request and produces one
// Resolution value, threaded through the request context.  Handlers never
// mutate it and never poke at raw host strings again: a Resolution is
// either canonical (the platform's own domain) or tenant-scoped (one
// specific blog).  Fields are unexported so the only way to build a
// tenant-scoped value is through TenantScoped, which keeps subdomain and
// record consistent.
package resolve

import (
	"context"

	"github.com/plumeblog/plume/internal/tenant"
)

// Resolution is the outcome of host classification.  The zero value is
// the canonical (no tenant) case.
type Resolution struct {
	rec       *tenant.Record
	subdomain string
}

// CanonicalResolution is the request-is-for-the-platform-itself case.
func CanonicalResolution() Resolution { return Resolution{} }

// TenantScoped builds the resolution for one blog.  The subdomain is
// always the owner's username, even when the request arrived via a custom
// domain.
func TenantScoped(rec *tenant.Record) Resolution {
	return Resolution{rec: rec, subdomain: rec.Username}
}

// HasTenant reports whether the request is scoped to a blog.  Handlers
// must check it before calling Tenant or Subdomain.
func (r Resolution) HasTenant() bool { return r.rec != nil }

// Tenant returns the resolved blog owner, or nil for canonical requests.
func (r Resolution) Tenant() *tenant.Record { return r.rec }

// Subdomain returns the resolved subdomain slug, or "" for canonical
// requests.
func (r Resolution) Subdomain() string { return r.subdomain }

type ctxKey struct{} // unexported, collision-proof

// WithResolution stores res in ctx.  Called only by the middleware.
func WithResolution(ctx context.Context, res Resolution) context.Context {
	return context.WithValue(ctx, ctxKey{}, res)
}

// FromContext returns the resolution set by the middleware.  ok == false
// means the middleware has not run (test handlers mounted bare).
func FromContext(ctx context.Context) (Resolution, bool) {
	res, ok := ctx.Value(ctxKey{}).(Resolution)
	return res, ok
}
