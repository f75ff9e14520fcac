// internal/viewer/viewer.go
//
// Authenticated-identity plumbing.
//
// Context
// -------
// The platform treats authentication as an external concern: some session
// layer decides "this request is authenticated, and as whom", and the rest
// of the code only ever consumes that fact.  This package carries the fact
// through the request context and provides the cookie-backed session
// helpers the bundled handlers use.  Swapping the session implementation
// touches nothing outside this package.
package viewer

import (
	"context"
	"net/http"
	"time"
)

// Viewer identifies the authenticated account behind a request.  The zero
// value is never stored; absence of a Viewer in context means anonymous.
type Viewer struct {
	ID       int64
	Username string
}

// IsOwnerOf reports whether the viewer is the account named by username.
// The empty username never matches, so a zero Viewer owns nothing.
func (v Viewer) IsOwnerOf(username string) bool {
	return username != "" && v.Username == username
}

type ctxKey struct{} // unexported to avoid context-key collisions

// WithViewer returns a new context carrying the given viewer.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, ctxKey{}, v)
}

// FromContext extracts the viewer from ctx.  ok == false means the request
// is anonymous.
func FromContext(ctx context.Context) (Viewer, bool) {
	v, ok := ctx.Value(ctxKey{}).(Viewer)
	return v, ok
}

//
// session cookie
//

const cookieName = "plume_session"

// Lookup resolves a session token to a viewer.  Implemented by the tenant
// repository; declared here so the middleware does not import it.
type Lookup interface {
	ViewerByUsername(ctx context.Context, username string) (Viewer, error)
}

// Authenticate reads the session cookie and, when it names a live account,
// attaches the Viewer to the request context.  Invalid or stale cookies
// degrade to anonymous rather than erroring.
func Authenticate(lookup Lookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			v, err := lookup.ViewerByUsername(r.Context(), c.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), v)))
		})
	}
}

// Login sets a session cookie scoped to domain so it is visible on every
// tenant subdomain.  A production deployment should sign the payload; the
// handlers only depend on this tiny API, so swapping it in is painless.
func Login(w http.ResponseWriter, r *http.Request, domain, username string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    username,
		Domain:   domain,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(14 * 24 * time.Hour),
	})
}

// Logout clears the session cookie.
func Logout(w http.ResponseWriter, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Domain:   domain,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
