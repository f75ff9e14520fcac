// Package middleware holds small, composable HTTP wrappers.
package middleware

import (
	"net/http"

	"github.com/plumeblog/plume/internal/resolve"
)

// ForceHTTPS wraps h.  If the request arrived over plain HTTP and the host
// is not a dev host, the wrapper issues a 308 Permanent Redirect to the
// HTTPS version of the same URL.  Behind a TLS-terminating proxy the
// scheme is taken from X-Forwarded-Proto.
func ForceHTTPS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := resolve.StripPort(r.Host)
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" ||
			host == "localhost" || host == "127.0.0.1" {
			h.ServeHTTP(w, r)
			return
		}
		target := "https://" + r.Host + r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	})
}
