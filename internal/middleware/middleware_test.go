// internal/middleware/middleware_test.go
//
// Tests for the small HTTP wrappers: header injection, latency stamping,
// and HTTPS enforcement.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Security(okHandler()).ServeHTTP(rr, req)

	for _, h := range []string{
		"Strict-Transport-Security",
		"Content-Security-Policy",
		"X-Frame-Options",
		"X-Content-Type-Options",
		"Referrer-Policy",
		"Permissions-Policy",
	} {
		if rr.Header().Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}
	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Errorf("X-Frame-Options = %q", rr.Header().Get("X-Frame-Options"))
	}
}

func TestTimerStampsHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Timer(okHandler()).ServeHTTP(rr, req)

	v := rr.Header().Get("X-Request-Time")
	if v == "" || !strings.HasSuffix(v, "ms") {
		t.Fatalf("X-Request-Time = %q", v)
	}
}

func TestForceHTTPSRedirects(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://alice.plume.blog/blog/hello/?x=1", nil)
	req.Host = "alice.plume.blog"

	ForceHTTPS(okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("status = %d, want 308", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "https://alice.plume.blog/blog/hello/?x=1" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestForceHTTPSSkipsForwardedTLS(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://alice.plume.blog/", nil)
	req.Host = "alice.plume.blog"
	req.Header.Set("X-Forwarded-Proto", "https")

	ForceHTTPS(okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 behind a TLS-terminating proxy", rr.Code)
	}
}

func TestForceHTTPSSkipsLocalhost(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://localhost:8080/", nil)
	req.Host = "localhost:8080"

	ForceHTTPS(okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 on localhost", rr.Code)
	}
}
