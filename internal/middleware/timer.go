// internal/middleware/timer.go
//
// Stamps X-Request-Time on every response so slow pages are visible from
// curl without digging through logs.  The header must be written before
// the handler flushes, so the wrapper intercepts WriteHeader.
package middleware

import (
	"fmt"
	"net/http"
	"time"
)

type timedWriter struct {
	http.ResponseWriter
	start time.Time
	wrote bool
}

func (tw *timedWriter) WriteHeader(code int) {
	if !tw.wrote {
		tw.wrote = true
		tw.Header().Set("X-Request-Time",
			fmt.Sprintf("%dms", time.Since(tw.start).Milliseconds()))
	}
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timedWriter) Write(b []byte) (int, error) {
	if !tw.wrote {
		tw.WriteHeader(http.StatusOK)
	}
	return tw.ResponseWriter.Write(b)
}

// Timer measures handler latency and exposes it as a response header.
func Timer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&timedWriter{ResponseWriter: w, start: time.Now()}, r)
	})
}
