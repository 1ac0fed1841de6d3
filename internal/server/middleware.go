package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dkoosis/trendline/internal/logging"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestLogging logs every request with its status and duration, and puts
// the logger on the request context for handlers.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			r = r.WithContext(logging.WithLogger(r.Context(), logger))
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logging.LogHTTPRequest(logger, r.Method, r.URL.Path, rec.status,
				float64(time.Since(start).Nanoseconds())/1e6,
				slog.String("query", r.URL.RawQuery))
		})
	}
}
