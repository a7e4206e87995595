package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// RequestLogger logs one line per request with method, path, request id, and
// elapsed time. The id is taken from X-Request-ID when the client sends one.
func RequestLogger(logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = uuid.NewString()
			}
			log := logger.With(
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", reqID,
			)
			log.Info("request started", "remote_ip", r.RemoteAddr)

			start := time.Now()
			next.ServeHTTP(w, r)

			log.Info("request completed", "duration_ms", time.Since(start).Milliseconds())
		})
	}
}
