package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"schoolhub-backend/internal/logger"

	"github.com/gorilla/mux"
)

// APIKeyMiddleware rejects requests whose X-API-Key header does not match
// the server-held shared secret. Comparison is constant time.
func APIKeyMiddleware(apiKey string) mux.MiddlewareFunc {
	expected := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := []byte(r.Header.Get("X-API-Key"))
			if subtle.ConstantTimeCompare(provided, expected) != 1 {
				writeJSON(w, http.StatusUnauthorized, errorBody{errorDetail{Code: "UNAUTHORIZED", Message: "invalid or missing API key"}})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware logs every request with method, path, status and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.InfoContext(r.Context(), "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
