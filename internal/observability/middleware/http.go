package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// HTTPLogging tags plain HTTP requests with a request id and module and logs
// their completion.
func HTTPLogging(module logging.Module, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := logging.ValidateAndExtractRequestID(r.Header.Get(requestIDHeader))

		ctx := logging.WithRequestID(r.Context(), requestID)
		if module != "" {
			ctx = logging.WithModule(ctx, module)
		}

		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()

		next.ServeHTTP(rec, r.WithContext(ctx))

		slog.InfoContext(ctx, "http request completed",
			slog.String("event", "http.request.finish"),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", time.Since(started)),
		)
	})
}
