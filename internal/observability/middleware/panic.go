package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicRecoveryHTTP logs a panicking handler with its stack and answers
// 500. http.ErrAbortHandler is passed through untouched.
func PanicRecoveryHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func(ctx context.Context) {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.ErrorContext(ctx, "panic recovered",
				slog.String("event", "app.panic"),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", rec),
				slog.String("stack", string(debug.Stack())),
			)

			w.WriteHeader(http.StatusInternalServerError)
		}(ctx)

		next.ServeHTTP(w, r)
	})
}
