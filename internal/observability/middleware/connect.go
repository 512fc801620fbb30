package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const requestIDHeader = "x-request-id"

// ConnectLoggingInterceptor tags server calls with a request id and module
// and logs one line per finished call. Caller-side failures are logged at
// warn, everything else at error.
func ConnectLoggingInterceptor(module logging.Module) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}

			requestID := logging.ValidateAndExtractRequestID(req.Header().Get(requestIDHeader))

			ctx = logging.WithRequestID(ctx, requestID)
			if module != "" {
				ctx = logging.WithModule(ctx, module)
			}

			procedure := req.Spec().Procedure
			started := time.Now()

			resp, err := next(ctx, req)

			elapsed := slog.Duration("elapsed", time.Since(started))

			if err != nil {
				code := connect.CodeOf(err)

				slog.Log(ctx, levelForCode(code), "rpc failed",
					slog.String("event", "rpc.request.fail"),
					slog.String("procedure", procedure),
					slog.String("code", code.String()),
					slog.String("error", err.Error()),
					elapsed,
				)

				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					connectErr.Meta().Set(requestIDHeader, requestID)
				}

				return resp, err
			}

			slog.InfoContext(ctx, "rpc completed",
				slog.String("event", "rpc.request.finish"),
				slog.String("procedure", procedure),
				elapsed,
			)

			if resp != nil {
				resp.Header().Set(requestIDHeader, requestID)
			}

			return resp, nil
		}
	}
}

func levelForCode(code connect.Code) slog.Level {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeAborted, connect.CodeCanceled, connect.CodePermissionDenied:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// ConnectClientInterceptor forwards the request id and trace context on
// outgoing calls.
func ConnectClientInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if !req.Spec().IsClient {
				return next(ctx, req)
			}

			requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
			ctx = logging.WithRequestID(ctx, requestID)
			req.Header().Set(requestIDHeader, requestID)
			otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header()))

			return next(ctx, req)
		}
	}
}
