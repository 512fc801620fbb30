package observability

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/logging"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/metrics"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/tracing"
)

type Config struct {
	ServiceInfo   logging.ServiceInfo
	Environment   logging.Environment
	TraceEndpoint string
	SamplingRate  float64
	DefaultModule logging.Module
}

// Resources are the process-wide observability handles created by Init.
type Resources struct {
	Logger  *slog.Logger
	Tracing *tracing.Provider
	Metrics *metrics.Registry
}

// Init installs the default logger, the global tracer provider and a fresh
// metrics registry.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	logger := logging.New(logging.Config{
		Service:       cfg.ServiceInfo,
		Environment:   cfg.Environment,
		DefaultModule: cfg.DefaultModule,
	})
	slog.SetDefault(logger)

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    cfg.ServiceInfo.Name,
		ServiceVersion: cfg.ServiceInfo.Version,
		Environment:    string(cfg.Environment),
		Endpoint:       cfg.TraceEndpoint,
		SamplingRate:   cfg.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	tp.Install()

	return &Resources{
		Logger:  logger,
		Tracing: tp,
		Metrics: metrics.NewRegistry(),
	}, nil
}

// Shutdown flushes pending spans.
func (r *Resources) Shutdown(ctx context.Context) error {
	if r == nil || r.Tracing == nil {
		return nil
	}

	return r.Tracing.Shutdown(ctx)
}
