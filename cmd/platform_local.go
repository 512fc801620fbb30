package main

import (
	"context"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/config/server"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/logging"
)

func initObservability(ctx context.Context, cfg *server.Config) (*observability.Resources, error) {
	env := logging.EnvDev
	if cfg.Environment != "" {
		env = logging.Environment(cfg.Environment)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     cfg.ServiceName,
			Version:  Version,
			Revision: Revision,
		},
		Environment:   env,
		TraceEndpoint: cfg.TraceEndpoint,
		SamplingRate:  cfg.TraceSamplingRate,
		DefaultModule: logging.Module("bridge"),
	})
}
