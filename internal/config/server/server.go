package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process-level server configuration.
type Config struct {
	Addr               string        `env:"BRIDGE_ADDR" envDefault:":8080"`
	CallbackPath       string        `env:"BRIDGE_CALLBACK_PATH" envDefault:"/callback"`
	ActivityResultPath string        `env:"BRIDGE_ACTIVITY_RESULT_PATH" envDefault:"/activity-result"`
	ShutdownTimeout    time.Duration `env:"BRIDGE_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ServiceName        string        `env:"SERVICE_NAME" envDefault:"spotify-auth-bridge"`
	Environment        string        `env:"ENV" envDefault:"dev"`
	TraceEndpoint      string        `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	TraceSamplingRate  float64       `env:"BRIDGE_TRACE_SAMPLING_RATE" envDefault:"1"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c == nil || strings.TrimSpace(c.Addr) == "" {
		return ErrAddrMissing
	}

	for _, path := range []string{c.CallbackPath, c.ActivityResultPath} {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("%w, got: %q", ErrPathInvalid, path)
		}
	}

	if c.CallbackPath == c.ActivityResultPath {
		return ErrPathConflict
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w, got: %v", ErrShutdownTimeoutInvalid, c.ShutdownTimeout)
	}

	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("%w, got: %v", ErrSamplingRateInvalid, c.TraceSamplingRate)
	}

	return nil
}
