package logging

import (
	"io"
	"log/slog"
	"os"
)

// Module names the component a log line belongs to.
type Module string

// Environment selects the output format and default level.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// ServiceInfo is attached to every record under the "service" group.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

// Config configures the process logger.
type Config struct {
	Service       ServiceInfo
	Environment   Environment
	DefaultModule Module
	Level         slog.Leveler
	Output        io.Writer
}

// New builds a logger writing JSON in prod and text elsewhere. Records are
// enriched with the request id, module and trace ids carried by the context.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	level := cfg.Level
	if level == nil {
		level = defaultLevel(cfg.Environment)
	}

	opts := &slog.HandlerOptions{Level: level}

	var base slog.Handler
	if cfg.Environment == EnvProd {
		base = slog.NewJSONHandler(out, opts)
	} else {
		base = slog.NewTextHandler(out, opts)
	}

	handler := newContextHandler(base, cfg.DefaultModule)

	attrs := []any{slog.String("name", cfg.Service.Name), slog.String("env", string(cfg.Environment))}
	if cfg.Service.Version != "" {
		attrs = append(attrs, slog.String("version", cfg.Service.Version))
	}

	if cfg.Service.Revision != "" {
		attrs = append(attrs, slog.String("revision", cfg.Service.Revision))
	}

	return slog.New(handler).With(slog.Group("service", attrs...))
}

func defaultLevel(env Environment) slog.Level {
	if env == EnvProd {
		return slog.LevelInfo
	}

	return slog.LevelDebug
}
