package server

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"BRIDGE_ADDR",
		"BRIDGE_CALLBACK_PATH",
		"BRIDGE_ACTIVITY_RESULT_PATH",
		"BRIDGE_SHUTDOWN_TIMEOUT",
		"SERVICE_NAME",
		"ENV",
		"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
		"BRIDGE_TRACE_SAMPLING_RATE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := &Config{
		Addr:               ":8080",
		CallbackPath:       "/callback",
		ActivityResultPath: "/activity-result",
		ShutdownTimeout:    10 * time.Second,
		ServiceName:        "spotify-auth-bridge",
		Environment:        "dev",
		TraceSamplingRate:  1,
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BRIDGE_ADDR", "127.0.0.1:9090")
	t.Setenv("BRIDGE_CALLBACK_PATH", "/oauth/redirect")
	t.Setenv("BRIDGE_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("ENV", "prod")
	t.Setenv("BRIDGE_TRACE_SAMPLING_RATE", "0.25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Addr != "127.0.0.1:9090" || cfg.CallbackPath != "/oauth/redirect" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("ShutdownTimeout = %v, want 3s", cfg.ShutdownTimeout)
	}

	if cfg.Environment != "prod" || cfg.TraceSamplingRate != 0.25 {
		t.Fatalf("unexpected observability config: %+v", cfg)
	}
}

func TestLoadParseError(t *testing.T) {
	clearEnv(t)
	t.Setenv("BRIDGE_SHUTDOWN_TIMEOUT", "forever")

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	valid := Config{
		Addr:               ":8080",
		CallbackPath:       "/callback",
		ActivityResultPath: "/activity-result",
		ShutdownTimeout:    time.Second,
		TraceSamplingRate:  1,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:    "missing addr",
			mutate:  func(c *Config) { c.Addr = " " },
			wantErr: ErrAddrMissing,
		},
		{
			name:    "relative callback path",
			mutate:  func(c *Config) { c.CallbackPath = "callback" },
			wantErr: ErrPathInvalid,
		},
		{
			name:    "same paths",
			mutate:  func(c *Config) { c.ActivityResultPath = c.CallbackPath },
			wantErr: ErrPathConflict,
		},
		{
			name:    "zero shutdown timeout",
			mutate:  func(c *Config) { c.ShutdownTimeout = 0 },
			wantErr: ErrShutdownTimeoutInvalid,
		},
		{
			name:    "sampling rate above one",
			mutate:  func(c *Config) { c.TraceSamplingRate = 1.5 },
			wantErr: ErrSamplingRateInvalid,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
