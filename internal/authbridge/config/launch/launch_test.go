package launch

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadSuccess(t *testing.T) {
	tests := []struct {
		name        string
		command     string
		requestCode string
		timeout     string
		want        *Config
	}{
		{
			name: "defaults",
			want: &Config{
				ActivityCommand: nil,
				RequestCode:     DefaultRequestCode,
				ExchangeTimeout: defaultExchangeTimeout,
			},
		},
		{
			name:        "overrides",
			command:     "  /usr/local/bin/auth-screen   --fullscreen ",
			requestCode: "42",
			timeout:     "5s",
			want: &Config{
				ActivityCommand: []string{"/usr/local/bin/auth-screen", "--fullscreen"},
				RequestCode:     42,
				ExchangeTimeout: 5 * time.Second,
			},
		},
		{
			name:    "unparseable timeout falls back to default",
			timeout: "soon",
			want: &Config{
				RequestCode:     DefaultRequestCode,
				ExchangeTimeout: defaultExchangeTimeout,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(activityCommandEnv, tt.command)
			t.Setenv(activityRequestCodeEnv, tt.requestCode)
			t.Setenv(exchangeTimeoutEnv, tt.timeout)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}

			if diff := cmp.Diff(tt.want, cfg); diff != "" {
				t.Fatalf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name        string
		requestCode string
		timeout     string
		wantErr     error
	}{
		{
			name:        "request code not a number",
			requestCode: "abc",
			wantErr:     ErrRequestCodeInvalid,
		},
		{
			name:        "negative request code",
			requestCode: "-1",
			wantErr:     ErrRequestCodeInvalid,
		},
		{
			name:    "non-positive timeout",
			timeout: "0s",
			wantErr: ErrExchangeTimeoutInvalid,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(activityCommandEnv, "")
			t.Setenv(activityRequestCodeEnv, tt.requestCode)
			t.Setenv(exchangeTimeoutEnv, tt.timeout)

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestActivityEnabled(t *testing.T) {
	t.Parallel()

	if (&Config{}).ActivityEnabled() {
		t.Fatalf("expected activity disabled without a command")
	}

	if !(&Config{ActivityCommand: []string{"helper"}}).ActivityEnabled() {
		t.Fatalf("expected activity enabled with a command")
	}
}
