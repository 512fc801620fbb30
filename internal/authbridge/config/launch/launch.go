package launch

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	activityCommandEnv     = "BRIDGE_ACTIVITY_COMMAND"
	activityRequestCodeEnv = "BRIDGE_ACTIVITY_REQUEST_CODE"
	exchangeTimeoutEnv     = "BRIDGE_EXCHANGE_TIMEOUT"

	DefaultRequestCode     = 1337
	defaultExchangeTimeout = 30 * time.Second
)

// Config contains the settings for starting authorization flows and
// calling the token endpoint.
type Config struct {
	// ActivityCommand is the helper process hosting the in-app screen.
	// Empty disables activity login.
	ActivityCommand []string
	RequestCode     int
	ExchangeTimeout time.Duration
}

func Load() (*Config, error) {
	requestCode, err := getEnvInt(activityRequestCodeEnv, DefaultRequestCode)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ActivityCommand: getEnvFields(activityCommandEnv),
		RequestCode:     requestCode,
		ExchangeTimeout: getEnvDuration(exchangeTimeoutEnv, defaultExchangeTimeout),
	}

	return cfg, cfg.Validate()
}

func (c *Config) ActivityEnabled() bool {
	return len(c.ActivityCommand) > 0
}

func (c *Config) Validate() error {
	if c.RequestCode < 0 {
		return fmt.Errorf("%w, got: %d", ErrRequestCodeInvalid, c.RequestCode)
	}

	if c.ExchangeTimeout <= 0 {
		return fmt.Errorf("%w, got: %v", ErrExchangeTimeoutInvalid, c.ExchangeTimeout)
	}

	return nil
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrRequestCodeInvalid, key, val)
	}

	return parsed, nil
}

func getEnvFields(key string) []string {
	fields := strings.Fields(os.Getenv(key))
	if len(fields) == 0 {
		return nil
	}

	return fields
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}
