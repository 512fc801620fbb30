package oauth

import (
	"fmt"
	"net"
	"net/url"

	"golang.org/x/oauth2"
)

// ProviderID identifies a supported authorization server.
type ProviderID string

const (
	ProviderSpotify ProviderID = "spotify"
)

// ProviderConfig defines what every provider must supply. Client
// credentials arrive with each call, so a provider only describes where
// its endpoints live.
type ProviderConfig interface {
	ProviderID() ProviderID
	OAuth2Endpoint() oauth2.Endpoint
	Validate() error
}

// Config holds configured providers keyed by their identifier.
type Config struct {
	Providers map[ProviderID]ProviderConfig
}

func (c *Config) Validate() error {
	if c == nil || len(c.Providers) == 0 {
		return ErrNoProvidersConfigured
	}

	for id, provider := range c.Providers {
		if provider == nil {
			return fmt.Errorf("%s: %w", id, ErrProviderConfigNil)
		}

		if provider.ProviderID() != id {
			return fmt.Errorf("%s: %w", id, ErrProviderIDMismatch)
		}

		if err := validateEndpoint(provider.OAuth2Endpoint()); err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}

		if err := provider.Validate(); err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
	}

	return nil
}

// Provider returns the configuration registered under id.
func (c *Config) Provider(id ProviderID) (ProviderConfig, error) {
	if c == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrProviderNotConfigured)
	}

	provider, ok := c.Providers[id]
	if !ok || provider == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrProviderNotConfigured)
	}

	return provider, nil
}

func validateEndpoint(endpoint oauth2.Endpoint) error {
	if endpoint.AuthURL == "" {
		return ErrAuthURLMissing
	}

	if err := validateEndpointURL(endpoint.AuthURL, ErrAuthURLInvalid); err != nil {
		return err
	}

	if endpoint.TokenURL == "" {
		return ErrTokenURLMissing
	}

	return validateEndpointURL(endpoint.TokenURL, ErrTokenURLInvalid)
}

// validateEndpointURL requires https, except for loopback hosts which may
// use plain http.
func validateEndpointURL(raw string, invalid error) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", invalid, err)
	}

	if parsed.Host == "" {
		return fmt.Errorf("%w: host is required", invalid)
	}

	switch parsed.Scheme {
	case "https":
		return nil
	case "http":
		if isLoopback(parsed.Hostname()) {
			return nil
		}
	}

	return fmt.Errorf("%w, got: %s", ErrEndpointSchemeNotSecure, raw)
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}

	ip := net.ParseIP(host)

	return ip != nil && ip.IsLoopback()
}

// ProviderLoader builds a provider configuration. ok reports whether the
// provider is enabled.
type ProviderLoader func() (ProviderConfig, bool, error)

var loaders = map[ProviderID]ProviderLoader{}

// RegisterProvider registers a loader for a provider identifier.
func RegisterProvider(id ProviderID, loader ProviderLoader) {
	if loader == nil {
		panic("oauth: loader cannot be nil")
	}

	if _, ok := loaders[id]; ok {
		panic(fmt.Sprintf("oauth: provider %s already registered", id))
	}

	loaders[id] = loader
}

func Load() (*Config, error) {
	if len(loaders) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	providers := make(map[ProviderID]ProviderConfig)

	for id, loader := range loaders {
		cfg, ok, err := loader()
		if err != nil {
			return nil, fmt.Errorf("%s provider: %w", id, err)
		}

		if ok {
			providers[id] = cfg
		}
	}

	cfg := &Config{Providers: providers}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
