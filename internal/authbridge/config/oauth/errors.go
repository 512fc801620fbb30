package oauth

import "errors"

var (
	ErrNoProvidersConfigured   = errors.New("no oauth providers configured")
	ErrProviderConfigNil       = errors.New("provider config missing")
	ErrProviderIDMismatch      = errors.New("provider identifier mismatch")
	ErrProviderNotConfigured   = errors.New("provider not configured")
	ErrAuthURLMissing          = errors.New("oauth2 authorization endpoint is required")
	ErrAuthURLInvalid          = errors.New("invalid oauth2 authorization endpoint")
	ErrTokenURLMissing         = errors.New("oauth2 token endpoint is required")
	ErrTokenURLInvalid         = errors.New("invalid oauth2 token endpoint")
	ErrEndpointSchemeNotSecure = errors.New("oauth2 endpoint must use https")
)
