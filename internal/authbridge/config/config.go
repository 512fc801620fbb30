package config

import (
	"fmt"

	launchcfg "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/config/launch"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/config/oauth"
	_ "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/config/oauth/spotify"
)

// BridgeConfig holds all configuration for the authbridge module.
type BridgeConfig struct {
	Launch *launchcfg.Config
	OAuth  *oauth.Config
}

func Load() (*BridgeConfig, error) {
	launchConfig, err := launchcfg.Load()
	if err != nil {
		return nil, fmt.Errorf("load launch config: %w", err)
	}

	oauthConfig, err := oauth.Load()
	if err != nil {
		return nil, fmt.Errorf("load oauth providers: %w", err)
	}

	cfg := &BridgeConfig{
		Launch: launchConfig,
		OAuth:  oauthConfig,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *BridgeConfig) Validate() error {
	if c.Launch == nil {
		return ErrLaunchConfigMissing
	}

	if err := c.Launch.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrLaunchConfigInvalid, err)
	}

	if c.OAuth == nil {
		return ErrOAuthConfigMissing
	}

	if err := c.OAuth.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrOAuthConfigInvalid, err)
	}

	return nil
}
