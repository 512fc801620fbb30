package spotify

import (
	"os"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/config/oauth"
	"golang.org/x/oauth2"
)

const (
	authURLEnv  = "SPOTIFY_AUTH_URL"
	tokenURLEnv = "SPOTIFY_TOKEN_URL"

	defaultAuthURL  = "https://accounts.spotify.com/authorize"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
)

// Config is the Spotify accounts service endpoint configuration.
type Config struct {
	AuthURL  string
	TokenURL string
}

func init() {
	oauth.RegisterProvider(oauth.ProviderSpotify, loadConfig)
}

func loadConfig() (oauth.ProviderConfig, bool, error) {
	cfg := &Config{
		AuthURL:  getEnv(authURLEnv, defaultAuthURL),
		TokenURL: getEnv(tokenURLEnv, defaultTokenURL),
	}

	return cfg, true, nil
}

func (c *Config) ProviderID() oauth.ProviderID {
	return oauth.ProviderSpotify
}

func (c *Config) OAuth2Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   c.AuthURL,
		TokenURL:  c.TokenURL,
		AuthStyle: oauth2.AuthStyleInHeader,
	}
}

func (c *Config) Validate() error {
	if c.AuthURL == c.TokenURL {
		return ErrEndpointsIdentical
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
