package oauth

import (
	"fmt"
	"net/url"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/authorization"
	"golang.org/x/oauth2"
)

// URLBuilder renders authorization requests against a provider's authorize
// endpoint.
type URLBuilder struct {
	endpoint oauth2.Endpoint
}

func NewURLBuilder(endpoint oauth2.Endpoint) *URLBuilder {
	return &URLBuilder{endpoint: endpoint}
}

func (b *URLBuilder) Endpoint() oauth2.Endpoint {
	return b.endpoint
}

// Build returns the URL the user agent is sent to for req.
func (b *URLBuilder) Build(req *authorization.Request) (string, error) {
	parsed, err := url.Parse(b.endpoint.AuthURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthURLInvalid, err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrAuthURLInvalid, b.endpoint.AuthURL)
	}

	cfg := &oauth2.Config{
		ClientID:    req.ClientID(),
		Endpoint:    b.endpoint,
		RedirectURL: req.RedirectURI(),
		Scopes:      req.Scopes(),
	}

	opts := []oauth2.AuthCodeOption{}
	if req.ShowDialog() {
		opts = append(opts, oauth2.SetAuthURLParam("show_dialog", "true"))
	}

	return cfg.AuthCodeURL(req.State(), opts...), nil
}
