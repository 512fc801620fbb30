package authorization

import (
	"fmt"
	"net/url"
	"slices"
)

// ResponseType is the OAuth response_type requested from the provider.
type ResponseType string

const (
	ResponseTypeCode ResponseType = "code"
)

// Method selects how an authorization request is presented to the user.
type Method string

const (
	MethodActivity Method = "activity"
	MethodBrowser  Method = "browser"
)

func (m Method) Validate() error {
	switch m {
	case MethodActivity, MethodBrowser:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrMethodUnknown, string(m))
	}
}

// Request is an immutable authorization code request.
type Request struct {
	clientID     string
	redirectURI  string
	scopes       []string
	responseType ResponseType
	showDialog   bool
	state        string
}

// NewRequest builds a code request. The account chooser is always forced so
// that every login allows switching accounts.
func NewRequest(clientID, redirectURI string, scopes []string, state string) (*Request, error) {
	if clientID == "" {
		return nil, ErrClientIDEmpty
	}

	if redirectURI == "" {
		return nil, ErrRedirectURIEmpty
	}

	parsed, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedirectURIInvalid, err)
	}

	if parsed.Scheme == "" {
		return nil, fmt.Errorf("%w: scheme is required", ErrRedirectURIInvalid)
	}

	if scopes == nil {
		return nil, ErrScopesMissing
	}

	if state == "" {
		return nil, ErrStateEmpty
	}

	return &Request{
		clientID:     clientID,
		redirectURI:  redirectURI,
		scopes:       slices.Clone(scopes),
		responseType: ResponseTypeCode,
		showDialog:   true,
		state:        state,
	}, nil
}

func (r *Request) ClientID() string {
	return r.clientID
}

func (r *Request) RedirectURI() string {
	return r.redirectURI
}

func (r *Request) Scopes() []string {
	return slices.Clone(r.scopes)
}

func (r *Request) ResponseType() ResponseType {
	return r.responseType
}

func (r *Request) ShowDialog() bool {
	return r.showDialog
}

func (r *Request) State() string {
	return r.state
}
