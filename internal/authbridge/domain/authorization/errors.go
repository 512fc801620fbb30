package authorization

import "errors"

var (
	ErrClientIDEmpty      = errors.New("client id must be specified")
	ErrRedirectURIEmpty   = errors.New("redirect uri must be specified")
	ErrRedirectURIInvalid = errors.New("redirect uri is malformed")
	ErrScopesMissing      = errors.New("scopes must be specified")
	ErrStateEmpty         = errors.New("state must be specified")
	ErrMethodUnknown      = errors.New("launch method is unknown")
)
