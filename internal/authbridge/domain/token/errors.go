package token

import "errors"

var (
	ErrBodyMalformed    = errors.New("token response is not a json object")
	ErrFieldMissing     = errors.New("token response field is missing")
	ErrFieldInvalid     = errors.New("token response field has an unexpected type or value")
	ErrAccessTokenEmpty = errors.New("access token must be specified")
	ErrTokenTypeEmpty   = errors.New("token type must be specified")
)
