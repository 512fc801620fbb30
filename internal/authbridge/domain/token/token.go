package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Response is the normalized result of a successful code exchange.
type Response struct {
	accessToken  string
	tokenType    string
	expiresIn    int64
	refreshToken string
	scope        string
}

func NewResponse(accessToken, tokenType string, expiresIn int64, refreshToken, scope string) (*Response, error) {
	if accessToken == "" {
		return nil, ErrAccessTokenEmpty
	}

	if tokenType == "" {
		return nil, ErrTokenTypeEmpty
	}

	return &Response{
		accessToken:  accessToken,
		tokenType:    tokenType,
		expiresIn:    expiresIn,
		refreshToken: refreshToken,
		scope:        scope,
	}, nil
}

// Decode parses a token endpoint body. access_token, token_type and
// expires_in are required; refresh_token and scope default to "".
func Decode(body []byte) (*Response, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBodyMalformed, err)
	}

	if fields == nil {
		return nil, ErrBodyMalformed
	}

	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrBodyMalformed)
	}

	accessToken, err := requiredString(fields, "access_token")
	if err != nil {
		return nil, err
	}

	tokenType, err := requiredString(fields, "token_type")
	if err != nil {
		return nil, err
	}

	expiresIn, err := requiredSeconds(fields, "expires_in")
	if err != nil {
		return nil, err
	}

	return NewResponse(
		accessToken,
		tokenType,
		expiresIn,
		optionalString(fields, "refresh_token"),
		optionalString(fields, "scope"),
	)
}

func requiredString(fields map[string]any, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%w: %s", ErrFieldMissing, key)
	}

	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrFieldInvalid, key)
	}

	return value, nil
}

// requiredSeconds accepts a non-negative integral number or numeric string that
// fits in an int64.
func requiredSeconds(fields map[string]any, key string) (int64, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%w: %s", ErrFieldMissing, key)
	}

	var (
		n   int64
		err error
	)

	switch v := raw.(type) {
	case json.Number:
		n, err = numberSeconds(v)
	case string:
		n, err = strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		err = ErrFieldInvalid
	}

	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s", ErrFieldInvalid, key)
	}

	return n, nil
}

func numberSeconds(v json.Number) (int64, error) {
	if n, err := v.Int64(); err == nil {
		return n, nil
	}

	f, err := v.Float64()
	if err != nil {
		return 0, err
	}

	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, ErrFieldInvalid
	}

	return int64(f), nil
}

func optionalString(fields map[string]any, key string) string {
	value, _ := fields[key].(string)
	return value
}

func (r *Response) AccessToken() string {
	return r.accessToken
}

func (r *Response) TokenType() string {
	return r.tokenType
}

func (r *Response) ExpiresIn() int64 {
	return r.expiresIn
}

func (r *Response) RefreshToken() string {
	return r.refreshToken
}

func (r *Response) Scope() string {
	return r.scope
}

// ToMap returns the caller-facing payload.
func (r *Response) ToMap() map[string]any {
	return map[string]any{
		"access_token":  r.accessToken,
		"token_type":    r.tokenType,
		"expires_in":    r.expiresIn,
		"refresh_token": r.refreshToken,
		"scope":         r.scope,
	}
}
