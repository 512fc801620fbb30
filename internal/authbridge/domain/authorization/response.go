package authorization

import (
	"net/url"
	"strconv"
)

// Type is the variant of an authorization response.
type Type string

const (
	TypeCode    Type = "CODE"
	TypeToken   Type = "TOKEN"
	TypeError   Type = "ERROR"
	TypeEmpty   Type = "EMPTY"
	TypeUnknown Type = "UNKNOWN"
)

// Response is the outcome reported by the external authorization flow.
// Only the fields of its variant are populated.
type Response struct {
	Type        Type
	Code        string
	State       string
	AccessToken string
	ExpiresIn   int
	Error       string
}

// ParseURI classifies a redirect URI. An error parameter wins over a code;
// an implicit-grant fragment is recognized as TOKEN; anything else is UNKNOWN.
func ParseURI(uri *url.URL) Response {
	if uri == nil {
		return Response{Type: TypeEmpty}
	}

	query := uri.Query()

	if query.Has("error") {
		return Response{
			Type:  TypeError,
			Error: query.Get("error"),
			State: query.Get("state"),
		}
	}

	if query.Has("code") {
		return Response{
			Type:  TypeCode,
			Code:  query.Get("code"),
			State: query.Get("state"),
		}
	}

	if uri.Fragment != "" {
		fragment, err := url.ParseQuery(uri.Fragment)
		if err == nil && fragment.Get("access_token") != "" {
			expiresIn, _ := strconv.Atoi(fragment.Get("expires_in"))

			return Response{
				Type:        TypeToken,
				AccessToken: fragment.Get("access_token"),
				State:       fragment.Get("state"),
				ExpiresIn:   expiresIn,
			}
		}
	}

	return Response{Type: TypeUnknown}
}

// CodeGrant is the success payload handed back to a waiting caller.
type CodeGrant struct {
	Code  string
	State string
}

func (g CodeGrant) ToMap() map[string]any {
	return map[string]any{
		"type":  string(TypeCode),
		"code":  g.Code,
		"state": g.State,
	}
}
