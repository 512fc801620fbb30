package failure

import (
	"errors"
	"fmt"
)

// Kind is the caller-facing error code reported across the bridge boundary.
type Kind string

const (
	KindInvalidArguments  Kind = "INVALID_ARGUMENTS"
	KindAuthError         Kind = "AUTH_ERROR"
	KindAuthCancelled     Kind = "AUTH_CANCELLED"
	KindNetworkError      Kind = "NETWORK_ERROR"
	KindHTTPError         Kind = "HTTP_ERROR"
	KindEmptyResponse     Kind = "EMPTY_RESPONSE"
	KindParseError        Kind = "PARSE_ERROR"
	KindUnexpectedError   Kind = "UNEXPECTED_ERROR"
	KindLogoutError       Kind = "LOGOUT_ERROR"
	KindSessionCheckError Kind = "SESSION_CHECK_ERROR"
)

// Error is a terminal bridge error carrying its kind and a human message.
type Error struct {
	kind    Kind
	message string
	cause   error
}

var (
	ErrInvalidArguments = &Error{kind: KindInvalidArguments, message: "invalid arguments"}
	ErrAuth             = &Error{kind: KindAuthError, message: "authorization error"}
	ErrAuthCancelled    = &Error{kind: KindAuthCancelled, message: "authorization cancelled"}
	ErrNetwork          = &Error{kind: KindNetworkError, message: "network error"}
	ErrHTTP             = &Error{kind: KindHTTPError, message: "http error"}
	ErrEmptyResponse    = &Error{kind: KindEmptyResponse, message: "empty response"}
	ErrParse            = &Error{kind: KindParseError, message: "parse error"}
	ErrUnexpected       = &Error{kind: KindUnexpectedError, message: "unexpected error"}
	ErrLogout           = &Error{kind: KindLogoutError, message: "logout error"}
	ErrSessionCheck     = &Error{kind: KindSessionCheckError, message: "session check error"}
)

func New(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Message() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any error of the same kind, so the package sentinels can be used
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.kind == e.kind
}

// KindOf reports the kind of err. Errors that were never classified are
// reported as KindUnexpectedError.
func KindOf(err error) Kind {
	var bridgeErr *Error
	if errors.As(err, &bridgeErr) {
		return bridgeErr.kind
	}

	return KindUnexpectedError
}
