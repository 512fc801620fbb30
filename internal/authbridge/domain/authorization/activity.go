package authorization

import "net/url"

// Result codes reported by an in-app authorization activity.
const (
	ResultOK       = -1
	ResultCanceled = 0
)

// ActivityResult is the raw payload delivered when an in-app authorization
// activity finishes.
type ActivityResult struct {
	RequestCode int
	ResultCode  int
	Data        *url.URL
}

// Response converts the raw payload. A non-OK result or a result without data
// is EMPTY, which callers treat as a cancellation.
func (r ActivityResult) Response() Response {
	if r.ResultCode != ResultOK || r.Data == nil {
		return Response{Type: TypeEmpty}
	}

	return ParseURI(r.Data)
}
