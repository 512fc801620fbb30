package callback

import "errors"

var (
	ErrBodyInvalid = errors.New("activity result body is invalid")
	ErrDataInvalid = errors.New("activity result data is not a uri")
)
