package spotify

import "errors"

var ErrEndpointsIdentical = errors.New("spotify authorization and token endpoints must differ")
