package exchange

import "errors"

var ErrNoResponse = errors.New("token client returned no response")
