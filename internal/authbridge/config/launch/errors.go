package launch

import "errors"

var (
	ErrRequestCodeInvalid     = errors.New("activity request code must be a non-negative integer")
	ErrExchangeTimeoutInvalid = errors.New("exchange timeout must be positive")
)
