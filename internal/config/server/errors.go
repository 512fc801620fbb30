package server

import "errors"

var (
	ErrAddrMissing            = errors.New("listen address is required")
	ErrPathInvalid            = errors.New("callback paths must start with /")
	ErrPathConflict           = errors.New("callback and activity result paths must differ")
	ErrShutdownTimeoutInvalid = errors.New("shutdown timeout must be positive")
	ErrSamplingRateInvalid    = errors.New("trace sampling rate must be within [0, 1]")
)
