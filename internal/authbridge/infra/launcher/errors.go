package launcher

import "errors"

var (
	ErrActivityUnavailable = errors.New("activity helper command is not configured")
	ErrActivityStart       = errors.New("failed to start activity helper")
	ErrBrowserOpen         = errors.New("failed to open browser")
)
