package mainloop

import "errors"

var (
	ErrStopped        = errors.New("main loop is stopped")
	ErrAlreadyRunning = errors.New("main loop is already running")
	ErrTaskNil        = errors.New("task must not be nil")
)
