package login

import "errors"

var ErrLauncherMissing = errors.New("no launcher registered for method")
