package logout

import (
	"context"
	"log/slog"
)

type LogoutResponse struct {
	Success bool
}

type LogoutUseCase interface {
	Logout(ctx context.Context) (*LogoutResponse, error)
}

// logoutHandler holds no session state, so there is nothing to clear. The
// provider session is left untouched.
type logoutHandler struct {
	logger *slog.Logger
}

func NewLogoutHandler() LogoutUseCase {
	return &logoutHandler{
		logger: slog.Default().WithGroup("authbridge").WithGroup("logout"),
	}
}

func (h *logoutHandler) Logout(_ context.Context) (*LogoutResponse, error) {
	h.logger.Debug("logout requested")

	return &LogoutResponse{Success: true}, nil
}
