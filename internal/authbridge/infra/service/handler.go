package service

import (
	"net/http"

	connect "connectrpc.com/connect"
)

// NewHandler registers every procedure of the service and returns the base
// path to mount the handler at.
func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()

	mux.Handle(LoginWithActivityProcedure, connect.NewUnaryHandler(LoginWithActivityProcedure, svc.LoginWithActivity, opts...))
	mux.Handle(LoginWithBrowserProcedure, connect.NewUnaryHandler(LoginWithBrowserProcedure, svc.LoginWithBrowser, opts...))
	mux.Handle(ExchangeCodeForTokenProcedure, connect.NewUnaryHandler(ExchangeCodeForTokenProcedure, svc.ExchangeCodeForToken, opts...))
	mux.Handle(LogoutProcedure, connect.NewUnaryHandler(LogoutProcedure, svc.Logout, opts...))
	mux.Handle(LogoutWithDialogProcedure, connect.NewUnaryHandler(LogoutWithDialogProcedure, svc.LogoutWithDialog, opts...))
	mux.Handle(HasActiveSessionProcedure, connect.NewUnaryHandler(
		HasActiveSessionProcedure,
		svc.HasActiveSession,
		append([]connect.HandlerOption{connect.WithIdempotency(connect.IdempotencyNoSideEffects)}, opts...)...,
	))

	return "/" + ServiceName + "/", mux
}
