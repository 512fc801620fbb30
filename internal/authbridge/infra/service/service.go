package service

import (
	"context"
	"log/slog"

	connect "connectrpc.com/connect"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/correlate"
	appexchange "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/exchange"
	applogin "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/login"
	applogout "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/logout"
	appsession "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/session"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/authorization"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/failure"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/token"
	"google.golang.org/protobuf/types/known/structpb"
)

type Service struct {
	login    applogin.LoginUseCase
	exchange appexchange.ExchangeUseCase
	logout   applogout.LogoutUseCase
	session  appsession.CheckSessionUseCase
	logger   *slog.Logger
}

func NewService(
	loginUseCase applogin.LoginUseCase,
	exchangeUseCase appexchange.ExchangeUseCase,
	logoutUseCase applogout.LogoutUseCase,
	sessionUseCase appsession.CheckSessionUseCase,
) *Service {
	return &Service{
		login:    loginUseCase,
		exchange: exchangeUseCase,
		logout:   logoutUseCase,
		session:  sessionUseCase,
		logger:   slog.Default().WithGroup("authbridge").WithGroup("service"),
	}
}

func (s *Service) LoginWithActivity(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Value], error) {
	return s.startLogin(ctx, req.Msg, authorization.MethodActivity, false)
}

func (s *Service) LoginWithBrowser(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Value], error) {
	return s.startLogin(ctx, req.Msg, authorization.MethodBrowser, false)
}

func (s *Service) LogoutWithDialog(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Value], error) {
	return s.startLogin(ctx, req.Msg, authorization.MethodBrowser, true)
}

func (s *Service) startLogin(
	ctx context.Context,
	args *structpb.Struct,
	method authorization.Method,
	logoutDialog bool,
) (*connect.Response[structpb.Value], error) {
	scopes, err := stringListArg(args, ArgScopes)
	if err != nil {
		return nil, toConnectError(failure.Wrap(failure.KindInvalidArguments, err, "Missing required arguments: %v", err))
	}

	loginReq := &applogin.LoginRequest{
		ClientID:    stringArg(args, ArgClientID),
		RedirectURI: stringArg(args, ArgRedirectURI),
		Scopes:      scopes,
		Method:      method,
	}

	var pending *correlate.Pending
	if logoutDialog {
		pending, err = s.login.LogoutWithDialog(ctx, loginReq)
	} else {
		pending, err = s.login.Login(ctx, loginReq)
	}

	if err != nil {
		return nil, toConnectError(err)
	}

	grant, err := pending.Wait(ctx)
	if err != nil {
		s.logger.DebugContext(ctx, "authorization wait ended with error",
			slog.String("pending_id", pending.ID()),
			slog.String("error", err.Error()),
		)

		return nil, toConnectError(err)
	}

	value, err := structpb.NewValue(grant.ToMap())
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(value), nil
}

type exchangeOutcome struct {
	resp *token.Response
	err  error
}

func (s *Service) ExchangeCodeForToken(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Value], error) {
	args := req.Msg

	outcomes := make(chan exchangeOutcome, 1)

	err := s.exchange.Exchange(ctx, &appexchange.Request{
		Code:         stringArg(args, ArgCode),
		ClientID:     stringArg(args, ArgClientID),
		ClientSecret: stringArg(args, ArgClientSecret),
		RedirectURI:  stringArg(args, ArgRedirectURI),
	}, func(resp *token.Response, err error) {
		outcomes <- exchangeOutcome{resp: resp, err: err}
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	select {
	case <-ctx.Done():
		return nil, toConnectError(ctx.Err())
	case outcome := <-outcomes:
		if outcome.err != nil {
			return nil, toConnectError(outcome.err)
		}

		value, err := structpb.NewValue(outcome.resp.ToMap())
		if err != nil {
			return nil, toConnectError(err)
		}

		return connect.NewResponse(value), nil
	}
}

func (s *Service) Logout(ctx context.Context, _ *connect.Request[structpb.Struct]) (*connect.Response[structpb.Value], error) {
	resp, err := s.logout.Logout(ctx)
	if err != nil {
		return nil, toConnectError(failure.Wrap(failure.KindLogoutError, err, "Error during logout: %v", err))
	}

	return connect.NewResponse(structpb.NewBoolValue(resp.Success)), nil
}

func (s *Service) HasActiveSession(ctx context.Context, _ *connect.Request[structpb.Struct]) (*connect.Response[structpb.Value], error) {
	result, err := s.session.HasActiveSession(ctx)
	if err != nil {
		return nil, toConnectError(failure.Wrap(failure.KindSessionCheckError, err, "Error checking session: %v", err))
	}

	return connect.NewResponse(structpb.NewBoolValue(result.Active)), nil
}
