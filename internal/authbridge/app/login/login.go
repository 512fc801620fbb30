package login

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/correlate"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/authorization"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/failure"
)

const missingArgumentsMessage = "Missing required arguments"

type Launcher interface {
	Launch(ctx context.Context, req *authorization.Request) error
}

type Registrar interface {
	Register(ctx context.Context, method authorization.Method) *correlate.Pending
	Rollback(ctx context.Context, p *correlate.Pending) bool
}

// LaunchOutcome labels how a launch attempt ended.
type LaunchOutcome string

const (
	LaunchOutcomeLaunched LaunchOutcome = "launched"
	LaunchOutcomeRejected LaunchOutcome = "rejected"
	LaunchOutcomeFailed   LaunchOutcome = "failed"
)

type Recorder interface {
	LaunchAttempted(method authorization.Method, outcome LaunchOutcome)
}

type nopRecorder struct{}

func (nopRecorder) LaunchAttempted(_ authorization.Method, _ LaunchOutcome) {}

// LoginRequest carries the caller's arguments. A nil Scopes means the
// argument was not supplied; an empty slice is a valid empty scope set.
type LoginRequest struct {
	ClientID    string
	RedirectURI string
	Scopes      []string
	Method      authorization.Method
}

type LoginUseCase interface {
	// Login registers the caller as pending and launches the authorization UI.
	// The returned handle resolves when a result is correlated.
	Login(ctx context.Context, req *LoginRequest) (*correlate.Pending, error)
	// LogoutWithDialog runs the same flow through the browser so the user can
	// pick another account. req.Method is ignored.
	LogoutWithDialog(ctx context.Context, req *LoginRequest) (*correlate.Pending, error)
}

type loginHandler struct {
	launchers map[authorization.Method]Launcher
	registrar Registrar
	states    StateGenerator
	recorder  Recorder
	logger    *slog.Logger
}

func NewLoginHandler(
	launchers map[authorization.Method]Launcher,
	registrar Registrar,
	states StateGenerator,
	recorder Recorder,
) LoginUseCase {
	if states == nil {
		states = NewRandomStateGenerator()
	}

	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &loginHandler{
		launchers: launchers,
		registrar: registrar,
		states:    states,
		recorder:  recorder,
		logger:    slog.Default().WithGroup("authbridge").WithGroup("login"),
	}
}

func (h *loginHandler) Login(ctx context.Context, req *LoginRequest) (*correlate.Pending, error) {
	if req != nil {
		if err := req.Method.Validate(); err != nil {
			h.logger.WarnContext(ctx, "login requested with unknown method", slog.String("method", string(req.Method)))

			return nil, failure.Wrap(failure.KindInvalidArguments, err, "%s: %v", missingArgumentsMessage, err)
		}
	}

	return h.start(ctx, req, methodOf(req), failure.KindAuthError, launchFailurePrefix(methodOf(req)))
}

func (h *loginHandler) LogoutWithDialog(ctx context.Context, req *LoginRequest) (*correlate.Pending, error) {
	return h.start(ctx, req, authorization.MethodBrowser, failure.KindLogoutError, "Error during logout with dialog")
}

func (h *loginHandler) start(
	ctx context.Context,
	req *LoginRequest,
	method authorization.Method,
	failureKind failure.Kind,
	failurePrefix string,
) (*correlate.Pending, error) {
	if req == nil || req.ClientID == "" || req.RedirectURI == "" || req.Scopes == nil {
		h.recorder.LaunchAttempted(method, LaunchOutcomeRejected)
		h.logger.WarnContext(ctx, "authorization requested with missing arguments", slog.String("method", string(method)))

		return nil, failure.New(failure.KindInvalidArguments, "%s", missingArgumentsMessage)
	}

	launcher, ok := h.launchers[method]
	if !ok {
		h.recorder.LaunchAttempted(method, LaunchOutcomeFailed)
		h.logger.ErrorContext(ctx, "no launcher configured", slog.String("method", string(method)))

		return nil, failure.Wrap(failureKind, ErrLauncherMissing, "%s: %v", failurePrefix, ErrLauncherMissing)
	}

	state, err := h.states.Generate()
	if err != nil {
		h.recorder.LaunchAttempted(method, LaunchOutcomeFailed)
		h.logger.ErrorContext(ctx, "failed to generate state", slog.String("error", err.Error()))

		return nil, failure.Wrap(failureKind, err, "%s: %v", failurePrefix, fmt.Errorf("generate state: %w", err))
	}

	authReq, err := authorization.NewRequest(req.ClientID, req.RedirectURI, req.Scopes, state)
	if err != nil {
		h.recorder.LaunchAttempted(method, LaunchOutcomeFailed)
		h.logger.WarnContext(ctx, "malformed authorization request", slog.String("error", err.Error()))

		return nil, failure.Wrap(failureKind, err, "%s: %v", failurePrefix, err)
	}

	pending := h.registrar.Register(ctx, method)

	if err := launcher.Launch(ctx, authReq); err != nil {
		h.registrar.Rollback(ctx, pending)
		h.recorder.LaunchAttempted(method, LaunchOutcomeFailed)
		h.logger.WarnContext(ctx, "failed to launch authorization",
			slog.String("method", string(method)),
			slog.String("error", err.Error()),
		)

		return nil, failure.Wrap(failureKind, err, "%s: %v", failurePrefix, err)
	}

	h.recorder.LaunchAttempted(method, LaunchOutcomeLaunched)
	h.logger.InfoContext(ctx, "authorization launched",
		slog.String("method", string(method)),
		slog.String("pending_id", pending.ID()),
	)

	return pending, nil
}

func methodOf(req *LoginRequest) authorization.Method {
	if req == nil {
		return ""
	}

	return req.Method
}

func launchFailurePrefix(method authorization.Method) string {
	if method == authorization.MethodActivity {
		return "Error starting login activity"
	}

	return "Error starting browser login"
}
