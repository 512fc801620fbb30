package authbridge

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"connectrpc.com/otelconnect"
	appcorrelate "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/correlate"
	appexchange "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/exchange"
	applogin "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/login"
	applogout "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/logout"
	appsession "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/session"
	bridgeconfig "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/config"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/config/oauth"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/controller/callback"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/authorization"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/infra/clock"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/infra/launcher"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/infra/mainloop"
	bridgemetrics "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/infra/metrics"
	infraoauth "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/infra/oauth"
	bridgesvc "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/infra/service"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/infra/tokenclient"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/logging"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const moduleName logging.Module = "authbridge"

// Options customizes module wiring. Zero values select production defaults.
type Options struct {
	Metrics prometheus.Registerer
	Clock   clock.Clock
	// TokenHTTPClient overrides the client used for the token endpoint.
	TokenHTTPClient *http.Client
}

// Module is the wired bridge: the Connect service, the delivery channel
// handlers and the main loop they share.
type Module struct {
	loop        *mainloop.Loop
	correlator  *appcorrelate.Correlator
	activity    *launcher.ActivityLauncher
	servicePath string
	service     http.Handler
	callback    *callback.Handler
	logger      *slog.Logger
}

// NewModule wires the bridge from cfg. Helper processes started by the
// activity launcher are bound to ctx.
func NewModule(ctx context.Context, cfg *bridgeconfig.BridgeConfig, opts Options) (*Module, error) {
	logger := slog.Default().WithGroup("authbridge")

	if cfg == nil {
		return nil, bridgeconfig.ErrLaunchConfigMissing
	}

	provider, err := cfg.OAuth.Provider(oauth.ProviderSpotify)
	if err != nil {
		return nil, err
	}

	endpoint := provider.OAuth2Endpoint()

	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}

	var recorder *bridgemetrics.Metrics
	if opts.Metrics != nil {
		recorder = bridgemetrics.New(opts.Metrics)
	}

	loop := mainloop.New(0)
	correlator := appcorrelate.NewCorrelator(cfg.Launch.RequestCode, clk, correlateRecorder(recorder))
	urls := infraoauth.NewURLBuilder(endpoint)

	activity := launcher.NewActivityLauncher(
		ctx,
		cfg.Launch.ActivityCommand,
		cfg.Launch.RequestCode,
		urls,
		func(resultCtx context.Context, result authorization.ActivityResult) {
			if err := loop.Post(ctx, func() { correlator.HandleActivityResult(resultCtx, result) }); err != nil {
				logger.WarnContext(resultCtx, "activity result dropped", slog.String("error", err.Error()))
			}
		},
	)

	if !cfg.Launch.ActivityEnabled() {
		logger.Warn("activity command not configured; activity login is unavailable")
	}

	launchers := map[authorization.Method]applogin.Launcher{
		authorization.MethodActivity: activity,
		authorization.MethodBrowser:  launcher.NewBrowserLauncher(urls),
	}

	var tokenClient *tokenclient.Client
	if opts.TokenHTTPClient != nil {
		tokenClient, err = tokenclient.NewClientWithHTTPClient(endpoint.TokenURL, opts.TokenHTTPClient)
	} else {
		tokenClient, err = tokenclient.NewClient(endpoint.TokenURL, cfg.Launch.ExchangeTimeout)
	}

	if err != nil {
		return nil, fmt.Errorf("create token client: %w", err)
	}

	loginUseCase := applogin.NewLoginHandler(launchers, correlator, applogin.NewRandomStateGenerator(), loginRecorder(recorder))
	exchangeUseCase := appexchange.NewExchangeHandler(tokenClient, loop, exchangeRecorder(recorder))

	service := bridgesvc.NewService(
		loginUseCase,
		exchangeUseCase,
		applogout.NewLogoutHandler(),
		appsession.NewCheckSessionHandler(),
	)

	otelInterceptor, err := otelconnect.NewInterceptor()
	if err != nil {
		return nil, fmt.Errorf("create otel interceptor: %w", err)
	}

	path, handler := bridgesvc.NewHandler(service, connect.WithInterceptors(
		otelInterceptor,
		middleware.ConnectLoggingInterceptor(moduleName),
	))

	logger.Info("bridge service handler registered",
		slog.String("path", path),
		slog.String("token_url", endpoint.TokenURL),
	)

	return &Module{
		loop:        loop,
		correlator:  correlator,
		activity:    activity,
		servicePath: path,
		service:     handler,
		callback:    callback.NewHandler(correlator, loop),
		logger:      logger,
	}, nil
}

func correlateRecorder(m *bridgemetrics.Metrics) appcorrelate.Recorder {
	if m == nil {
		return nil
	}

	return m
}

func loginRecorder(m *bridgemetrics.Metrics) applogin.Recorder {
	if m == nil {
		return nil
	}

	return m
}

func exchangeRecorder(m *bridgemetrics.Metrics) appexchange.Recorder {
	if m == nil {
		return nil
	}

	return m
}

// Register mounts the Connect service and both delivery channel routes.
func (m *Module) Register(mux *http.ServeMux, callbackPath, activityResultPath string) {
	mux.Handle(m.servicePath, m.service)
	mux.Handle("GET "+callbackPath, middleware.HTTPLogging(moduleName, http.HandlerFunc(m.callback.Redirect)))
	mux.Handle("POST "+activityResultPath, middleware.HTTPLogging(moduleName, http.HandlerFunc(m.callback.ActivityResult)))
}

// Run drives the main loop until ctx ends.
func (m *Module) Run(ctx context.Context) error {
	return m.loop.Run(ctx)
}

// Shutdown stops the main loop and waits for running helper processes.
func (m *Module) Shutdown() {
	m.loop.Stop()
	m.activity.Wait()
}

// Ready probes the main loop with an empty task.
func (m *Module) Ready(ctx context.Context) error {
	return m.loop.Do(ctx, func() {})
}

// HasPending reports whether an authorization is awaiting its result.
func (m *Module) HasPending() bool {
	return m.correlator.HasPending()
}
