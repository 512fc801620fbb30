package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge"
	bridgeconfig "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/config"
	bridgesvc "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/infra/service"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/middleware"
	"google.golang.org/protobuf/types/known/structpb"
)

const defaultScopes = "user-read-email,user-read-private"

func main() {
	log.SetFlags(0)

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	clientID := requireEnv("SPOTIFY_CLIENT_ID")
	clientSecret := requireEnv("SPOTIFY_CLIENT_SECRET")
	redirectURI := requireEnv("SPOTIFY_REDIRECT_URI")

	scopes := os.Getenv("SPOTIFY_SCOPES")
	if scopes == "" {
		scopes = defaultScopes
	}

	baseURL, stop, err := startBridge(ctx, redirectURI)
	if err != nil {
		return err
	}
	defer stop()

	loginClient := newClient(baseURL, bridgesvc.LoginWithBrowserProcedure)
	exchangeClient := newClient(baseURL, bridgesvc.ExchangeCodeForTokenProcedure)

	loginArgs, err := structpb.NewStruct(map[string]any{
		bridgesvc.ArgClientID:    clientID,
		bridgesvc.ArgRedirectURI: redirectURI,
		bridgesvc.ArgScopes:      toAnySlice(strings.Split(scopes, ",")),
	})
	if err != nil {
		return fmt.Errorf("build login arguments: %w", err)
	}

	log.Println("------------------------------------------------------------")
	log.Println("Complete the Spotify login in the browser window that opened.")
	log.Println("------------------------------------------------------------")

	loginResp, err := loginClient.CallUnary(ctx, connect.NewRequest(loginArgs))
	if err != nil {
		return describe("login with browser", err)
	}

	grant := loginResp.Msg.GetStructValue().AsMap()

	code, _ := grant["code"].(string)
	if code == "" {
		return fmt.Errorf("login returned no code: %v", grant)
	}

	log.Printf("Authorization code received (state=%v)", grant["state"])

	exchangeArgs, err := structpb.NewStruct(map[string]any{
		bridgesvc.ArgCode:         code,
		bridgesvc.ArgClientID:     clientID,
		bridgesvc.ArgClientSecret: clientSecret,
		bridgesvc.ArgRedirectURI:  redirectURI,
	})
	if err != nil {
		return fmt.Errorf("build exchange arguments: %w", err)
	}

	tokenResp, err := exchangeClient.CallUnary(ctx, connect.NewRequest(exchangeArgs))
	if err != nil {
		return describe("exchange code for token", err)
	}

	tokens := tokenResp.Msg.GetStructValue().AsMap()

	accessToken, _ := tokens["access_token"].(string)
	refreshToken, _ := tokens["refresh_token"].(string)

	log.Printf("Exchange succeeded. token_type=%v expires_in=%v scope=%v", tokens["token_type"], tokens["expires_in"], tokens["scope"])
	log.Printf("access_token length=%d refresh_token length=%d", len(accessToken), len(refreshToken))

	return nil
}

func newClient(baseURL, procedure string) *connect.Client[structpb.Struct, structpb.Value] {
	return connect.NewClient[structpb.Struct, structpb.Value](
		http.DefaultClient,
		baseURL+procedure,
		connect.WithInterceptors(middleware.ConnectClientInterceptor()),
	)
}

// startBridge serves the bridge on the host and path of redirectURI so the
// provider redirect lands on the callback handler.
func startBridge(ctx context.Context, redirectURI string) (string, func(), error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", nil, fmt.Errorf("invalid redirect uri %q: %w", redirectURI, err)
	}

	if u.Scheme != "http" || u.Host == "" || u.Path == "" {
		return "", nil, fmt.Errorf("redirect uri must be http with host, port, and path; got %q", redirectURI)
	}

	cfg, err := bridgeconfig.Load()
	if err != nil {
		return "", nil, fmt.Errorf("load bridge config: %w", err)
	}

	module, err := authbridge.NewModule(ctx, cfg, authbridge.Options{})
	if err != nil {
		return "", nil, fmt.Errorf("wire bridge module: %w", err)
	}

	listener, err := net.Listen("tcp", u.Host)
	if err != nil {
		return "", nil, fmt.Errorf("open listener on %s: %w", u.Host, err)
	}

	mux := http.NewServeMux()
	module.Register(mux, u.Path, "/activity-result")

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	loopCtx, stopLoop := context.WithCancel(ctx)

	go func() {
		_ = module.Run(loopCtx)
	}()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("bridge server stopped: %v", err)
		}
	}()

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = server.Shutdown(shutdownCtx)
		stopLoop()
		module.Shutdown()
	}

	return "http://" + listener.Addr().String(), shutdown, nil
}

func describe(step string, err error) error {
	if kind, message, ok := bridgesvc.FailureFromError(err); ok {
		return fmt.Errorf("%s failed: %s: %s", step, kind, message)
	}

	return fmt.Errorf("%s failed: %w", step, err)
}

func toAnySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}

func requireEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("environment variable %s must be set for this CLI", key)
	}

	return val
}
