package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge"
	bridgeconfig "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/config"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/config"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/health"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/middleware"
	"golang.org/x/sync/errgroup"
)

// Set with -ldflags at build time.
var (
	Version  = "dev"
	Revision = ""
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := config.LoadEnvFile(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := initObservability(ctx, cfg.Server)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	bridgeCfg, err := bridgeconfig.Load()
	if err != nil {
		slog.Error("failed to load bridge config", slog.String("error", err.Error()))

		return err
	}

	module, err := authbridge.NewModule(ctx, bridgeCfg, authbridge.Options{
		Metrics: obs.Metrics.Registerer(),
	})
	if err != nil {
		return fmt.Errorf("wire bridge module: %w", err)
	}

	checker := health.NewChecker(Version)
	checker.Register("main_loop", module.Ready)

	mux := http.NewServeMux()
	module.Register(mux, cfg.Server.CallbackPath, cfg.Server.ActivityResultPath)
	mux.HandleFunc("GET /health/live", checker.LiveHandler)
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler)
	mux.Handle("GET /metrics", obs.Metrics.Handler())

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           middleware.PanicRecoveryHTTP(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return module.Run(gctx)
	})

	g.Go(func() error {
		slog.Info("starting bridge server",
			slog.String("addr", cfg.Server.Addr),
			slog.String("callback_path", cfg.Server.CallbackPath),
			slog.String("version", Version),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		slog.Info("shutting down bridge server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		module.Shutdown()

		return err
	})

	return g.Wait()
}
