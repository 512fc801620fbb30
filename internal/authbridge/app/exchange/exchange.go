package exchange

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/failure"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/token"
)

type Request struct {
	Code         string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type TokenClient interface {
	Exchange(ctx context.Context, req *Request) (*token.Response, error)
}

// Executor runs completions where the caller expects them.
type Executor interface {
	Post(ctx context.Context, task func()) error
}

// Completion receives the single outcome of an exchange.
type Completion func(resp *token.Response, err error)

type Recorder interface {
	ExchangeFinished(outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ExchangeFinished(_ string, _ time.Duration) {}

const OutcomeSuccess = "success"

type ExchangeUseCase interface {
	// Exchange validates req and, when it is complete, starts the token call in
	// the background. An error is returned only for invalid arguments, in which
	// case done is never called. Otherwise done is called exactly once.
	Exchange(ctx context.Context, req *Request, done Completion) error
}

type exchangeHandler struct {
	client   TokenClient
	executor Executor
	recorder Recorder
	logger   *slog.Logger
}

func NewExchangeHandler(client TokenClient, executor Executor, recorder Recorder) ExchangeUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &exchangeHandler{
		client:   client,
		executor: executor,
		recorder: recorder,
		logger:   slog.Default().WithGroup("authbridge").WithGroup("exchange"),
	}
}

func (h *exchangeHandler) Exchange(ctx context.Context, req *Request, done Completion) error {
	if req == nil || req.Code == "" || req.ClientID == "" || req.ClientSecret == "" || req.RedirectURI == "" {
		h.logger.WarnContext(ctx, "token exchange requested with missing arguments")

		return failure.New(failure.KindInvalidArguments, "Missing required arguments")
	}

	if done == nil {
		return failure.New(failure.KindInvalidArguments, "Missing required arguments: completion")
	}

	// the exchange outlives the caller's cancellation once started
	bgCtx := context.WithoutCancel(ctx)

	go h.run(bgCtx, req, done)

	return nil
}

func (h *exchangeHandler) run(ctx context.Context, req *Request, done Completion) {
	started := time.Now()

	resp, err := h.call(ctx, req)

	outcome := OutcomeSuccess
	if err != nil {
		outcome = string(failure.KindOf(err))
		h.logger.WarnContext(ctx, "token exchange failed",
			slog.String("kind", outcome),
			slog.String("error", err.Error()),
		)
	} else {
		h.logger.InfoContext(ctx, "token exchange succeeded", slog.String("token_type", resp.TokenType()))
	}

	h.recorder.ExchangeFinished(outcome, time.Since(started))

	h.complete(ctx, done, resp, err)
}

func (h *exchangeHandler) call(ctx context.Context, req *Request) (resp *token.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = failure.New(failure.KindUnexpectedError, "Unexpected error: %v", r)
		}
	}()

	resp, err = h.client.Exchange(ctx, req)
	if err != nil {
		var classified *failure.Error
		if !errors.As(err, &classified) {
			return nil, failure.Wrap(failure.KindUnexpectedError, err, "Unexpected error: %v", err)
		}

		return nil, err
	}

	if resp == nil {
		return nil, failure.Wrap(failure.KindUnexpectedError, ErrNoResponse, "Unexpected error: %v", ErrNoResponse)
	}

	return resp, nil
}

func (h *exchangeHandler) complete(ctx context.Context, done Completion, resp *token.Response, err error) {
	if h.executor == nil {
		done(resp, err)
		return
	}

	if postErr := h.executor.Post(ctx, func() { done(resp, err) }); postErr != nil {
		h.logger.WarnContext(ctx, "executor unavailable, completing on worker",
			slog.String("error", postErr.Error()),
		)
		done(resp, err)
	}
}
