package exchange_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/exchange"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/failure"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/token"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/infra/mainloop"
	"go.uber.org/mock/gomock"
)

type outcome struct {
	resp       *token.Response
	err        error
	onExecutor bool
}

func validRequest() *exchange.Request {
	return &exchange.Request{
		Code:         "code-123",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "spotify-app://callback",
	}
}

// inlineExecutor runs posted tasks on the posting goroutine and flags them.
func inlineExecutor(ctrl *gomock.Controller, flag *atomic.Bool) *exchange.MockExecutor {
	executor := exchange.NewMockExecutor(ctrl)
	executor.EXPECT().
		Post(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task func()) error {
			flag.Store(true)
			defer flag.Store(false)
			task()
			return nil
		}).
		Times(1)

	return executor
}

func awaitOutcome(t *testing.T, ch <-chan outcome) outcome {
	t.Helper()

	select {
	case o := <-ch:
		return o
	case <-time.After(2 * time.Second):
		t.Fatalf("exchange did not complete")
		return outcome{}
	}
}

func TestExchangeSuccessCompletesOnExecutor(t *testing.T) {
	ctrl := gomock.NewController(t)

	expected, err := token.NewResponse("T", "Bearer", 3600, "", "")
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	client := exchange.NewMockTokenClient(ctrl)
	client.EXPECT().Exchange(gomock.Any(), validRequest()).Return(expected, nil)

	var onExecutor atomic.Bool
	handler := exchange.NewExchangeHandler(client, inlineExecutor(ctrl, &onExecutor), nil)

	ch := make(chan outcome, 2)
	err = handler.Exchange(context.Background(), validRequest(), func(resp *token.Response, err error) {
		ch <- outcome{resp: resp, err: err, onExecutor: onExecutor.Load()}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := awaitOutcome(t, ch)
	if got.err != nil {
		t.Fatalf("unexpected error: %v", got.err)
	}
	if got.resp != expected {
		t.Fatalf("unexpected token response %+v", got.resp)
	}
	if !got.onExecutor {
		t.Fatalf("completion should run on the executor")
	}

	select {
	case extra := <-ch:
		t.Fatalf("completion called twice: %+v", extra)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestExchangeMissingArguments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *exchange.Request)
	}{
		{name: "code", mutate: func(req *exchange.Request) { req.Code = "" }},
		{name: "client id", mutate: func(req *exchange.Request) { req.ClientID = "" }},
		{name: "client secret", mutate: func(req *exchange.Request) { req.ClientSecret = "" }},
		{name: "redirect uri", mutate: func(req *exchange.Request) { req.RedirectURI = "" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			client := exchange.NewMockTokenClient(ctrl)
			client.EXPECT().Exchange(gomock.Any(), gomock.Any()).Times(0)

			handler := exchange.NewExchangeHandler(client, nil, nil)

			req := validRequest()
			tt.mutate(req)

			called := false
			err := handler.Exchange(context.Background(), req, func(*token.Response, error) { called = true })
			if !errors.Is(err, failure.ErrInvalidArguments) {
				t.Fatalf("expected InvalidArguments, got %v", err)
			}
			if called {
				t.Fatalf("completion must not run for invalid arguments")
			}
		})
	}
}

func TestExchangeErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(client *exchange.MockTokenClient)
		expectedKind failure.Kind
		messagePart  string
	}{
		{
			name: "classified error passes through",
			setup: func(client *exchange.MockTokenClient) {
				client.EXPECT().Exchange(gomock.Any(), gomock.Any()).
					Return(nil, failure.New(failure.KindHTTPError, "HTTP 400: Bad Request"))
			},
			expectedKind: failure.KindHTTPError,
			messagePart:  "HTTP 400",
		},
		{
			name: "unclassified error",
			setup: func(client *exchange.MockTokenClient) {
				client.EXPECT().Exchange(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("boom"))
			},
			expectedKind: failure.KindUnexpectedError,
			messagePart:  "Unexpected error: boom",
		},
		{
			name: "panicking client",
			setup: func(client *exchange.MockTokenClient) {
				client.EXPECT().Exchange(gomock.Any(), gomock.Any()).
					DoAndReturn(func(context.Context, *exchange.Request) (*token.Response, error) {
						panic("nil map write")
					})
			},
			expectedKind: failure.KindUnexpectedError,
			messagePart:  "nil map write",
		},
		{
			name: "no response and no error",
			setup: func(client *exchange.MockTokenClient) {
				client.EXPECT().Exchange(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			expectedKind: failure.KindUnexpectedError,
			messagePart:  "no response",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			client := exchange.NewMockTokenClient(ctrl)
			tt.setup(client)

			var onExecutor atomic.Bool
			handler := exchange.NewExchangeHandler(client, inlineExecutor(ctrl, &onExecutor), nil)

			ch := make(chan outcome, 1)
			if err := handler.Exchange(context.Background(), validRequest(), func(resp *token.Response, err error) {
				ch <- outcome{resp: resp, err: err}
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := awaitOutcome(t, ch)
			if got.resp != nil {
				t.Fatalf("expected no token on failure")
			}
			if kind := failure.KindOf(got.err); kind != tt.expectedKind {
				t.Fatalf("KindOf() = %s, want %s", kind, tt.expectedKind)
			}
			if !strings.Contains(got.err.Error(), tt.messagePart) {
				t.Fatalf("error %q should contain %q", got.err.Error(), tt.messagePart)
			}
		})
	}
}

func TestExchangeSurvivesCallerCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)

	release := make(chan struct{})

	client := exchange.NewMockTokenClient(ctrl)
	client.EXPECT().
		Exchange(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *exchange.Request) (*token.Response, error) {
			<-release
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return token.NewResponse("T", "Bearer", 60, "", "")
		})

	handler := exchange.NewExchangeHandler(client, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan outcome, 1)
	if err := handler.Exchange(ctx, validRequest(), func(resp *token.Response, err error) {
		ch <- outcome{resp: resp, err: err}
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancel()
	close(release)

	got := awaitOutcome(t, ch)
	if got.err != nil {
		t.Fatalf("exchange should not observe caller cancellation, got %v", got.err)
	}
}

func TestExchangeFallsBackWhenExecutorStopped(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := exchange.NewMockTokenClient(ctrl)
	client.EXPECT().Exchange(gomock.Any(), gomock.Any()).
		Return(nil, failure.New(failure.KindNetworkError, "Token exchange failed: refused"))

	executor := exchange.NewMockExecutor(ctrl)
	executor.EXPECT().Post(gomock.Any(), gomock.Any()).Return(errors.New("stopped"))

	handler := exchange.NewExchangeHandler(client, executor, nil)

	ch := make(chan outcome, 2)
	if err := handler.Exchange(context.Background(), validRequest(), func(resp *token.Response, err error) {
		ch <- outcome{resp: resp, err: err}
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := awaitOutcome(t, ch)
	if !errors.Is(got.err, failure.ErrNetwork) {
		t.Fatalf("expected NetworkError, got %v", got.err)
	}
}

// signallingExecutor reports each accepted post before returning.
type signallingExecutor struct {
	loop   *mainloop.Loop
	posted chan struct{}
}

func (e *signallingExecutor) Post(ctx context.Context, task func()) error {
	if err := e.loop.Post(ctx, task); err != nil {
		return err
	}

	close(e.posted)

	return nil
}

func TestExchangeCompletesWhenLoopStopsWhileBusy(t *testing.T) {
	ctrl := gomock.NewController(t)

	expected, err := token.NewResponse("T", "Bearer", 3600, "", "")
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	client := exchange.NewMockTokenClient(ctrl)
	client.EXPECT().Exchange(gomock.Any(), gomock.Any()).Return(expected, nil)

	loop := mainloop.New(4)
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		_ = loop.Run(runCtx)
	}()

	busy := make(chan struct{})
	release := make(chan struct{})
	if err := loop.Post(context.Background(), func() {
		close(busy)
		<-release
	}); err != nil {
		t.Fatalf("Post() unexpected error: %v", err)
	}
	<-busy

	executor := &signallingExecutor{loop: loop, posted: make(chan struct{})}
	handler := exchange.NewExchangeHandler(client, executor, nil)

	ch := make(chan outcome, 2)
	if err := handler.Exchange(context.Background(), validRequest(), func(resp *token.Response, err error) {
		ch <- outcome{resp: resp, err: err}
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-executor.posted:
	case <-time.After(2 * time.Second):
		t.Fatalf("completion was not posted")
	}

	cancel()
	close(release)
	<-runDone

	got := awaitOutcome(t, ch)
	if got.err != nil || got.resp != expected {
		t.Fatalf("expected token outcome, got resp=%v err=%v", got.resp, got.err)
	}

	select {
	case extra := <-ch:
		t.Fatalf("completion delivered twice: %+v", extra)
	default:
	}
}
