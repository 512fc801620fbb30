package tokenclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/exchange"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/failure"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/token"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.38.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/infra/tokenclient"
	maxResponseBody = 1 << 20
)

// Client posts authorization codes to a token endpoint and classifies the
// outcome. It makes a single attempt per call.
type Client struct {
	tokenURL   string
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *slog.Logger
}

func NewClient(tokenURL string, timeout time.Duration) (*Client, error) {
	return NewClientWithHTTPClient(tokenURL, &http.Client{Timeout: timeout})
}

func NewClientWithHTTPClient(tokenURL string, httpClient *http.Client) (*Client, error) {
	if tokenURL == "" {
		return nil, ErrTokenURLEmpty
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		tokenURL:   tokenURL,
		httpClient: httpClient,
		tracer:     otel.Tracer(tracerName),
		logger:     slog.Default().WithGroup("authbridge").WithGroup("tokenclient"),
	}, nil
}

func (c *Client) Exchange(ctx context.Context, req *exchange.Request) (*token.Response, error) {
	ctx, span := c.tracer.Start(ctx, "tokenclient.Exchange",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodPost,
			semconv.URLFull(c.tokenURL),
		),
	)
	defer span.End()

	resp, err := c.exchange(ctx, span, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(failure.KindOf(err)))

		return nil, err
	}

	span.SetStatus(codes.Ok, "")

	return resp, nil
}

func (c *Client) exchange(ctx context.Context, span trace.Span, req *exchange.Request) (*token.Response, error) {
	form := url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {req.Code},
		"redirect_uri": {req.RedirectURI},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, failure.Wrap(failure.KindUnexpectedError, err, "Unexpected error: %v", err)
	}

	httpReq.SetBasicAuth(req.ClientID, req.ClientSecret)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	tracing.InjectToHTTPRequest(ctx, httpReq)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WarnContext(ctx, "token endpoint unreachable", slog.String("error", err.Error()))

		return nil, failure.Wrap(failure.KindNetworkError, err, "Token exchange failed: %v", err)
	}
	defer httpResp.Body.Close()

	span.SetAttributes(semconv.HTTPResponseStatusCode(httpResp.StatusCode))

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		c.logger.WarnContext(ctx, "token endpoint rejected exchange", slog.Int("status", httpResp.StatusCode))

		return nil, failure.New(failure.KindHTTPError, "HTTP %d: %s", httpResp.StatusCode, reasonPhrase(httpResp))
	}

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return nil, failure.Wrap(failure.KindNetworkError, err, "Token exchange failed: %v", err)
	}

	if len(body) == 0 {
		return nil, failure.New(failure.KindEmptyResponse, "Empty response body")
	}

	resp, err := token.Decode(body)
	if err != nil {
		return nil, failure.Wrap(failure.KindParseError, err, "Error parsing token response: %v", err)
	}

	return resp, nil
}

// reasonPhrase returns the status text the server sent, falling back to the
// canonical text for the code.
func reasonPhrase(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if reason := strings.TrimPrefix(resp.Status, prefix); reason != resp.Status && reason != "" {
		return reason
	}

	return http.StatusText(resp.StatusCode)
}
