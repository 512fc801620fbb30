package correlate

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/authorization"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/failure"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/infra/clock"
)

// Channel names the path an authorization result arrived on.
type Channel string

const (
	ChannelActivityResult Channel = "activity_result"
	ChannelRedirect       Channel = "redirect"
)

// Outcome labels how a delivery was handled.
type Outcome string

const (
	OutcomeCode      Outcome = "code"
	OutcomeError     Outcome = "error"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeDropped   Outcome = "dropped"
	OutcomeIgnored   Outcome = "ignored"
)

type Recorder interface {
	PendingOverwritten()
	ResultDelivered(channel Channel, outcome Outcome)
}

type nopRecorder struct{}

func (nopRecorder) PendingOverwritten()                  {}
func (nopRecorder) ResultDelivered(_ Channel, _ Outcome) {}

// Correlator matches authorization results from either delivery channel with
// the single outstanding caller.
type Correlator struct {
	slot        Slot
	requestCode int
	clock       clock.Clock
	recorder    Recorder
	logger      *slog.Logger
}

func NewCorrelator(requestCode int, clk clock.Clock, recorder Recorder) *Correlator {
	if clk == nil {
		clk = clock.SystemClock{}
	}

	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Correlator{
		requestCode: requestCode,
		clock:       clk,
		recorder:    recorder,
		logger:      slog.Default().WithGroup("authbridge").WithGroup("correlate"),
	}
}

// RequestCode is the activity request code whose results are accepted.
func (c *Correlator) RequestCode() int {
	return c.requestCode
}

// Register makes a new handle the pending one. A handle that was already
// pending is dropped without being resolved.
func (c *Correlator) Register(ctx context.Context, method authorization.Method) *Pending {
	p := newPending(method, c.clock.Now())

	if previous := c.slot.Replace(p); previous != nil {
		c.recorder.PendingOverwritten()
		c.logger.WarnContext(ctx, "pending request overwritten",
			slog.String("previous_id", previous.ID()),
			slog.String("previous_method", string(previous.Method())),
			slog.String("pending_id", p.ID()),
		)
	}

	c.logger.DebugContext(ctx, "pending request registered",
		slog.String("pending_id", p.ID()),
		slog.String("method", string(method)),
	)

	return p
}

// Rollback withdraws p if it is still the pending handle.
func (c *Correlator) Rollback(ctx context.Context, p *Pending) bool {
	if !c.slot.ClearIf(p) {
		return false
	}

	c.logger.DebugContext(ctx, "pending request rolled back", slog.String("pending_id", p.ID()))

	return true
}

// HasPending reports whether a caller is currently waiting.
func (c *Correlator) HasPending() bool {
	return c.slot.Peek() != nil
}

// HandleActivityResult accepts a result from channel A. Results for other
// request codes are ignored and leave the pending handle in place.
func (c *Correlator) HandleActivityResult(ctx context.Context, result authorization.ActivityResult) bool {
	if result.RequestCode != c.requestCode {
		c.recorder.ResultDelivered(ChannelActivityResult, OutcomeIgnored)
		c.logger.DebugContext(ctx, "activity result ignored",
			slog.Int("request_code", result.RequestCode),
		)

		return false
	}

	return c.deliver(ctx, ChannelActivityResult, result.Response())
}

// HandleRedirect accepts a re-entry URI from channel B.
func (c *Correlator) HandleRedirect(ctx context.Context, uri *url.URL) bool {
	return c.deliver(ctx, ChannelRedirect, authorization.ParseURI(uri))
}

func (c *Correlator) deliver(ctx context.Context, channel Channel, resp authorization.Response) bool {
	p := c.slot.Take()
	if p == nil {
		c.recorder.ResultDelivered(channel, OutcomeDropped)
		c.logger.DebugContext(ctx, "authorization result dropped: nothing pending",
			slog.String("channel", string(channel)),
			slog.String("type", string(resp.Type)),
		)

		return false
	}

	var (
		grant   authorization.CodeGrant
		err     error
		outcome Outcome
	)

	switch resp.Type {
	case authorization.TypeCode:
		grant = authorization.CodeGrant{Code: resp.Code, State: resp.State}
		outcome = OutcomeCode
	case authorization.TypeError:
		err = failure.New(failure.KindAuthError, "Authorization error: %s", resp.Error)
		outcome = OutcomeError
	default:
		err = failure.New(failure.KindAuthCancelled, "Authorization was cancelled")
		outcome = OutcomeCancelled
	}

	if !p.resolve(grant, err) {
		return false
	}

	c.recorder.ResultDelivered(channel, outcome)
	c.logger.InfoContext(ctx, "pending request resolved",
		slog.String("pending_id", p.ID()),
		slog.String("channel", string(channel)),
		slog.String("outcome", string(outcome)),
		slog.Duration("waited", c.clock.Now().Sub(p.RegisteredAt())),
	)

	return true
}
