package callback

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/authorization"
)

const maxBodyBytes = 64 << 10

type Correlator interface {
	HandleRedirect(ctx context.Context, uri *url.URL) bool
	HandleActivityResult(ctx context.Context, result authorization.ActivityResult) bool
}

// MainLoop runs a task on the loop that owns correlation and waits for it.
type MainLoop interface {
	Do(ctx context.Context, task func()) error
}

// ActivityResultRequest is the JSON body of an externally hosted activity
// reporting back.
type ActivityResultRequest struct {
	RequestCode int    `json:"requestCode"`
	ResultCode  int    `json:"resultCode"`
	Data        string `json:"data,omitempty"`
}

type deliveryResponse struct {
	Handled bool `json:"handled"`
}

type Handler struct {
	correlator Correlator
	loop       MainLoop
	logger     *slog.Logger
}

func NewHandler(correlator Correlator, loop MainLoop) *Handler {
	return &Handler{
		correlator: correlator,
		loop:       loop,
		logger:     slog.Default().WithGroup("authbridge").WithGroup("callback"),
	}
}

// Redirect receives the provider redirect. The request URI is parsed whatever
// it carries.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uri := *r.URL

	var handled bool
	if err := h.loop.Do(ctx, func() {
		handled = h.correlator.HandleRedirect(ctx, &uri)
	}); err != nil {
		h.logger.WarnContext(ctx, "failed to deliver redirect", slog.String("error", err.Error()))
		http.Error(w, "authorization bridge is not running", http.StatusServiceUnavailable)

		return
	}

	h.logger.DebugContext(ctx, "redirect received", slog.Bool("handled", handled))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(w, "Authorization finished. You can close this window.\n"); err != nil {
		h.logger.WarnContext(ctx, "failed to write redirect response", slog.String("error", err.Error()))
	}
}

// ActivityResult receives a result posted by an out-of-process activity.
func (h *Handler) ActivityResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := decodeActivityResult(r.Body)
	if err != nil {
		h.logger.InfoContext(ctx, "rejected activity result", slog.String("error", err.Error()))
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	var handled bool
	if err := h.loop.Do(ctx, func() {
		handled = h.correlator.HandleActivityResult(ctx, result)
	}); err != nil {
		h.logger.WarnContext(ctx, "failed to deliver activity result", slog.String("error", err.Error()))
		http.Error(w, "authorization bridge is not running", http.StatusServiceUnavailable)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(deliveryResponse{Handled: handled}); err != nil {
		h.logger.WarnContext(ctx, "failed to write activity result response", slog.String("error", err.Error()))
	}
}

func decodeActivityResult(body io.Reader) (authorization.ActivityResult, error) {
	var req ActivityResultRequest

	decoder := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		return authorization.ActivityResult{}, fmt.Errorf("%w: %v", ErrBodyInvalid, err)
	}

	result := authorization.ActivityResult{
		RequestCode: req.RequestCode,
		ResultCode:  req.ResultCode,
	}

	if req.Data != "" {
		data, err := url.Parse(req.Data)
		if err != nil {
			return authorization.ActivityResult{}, fmt.Errorf("%w: %v", ErrDataInvalid, err)
		}

		result.Data = data
	}

	return result, nil
}
