package tokenclient

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/exchange"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/failure"
	"github.com/google/go-cmp/cmp"
)

func validRequest() *exchange.Request {
	return &exchange.Request{
		Code:         "code-123",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "spotify-app://callback",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL+"/api/token", 5*time.Second)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return client
}

func TestExchangeSendsFormWithBasicAuth(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/token" {
			t.Errorf("path = %s, want /api/token", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %s", ct)
		}

		expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("client-id:client-secret"))
		if got := r.Header.Get("Authorization"); got != expectedAuth {
			t.Errorf("Authorization = %s, want %s", got, expectedAuth)
		}

		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}

		expectedForm := map[string][]string{
			"grant_type":   {"authorization_code"},
			"code":         {"code-123"},
			"redirect_uri": {"spotify-app://callback"},
		}
		if diff := cmp.Diff(expectedForm, map[string][]string(r.PostForm)); diff != "" {
			t.Errorf("form mismatch (-want +got):\n%s", diff)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"T","token_type":"Bearer","expires_in":3600}`))
	})

	resp, err := client.Exchange(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := map[string]any{
		"access_token":  "T",
		"token_type":    "Bearer",
		"expires_in":    int64(3600),
		"refresh_token": "",
		"scope":         "",
	}
	if diff := cmp.Diff(expected, resp.ToMap()); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestExchangeErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		body         string
		expectedErr  error
		expectedText string
	}{
		{
			name:         "bad request",
			status:       http.StatusBadRequest,
			body:         `{"error":"invalid_grant"}`,
			expectedErr:  failure.ErrHTTP,
			expectedText: "HTTP 400: Bad Request",
		},
		{
			name:         "server error",
			status:       http.StatusBadGateway,
			expectedErr:  failure.ErrHTTP,
			expectedText: "HTTP 502: Bad Gateway",
		},
		{
			name:         "empty body",
			status:       http.StatusOK,
			expectedErr:  failure.ErrEmptyResponse,
			expectedText: "Empty response body",
		},
		{
			name:         "malformed json",
			status:       http.StatusOK,
			body:         `{"access_token":`,
			expectedErr:  failure.ErrParse,
			expectedText: "Error parsing token response:",
		},
		{
			name:         "missing expires_in",
			status:       http.StatusOK,
			body:         `{"access_token":"T","token_type":"Bearer"}`,
			expectedErr:  failure.ErrParse,
			expectedText: "expires_in",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			resp, err := client.Exchange(context.Background(), validRequest())
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
			if !strings.Contains(err.Error(), tt.expectedText) {
				t.Fatalf("error %q should contain %q", err.Error(), tt.expectedText)
			}
			if resp != nil {
				t.Fatalf("expected nil response on error")
			}
		})
	}
}

func TestExchangeNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	tokenURL := server.URL + "/api/token"
	server.Close()

	client, err := NewClient(tokenURL, time.Second)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.Exchange(context.Background(), validRequest())
	if !errors.Is(err, failure.ErrNetwork) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Token exchange failed: ") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestExchangeMalformedEndpoint(t *testing.T) {
	t.Parallel()

	client, err := NewClient("http://example.com/\x7f", time.Second)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.Exchange(context.Background(), validRequest())
	if !errors.Is(err, failure.ErrUnexpected) {
		t.Fatalf("expected UnexpectedError, got %v", err)
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient("", time.Second); !errors.Is(err, ErrTokenURLEmpty) {
		t.Fatalf("expected ErrTokenURLEmpty, got %v", err)
	}
}

func TestReasonPhrase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resp     *http.Response
		expected string
	}{
		{
			name:     "server supplied",
			resp:     &http.Response{StatusCode: 400, Status: "400 Nope"},
			expected: "Nope",
		},
		{
			name:     "bare status",
			resp:     &http.Response{StatusCode: 401, Status: "401"},
			expected: "Unauthorized",
		},
		{
			name:     "missing status",
			resp:     &http.Response{StatusCode: 503},
			expected: "Service Unavailable",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := reasonPhrase(tt.resp); got != tt.expected {
				t.Fatalf("reasonPhrase() = %s, want %s", got, tt.expected)
			}
		})
	}
}
