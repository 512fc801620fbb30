package token

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected map[string]any
	}{
		{
			name: "required fields only",
			body: `{"access_token":"T","token_type":"Bearer","expires_in":3600}`,
			expected: map[string]any{
				"access_token":  "T",
				"token_type":    "Bearer",
				"expires_in":    int64(3600),
				"refresh_token": "",
				"scope":         "",
			},
		},
		{
			name: "all fields",
			body: `{"access_token":"T","token_type":"Bearer","expires_in":3600,"refresh_token":"R","scope":"user-read-email"}`,
			expected: map[string]any{
				"access_token":  "T",
				"token_type":    "Bearer",
				"expires_in":    int64(3600),
				"refresh_token": "R",
				"scope":         "user-read-email",
			},
		},
		{
			name: "null optionals and string expiry",
			body: `{"access_token":"T","token_type":"Bearer","expires_in":"60","refresh_token":null,"scope":null}`,
			expected: map[string]any{
				"access_token":  "T",
				"token_type":    "Bearer",
				"expires_in":    int64(60),
				"refresh_token": "",
				"scope":         "",
			},
		},
		{
			name: "exponent expiry",
			body: `{"access_token":"T","token_type":"Bearer","expires_in":3.6e3}`,
			expected: map[string]any{
				"access_token":  "T",
				"token_type":    "Bearer",
				"expires_in":    int64(3600),
				"refresh_token": "",
				"scope":         "",
			},
		},
		{
			name: "integral float expiry",
			body: `{"access_token":"T","token_type":"Bearer","expires_in":3600.0}`,
			expected: map[string]any{
				"access_token":  "T",
				"token_type":    "Bearer",
				"expires_in":    int64(3600),
				"refresh_token": "",
				"scope":         "",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := Decode([]byte(tt.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.expected, resp.ToMap()); diff != "" {
				t.Fatalf("ToMap() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		expectedErr error
	}{
		{name: "not json", body: `not-json`, expectedErr: ErrBodyMalformed},
		{name: "array", body: `[1,2]`, expectedErr: ErrBodyMalformed},
		{name: "null", body: `null`, expectedErr: ErrBodyMalformed},
		{name: "trailing data", body: `{"access_token":"T"} {}`, expectedErr: ErrBodyMalformed},
		{name: "missing access token", body: `{"token_type":"Bearer","expires_in":1}`, expectedErr: ErrFieldMissing},
		{name: "missing token type", body: `{"access_token":"T","expires_in":1}`, expectedErr: ErrFieldMissing},
		{name: "missing expiry", body: `{"access_token":"T","token_type":"Bearer"}`, expectedErr: ErrFieldMissing},
		{name: "numeric access token", body: `{"access_token":1,"token_type":"Bearer","expires_in":1}`, expectedErr: ErrFieldInvalid},
		{name: "fractional expiry", body: `{"access_token":"T","token_type":"Bearer","expires_in":1.5}`, expectedErr: ErrFieldInvalid},
		{name: "expiry beyond int64", body: `{"access_token":"T","token_type":"Bearer","expires_in":1e30}`, expectedErr: ErrFieldInvalid},
		{name: "expiry beyond int64 negative", body: `{"access_token":"T","token_type":"Bearer","expires_in":-1e30}`, expectedErr: ErrFieldInvalid},
		{name: "expiry at 2^63", body: `{"access_token":"T","token_type":"Bearer","expires_in":9223372036854775808}`, expectedErr: ErrFieldInvalid},
		{name: "negative expiry", body: `{"access_token":"T","token_type":"Bearer","expires_in":-1}`, expectedErr: ErrFieldInvalid},
		{name: "negative string expiry", body: `{"access_token":"T","token_type":"Bearer","expires_in":"-60"}`, expectedErr: ErrFieldInvalid},
		{name: "non numeric expiry", body: `{"access_token":"T","token_type":"Bearer","expires_in":"soon"}`, expectedErr: ErrFieldInvalid},
		{name: "empty access token", body: `{"access_token":"","token_type":"Bearer","expires_in":1}`, expectedErr: ErrAccessTokenEmpty},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := Decode([]byte(tt.body))
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}

			if resp != nil {
				t.Fatalf("expected nil response on error")
			}
		})
	}
}
