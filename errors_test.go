package qpay

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestDecodeWireError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "full error body",
			status:      http.StatusNotFound,
			body:        `{"error":"INVOICE_NOTFOUND","message":"Invoice not found"}`,
			wantCode:    "INVOICE_NOTFOUND",
			wantMessage: "Invoice not found",
		},
		{
			name:        "missing code falls back to status text",
			status:      http.StatusBadRequest,
			body:        `{"message":"amount must be positive"}`,
			wantCode:    "Bad Request",
			wantMessage: "amount must be positive",
		},
		{
			name:        "missing message falls back to raw body",
			status:      http.StatusBadRequest,
			body:        `{"error":"INVALID_AMOUNT"}`,
			wantCode:    "INVALID_AMOUNT",
			wantMessage: `{"error":"INVALID_AMOUNT"}`,
		},
		{
			name:        "non-json body",
			status:      http.StatusBadGateway,
			body:        "upstream unavailable",
			wantCode:    "Bad Gateway",
			wantMessage: "upstream unavailable",
		},
		{
			name:        "empty body",
			status:      http.StatusInternalServerError,
			body:        "",
			wantCode:    "Internal Server Error",
			wantMessage: "",
		},
		{
			name:        "unknown status code",
			status:      599,
			body:        "",
			wantCode:    "599",
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := decodeWireError(tt.status, []byte(tt.body))
			if code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
			if message != tt.wantMessage {
				t.Errorf("message = %q, want %q", message, tt.wantMessage)
			}
		})
	}
}

func TestAPIErrorString(t *testing.T) {
	err := newAPIError(http.StatusNotFound, []byte(`{"error":"PAYMENT_NOTFOUND","message":"Payment not found"}`))
	got := err.Error()
	for _, part := range []string{"PAYMENT_NOTFOUND", "Payment not found", "404"} {
		if !strings.Contains(got, part) {
			t.Errorf("Error() = %q, missing %q", got, part)
		}
	}
	if err.RawBody == "" {
		t.Error("RawBody is empty")
	}
}

func TestAuthErrorString(t *testing.T) {
	err := newAuthError(http.StatusUnauthorized, []byte(`{"error":"NO_CREDENDIALS","message":"Credentials required"}`))
	got := err.Error()
	if !strings.Contains(got, "authentication failed") {
		t.Errorf("Error() = %q, want authentication failed prefix", got)
	}
	if err.Code != ErrCodeNoCredentials {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeNoCredentials)
	}
}

func TestAsAPIError(t *testing.T) {
	apiErr := newAPIError(http.StatusNotFound, nil)
	wrapped := fmt.Errorf("cancel invoice: %w", apiErr)

	if got := AsAPIError(wrapped); got != apiErr {
		t.Errorf("AsAPIError(wrapped) = %v, want original", got)
	}
	if got := AsAPIError(errors.New("plain")); got != nil {
		t.Errorf("AsAPIError(plain) = %v, want nil", got)
	}
	if got := AsAPIError(nil); got != nil {
		t.Errorf("AsAPIError(nil) = %v, want nil", got)
	}
}

func TestAsAuthError(t *testing.T) {
	authErr := newAuthError(http.StatusUnauthorized, nil)
	wrapped := fmt.Errorf("token exchange: %w", authErr)

	if got := AsAuthError(wrapped); got != authErr {
		t.Errorf("AsAuthError(wrapped) = %v, want original", got)
	}
	if got := AsAuthError(newAPIError(http.StatusNotFound, nil)); got != nil {
		t.Errorf("AsAuthError(APIError) = %v, want nil", got)
	}
}

func TestConfigErrorString(t *testing.T) {
	err := &ConfigError{Missing: []string{EnvBaseURL, EnvPassword}}
	got := err.Error()
	if !strings.Contains(got, EnvBaseURL) || !strings.Contains(got, EnvPassword) {
		t.Errorf("Error() = %q, want both variable names", got)
	}
}
