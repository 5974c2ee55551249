package qpay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// apiServer is a fake QPay endpoint with token issuance and refresh built
// in. Tests register resource handlers on mux and inspect the exchange
// counters.
type apiServer struct {
	*httptest.Server
	mux *http.ServeMux

	authCalls    atomic.Int32
	refreshCalls atomic.Int32

	// non-zero values make the corresponding exchange fail
	authStatus    int
	refreshStatus int

	// token pair issued by successful exchanges
	issuedAccess  string
	issuedRefresh string
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()

	s := &apiServer{
		mux:           http.NewServeMux(),
		issuedAccess:  "issued-access-token",
		issuedRefresh: "issued-refresh-token",
	}

	s.mux.HandleFunc("POST /v2/auth/token", func(w http.ResponseWriter, r *http.Request) {
		s.authCalls.Add(1)
		if _, _, ok := r.BasicAuth(); !ok {
			t.Error("token exchange without Basic Auth header")
		}
		if s.authStatus != 0 {
			writeJSON(t, w, s.authStatus, map[string]any{
				"error":   "AUTHENTICATION_FAILED",
				"message": "Bad credentials",
			})
			return
		}
		writeJSON(t, w, http.StatusOK, s.tokenBody())
	})

	s.mux.HandleFunc("POST /v2/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		s.refreshCalls.Add(1)
		if s.refreshStatus != 0 {
			writeJSON(t, w, s.refreshStatus, map[string]any{
				"error":   "AUTHENTICATION_FAILED",
				"message": "Refresh token expired",
			})
			return
		}
		writeJSON(t, w, http.StatusOK, s.tokenBody())
	})

	s.Server = httptest.NewServer(s.mux)
	t.Cleanup(s.Close)
	return s
}

func (s *apiServer) tokenBody() map[string]any {
	now := time.Now().Unix()
	return map[string]any{
		"token_type":         "Bearer",
		"access_token":       s.issuedAccess,
		"refresh_token":      s.issuedRefresh,
		"expires_in":         now + 3600,
		"refresh_expires_in": now + 86400,
		"scope":              "default_scope",
		"not-before-policy":  "0",
		"session_state":      "test-session",
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:     baseURL,
		Username:    "test_user",
		Password:    "test_pass",
		InvoiceCode: "TEST_INVOICE",
		CallbackURL: "https://example.com/callback",
	}
}

// seedTokens installs a token pair with the given expiry instants directly
// into the client state.
func seedTokens(c *Client, access string, accessExpiry time.Time, refresh string, refreshExpiry time.Time) {
	c.tokens.mu.Lock()
	defer c.tokens.mu.Unlock()
	c.tokens.accessToken = access
	c.tokens.accessExpiry = accessExpiry
	c.tokens.refreshToken = refresh
	c.tokens.refreshExpiry = refreshExpiry
}
