package qpay

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestEnsureTokenReusesValidToken(t *testing.T) {
	srv := newAPIServer(t)
	srv.mux.HandleFunc("GET /v2/payment/{id}", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer seeded-access" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer seeded-access")
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"payment_id": r.PathValue("id")})
	})

	c := NewClient(testConfig(srv.URL))
	defer c.Close()
	seedTokens(c, "seeded-access", time.Now().Add(time.Hour),
		"seeded-refresh", time.Now().Add(24*time.Hour))

	if _, err := c.GetPayment(context.Background(), "pay-456"); err != nil {
		t.Fatalf("GetPayment: %v", err)
	}

	if n := srv.authCalls.Load(); n != 0 {
		t.Errorf("auth calls = %d, want 0", n)
	}
	if n := srv.refreshCalls.Load(); n != 0 {
		t.Errorf("refresh calls = %d, want 0", n)
	}
}

func TestEnsureTokenRefreshesExpiredAccess(t *testing.T) {
	srv := newAPIServer(t)
	srv.mux.HandleFunc("GET /v2/payment/{id}", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer issued-access-token" {
			t.Errorf("Authorization = %q, want refreshed token", got)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"payment_id": r.PathValue("id")})
	})

	c := NewClient(testConfig(srv.URL))
	defer c.Close()
	seedTokens(c, "stale-access", time.Now().Add(-time.Minute),
		"seeded-refresh", time.Now().Add(24*time.Hour))

	if _, err := c.GetPayment(context.Background(), "pay-456"); err != nil {
		t.Fatalf("GetPayment: %v", err)
	}

	if n := srv.refreshCalls.Load(); n != 1 {
		t.Errorf("refresh calls = %d, want 1", n)
	}
	if n := srv.authCalls.Load(); n != 0 {
		t.Errorf("auth calls = %d, want 0", n)
	}
}

func TestEnsureTokenRefreshFailureFallsBackToAuth(t *testing.T) {
	srv := newAPIServer(t)
	srv.refreshStatus = http.StatusUnauthorized
	srv.mux.HandleFunc("GET /v2/payment/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"payment_id": r.PathValue("id")})
	})

	c := NewClient(testConfig(srv.URL))
	defer c.Close()
	seedTokens(c, "stale-access", time.Now().Add(-time.Minute),
		"revoked-refresh", time.Now().Add(24*time.Hour))

	if _, err := c.GetPayment(context.Background(), "pay-456"); err != nil {
		t.Fatalf("GetPayment: %v", err)
	}

	if n := srv.refreshCalls.Load(); n != 1 {
		t.Errorf("refresh calls = %d, want 1", n)
	}
	if n := srv.authCalls.Load(); n != 1 {
		t.Errorf("auth calls = %d, want 1", n)
	}
}

func TestEnsureTokenSkipsExpiredRefreshWindow(t *testing.T) {
	srv := newAPIServer(t)
	srv.mux.HandleFunc("GET /v2/payment/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"payment_id": r.PathValue("id")})
	})

	c := NewClient(testConfig(srv.URL))
	defer c.Close()
	seedTokens(c, "stale-access", time.Now().Add(-time.Minute),
		"stale-refresh", time.Now().Add(-time.Minute))

	if _, err := c.GetPayment(context.Background(), "pay-456"); err != nil {
		t.Fatalf("GetPayment: %v", err)
	}

	if n := srv.refreshCalls.Load(); n != 0 {
		t.Errorf("refresh calls = %d, want 0", n)
	}
	if n := srv.authCalls.Load(); n != 1 {
		t.Errorf("auth calls = %d, want 1", n)
	}
}

func TestEnsureTokenAuthenticatesOnFirstUse(t *testing.T) {
	srv := newAPIServer(t)
	srv.mux.HandleFunc("GET /v2/payment/{id}", func(w http.ResponseWriter, r *http.Request) {
		// The exchange must complete before the resource call goes out
		if n := srv.authCalls.Load(); n != 1 {
			t.Errorf("auth calls at resource time = %d, want 1", n)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer issued-access-token" {
			t.Errorf("Authorization = %q, want issued token", got)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"payment_id": r.PathValue("id")})
	})

	c := NewClient(testConfig(srv.URL))
	defer c.Close()

	if _, err := c.GetPayment(context.Background(), "pay-456"); err != nil {
		t.Fatalf("GetPayment: %v", err)
	}
	if n := srv.refreshCalls.Load(); n != 0 {
		t.Errorf("refresh calls = %d, want 0", n)
	}
}

func TestGetTokenAuthFailure(t *testing.T) {
	srv := newAPIServer(t)
	srv.authStatus = http.StatusUnauthorized

	c := NewClient(testConfig(srv.URL))
	defer c.Close()

	_, err := c.GetToken(context.Background())
	if err == nil {
		t.Fatal("GetToken succeeded, want AuthError")
	}

	authErr := AsAuthError(err)
	if authErr == nil {
		t.Fatalf("error %v is not an AuthError", err)
	}
	if authErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", authErr.StatusCode)
	}
	if authErr.Code != "AUTHENTICATION_FAILED" {
		t.Errorf("Code = %q, want AUTHENTICATION_FAILED", authErr.Code)
	}
	if authErr.Message != "Bad credentials" {
		t.Errorf("Message = %q, want %q", authErr.Message, "Bad credentials")
	}
}

func TestEnsureTokenAuthFailureLeavesStateUnchanged(t *testing.T) {
	srv := newAPIServer(t)
	srv.authStatus = http.StatusUnauthorized

	c := NewClient(testConfig(srv.URL))
	defer c.Close()
	staleExpiry := time.Now().Add(-time.Minute)
	seedTokens(c, "stale-access", staleExpiry, "", time.Time{})

	if _, err := c.GetPayment(context.Background(), "pay-456"); err == nil {
		t.Fatal("GetPayment succeeded, want auth failure")
	}

	access, accessExpiry, _, _ := c.tokens.snapshot()
	if access != "stale-access" {
		t.Errorf("access token = %q, want prior state untouched", access)
	}
	if !accessExpiry.Equal(staleExpiry) {
		t.Errorf("access expiry = %v, want %v", accessExpiry, staleExpiry)
	}
}

func TestRefreshTokenReplacesPair(t *testing.T) {
	srv := newAPIServer(t)

	c := NewClient(testConfig(srv.URL))
	defer c.Close()
	seedTokens(c, "old-access", time.Now().Add(time.Hour),
		"old-refresh", time.Now().Add(24*time.Hour))

	tok, err := c.RefreshToken(context.Background())
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if tok.AccessToken != "issued-access-token" {
		t.Errorf("AccessToken = %q, want issued-access-token", tok.AccessToken)
	}

	access, _, refresh, _ := c.tokens.snapshot()
	if access != "issued-access-token" || refresh != "issued-refresh-token" {
		t.Errorf("stored pair = (%q, %q), want issued pair", access, refresh)
	}
}

func TestConcurrentColdStart(t *testing.T) {
	srv := newAPIServer(t)
	srv.mux.HandleFunc("POST /v2/payment/check", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || auth == "Bearer " {
			t.Errorf("resource call with empty bearer token: %q", auth)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"count": 0, "paid_amount": 0, "rows": []any{}})
	})

	c := NewClient(testConfig(srv.URL))
	defer c.Close()

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.CheckPayment(context.Background(), &PaymentCheckRequest{
				ObjectType: "INVOICE",
				ObjectID:   "inv-123",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("CheckPayment: %v", err)
		}
	}
	if n := srv.authCalls.Load(); n < 1 {
		t.Errorf("auth calls = %d, want at least 1", n)
	}
}

func TestExpiryFallsBackToJWTClaim(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": float64(exp.Unix()),
	})
	// ParseUnverified does not check signatures, a fake one will do
	signingString, err := token.SigningString()
	if err != nil {
		t.Fatalf("SigningString: %v", err)
	}
	jwtToken := signingString + ".fake_signature"

	got := expiryOf(0, jwtToken)
	if !got.Equal(exp) {
		t.Errorf("expiryOf = %v, want %v", got, exp)
	}
}

func TestExpiryOfPrefersServerTimestamp(t *testing.T) {
	want := time.Unix(1700000000, 0)
	if got := expiryOf(1700000000, "not-a-jwt"); !got.Equal(want) {
		t.Errorf("expiryOf = %v, want %v", got, want)
	}
}

func TestJWTExpiryUnparseable(t *testing.T) {
	if got := jwtExpiry("not-a-jwt"); !got.IsZero() {
		t.Errorf("jwtExpiry = %v, want zero time", got)
	}
	if got := jwtExpiry(""); !got.IsZero() {
		t.Errorf("jwtExpiry(\"\") = %v, want zero time", got)
	}
}
