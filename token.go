package qpay

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenBuffer is the safety margin subtracted from an expiry instant before
// a token is treated as usable, so a token judged valid at check time does
// not expire before the in-flight request reaches the server.
const tokenBuffer = 30 * time.Second

// TokenResponse is the token pair returned by the QPay auth endpoints.
//
// ExpiresIn and RefreshExpiresIn are absolute unix timestamps, not
// durations; that is how the QPay V2 API reports token lifetimes.
type TokenResponse struct {
	TokenType        string `json:"token_type"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
	RefreshToken     string `json:"refresh_token"`
	AccessToken      string `json:"access_token"`
	ExpiresIn        int64  `json:"expires_in"`
	Scope            string `json:"scope"`
	NotBeforePolicy  string `json:"not-before-policy"`
	SessionState     string `json:"session_state"`
}

// tokenState owns the current token pair and its validity window. All access
// goes through the mutex; network calls never happen while it is held, so a
// slow exchange cannot block other goroutines from reading the still-valid
// prior token.
type tokenState struct {
	mu            sync.Mutex
	accessToken   string
	accessExpiry  time.Time
	refreshToken  string
	refreshExpiry time.Time
}

// store replaces all four fields atomically with the newly issued pair.
func (s *tokenState) store(tok *TokenResponse) {
	access := expiryOf(tok.ExpiresIn, tok.AccessToken)
	refresh := expiryOf(tok.RefreshExpiresIn, tok.RefreshToken)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = tok.AccessToken
	s.accessExpiry = access
	s.refreshToken = tok.RefreshToken
	s.refreshExpiry = refresh
}

func (s *tokenState) snapshot() (access string, accessExpiry time.Time, refresh string, refreshExpiry time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.accessExpiry, s.refreshToken, s.refreshExpiry
}

// current returns the stored access token verbatim, without validation.
// Callers go through ensureToken first.
func (s *tokenState) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// expiryOf converts the server-declared unix timestamp into a time.Time.
// When the field is absent it falls back to the token's own exp claim, since
// QPay access tokens are JWTs.
func expiryOf(unixSec int64, token string) time.Time {
	if unixSec > 0 {
		return time.Unix(unixSec, 0)
	}
	return jwtExpiry(token)
}

// jwtExpiry extracts the exp claim from a JWT without verifying the
// signature. The token was just issued to us over TLS; we only need the
// timestamp. Returns the zero time when the claim cannot be read.
func jwtExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(exp), 0)
}

// GetToken authenticates with QPay using Basic Auth and returns a new token
// pair, replacing any previously stored pair. On failure the stored pair is
// left unchanged. POST /v2/auth/token
func (c *Client) GetToken(ctx context.Context) (*TokenResponse, error) {
	tok, err := c.doBasicAuth(ctx)
	if err != nil {
		return nil, err
	}
	c.tokens.store(tok)
	return tok, nil
}

// RefreshToken uses the current refresh token to obtain a new token pair,
// replacing the stored pair on success. POST /v2/auth/refresh
func (c *Client) RefreshToken(ctx context.Context) (*TokenResponse, error) {
	_, _, refresh, _ := c.tokens.snapshot()
	tok, err := c.doRefresh(ctx, refresh)
	if err != nil {
		return nil, err
	}
	c.tokens.store(tok)
	return tok, nil
}

// ensureToken guarantees a currently-valid access token is stored before an
// API request goes out. The stored token is reused while it is valid; when
// only the refresh window is still open a refresh is attempted, and any
// refresh failure falls through to a full credential exchange. Only the
// final exchange's error propagates.
//
// Two goroutines racing past an expired token may both trigger an exchange;
// the last writer wins and the state stays consistent, so the redundant
// round trip is accepted in exchange for never holding the lock across a
// network call.
func (c *Client) ensureToken(ctx context.Context) error {
	access, accessExpiry, refresh, refreshExpiry := c.tokens.snapshot()

	now := time.Now()
	if access != "" && now.Before(accessExpiry.Add(-tokenBuffer)) {
		return nil
	}

	canRefresh := refresh != "" && now.Before(refreshExpiry.Add(-tokenBuffer))
	if canRefresh {
		tok, err := c.doRefresh(ctx, refresh)
		if err == nil {
			c.tokens.store(tok)
			return nil
		}
		// A stale or revoked refresh token should not abort the call
		// chain while a full authentication can still succeed.
		c.logger.Debug("token refresh failed, re-authenticating", "error", err)
	}

	tok, err := c.doBasicAuth(ctx)
	if err != nil {
		return err
	}
	c.tokens.store(tok)
	return nil
}
