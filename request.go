package qpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/qpaymn/qpay-go/internal/pkg/metrics"
)

// do performs one authenticated round trip: ensure a valid token, attach the
// bearer header, translate non-2xx responses into *APIError, and decode a
// non-empty 2xx body into out. An empty body with a nil error is a
// successful void result (delete-style endpoints).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("qpay: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("qpay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.tokens.current())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("qpay: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("qpay: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("qpay: decode response: %w", err)
	}
	return nil
}

// doBasicAuth performs the credential exchange against the token-issuance
// endpoint. The credentials go out as a Basic Auth header on every call;
// nothing derived from them is cached.
func (c *Client) doBasicAuth(ctx context.Context) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v2/auth/token", nil)
	if err != nil {
		return nil, fmt.Errorf("qpay: build request: %w", err)
	}
	req.SetBasicAuth(c.config.Username, c.config.Password)

	tok, err := c.doTokenExchange(req)
	metrics.RecordTokenExchange("credentials", err)
	return tok, err
}

// doRefresh performs the refresh exchange, authenticating with the refresh
// token instead of the credential pair.
func (c *Client) doRefresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v2/auth/refresh", nil)
	if err != nil {
		return nil, fmt.Errorf("qpay: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	tok, err := c.doTokenExchange(req)
	metrics.RecordTokenExchange("refresh", err)
	return tok, err
}

// doTokenExchange runs a prepared token-endpoint request and decodes the
// returned pair. Non-2xx responses become *AuthError.
func (c *Client) doTokenExchange(req *http.Request) (*TokenResponse, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qpay: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("qpay: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAuthError(resp.StatusCode, data)
	}

	var tok TokenResponse
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("qpay: decode token response: %w", err)
	}
	return &tok, nil
}
