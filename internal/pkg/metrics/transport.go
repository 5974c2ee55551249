package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// transport wraps an http.RoundTripper to collect metrics on QPay API calls
type transport struct {
	base http.RoundTripper
}

// NewTransport wraps base with request metrics collection. A nil base uses
// http.DefaultTransport.
func NewTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &transport{base: base}
}

// RoundTrip implements http.RoundTripper, recording count, duration, and
// error class per method and normalized route.
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	route := NormalizeRoute(req.URL.Path)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}

	APIRequests.WithLabelValues(req.Method, route, strconv.Itoa(statusCode)).Inc()
	APIDuration.WithLabelValues(req.Method, route).Observe(float64(duration.Milliseconds()))

	if err != nil || statusCode >= 400 {
		APIErrors.WithLabelValues(route, classifyError(statusCode, err)).Inc()
	}

	return resp, err
}

var routePatterns = []struct {
	regex   *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`^/v2/invoice/[^/]+$`), "/v2/invoice/:id"},
	{regexp.MustCompile(`^/v2/payment/cancel/[^/]+$`), "/v2/payment/cancel/:id"},
	{regexp.MustCompile(`^/v2/payment/refund/[^/]+$`), "/v2/payment/refund/:id"},
	{regexp.MustCompile(`^/v2/payment/[^/]+$`), "/v2/payment/:id"},
	{regexp.MustCompile(`^/v2/ebarimt_v3/[^/]+$`), "/v2/ebarimt_v3/:id"},
}

// NormalizeRoute replaces resource IDs in QPay API paths with placeholders.
// This keeps metric cardinality bounded while still aggregating per route.
func NormalizeRoute(path string) string {
	// Fixed paths whose last segment is a verb, not an ID
	switch path {
	case "/v2/payment/check", "/v2/payment/list", "/v2/ebarimt_v3/create",
		"/v2/invoice", "/v2/auth/token", "/v2/auth/refresh":
		return path
	}

	for _, p := range routePatterns {
		if p.regex.MatchString(path) {
			return p.regex.ReplaceAllString(path, p.replace)
		}
	}
	return path
}

// classifyError categorizes request failures for metrics
func classifyError(statusCode int, err error) string {
	if err != nil {
		errStr := err.Error()
		switch {
		case strings.Contains(errStr, "timeout"):
			return "timeout"
		case strings.Contains(errStr, "connection"):
			return "connection"
		case strings.Contains(errStr, "TLS"):
			return "tls"
		default:
			return "network"
		}
	}

	switch {
	case statusCode == 401:
		return "unauthorized"
	case statusCode == 403:
		return "forbidden"
	case statusCode == 404:
		return "not_found"
	case statusCode >= 500:
		return "server_error"
	case statusCode >= 400:
		return "client_error"
	default:
		return "unknown"
	}
}
