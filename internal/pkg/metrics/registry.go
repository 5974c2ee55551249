package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// QPay API client metrics
var (
	// APIRequests tracks total QPay API requests
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qpay_client_requests_total",
			Help: "Total QPay API requests by method, route, and status",
		},
		[]string{"method", "route", "status"},
	)

	// APIDuration tracks QPay API request latency
	APIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:                            "qpay_client_request_duration_ms",
			Help:                            "QPay API request duration in milliseconds",
			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: 1 * time.Hour,
		},
		[]string{"method", "route"},
	)

	// APIErrors tracks failed QPay API requests by error class
	APIErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qpay_client_request_errors_total",
			Help: "Total QPay API request failures by route and error type",
		},
		[]string{"route", "type"},
	)

	// TokenExchanges tracks token-endpoint exchanges by grant and outcome
	TokenExchanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qpay_client_token_exchanges_total",
			Help: "Total token exchanges by grant (credentials, refresh) and status",
		},
		[]string{"grant", "status"},
	)
)

// RecordTokenExchange records one credential or refresh exchange outcome.
func RecordTokenExchange(grant string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	TokenExchanges.WithLabelValues(grant, status).Inc()
}
