package qpay

import "os"

// Environment variable names read by ConfigFromEnv.
const (
	EnvBaseURL     = "QPAY_BASE_URL"
	EnvUsername    = "QPAY_USERNAME"
	EnvPassword    = "QPAY_PASSWORD"
	EnvInvoiceCode = "QPAY_INVOICE_CODE"
	EnvCallbackURL = "QPAY_CALLBACK_URL"
)

// Config holds the merchant credentials and endpoint settings for a Client.
type Config struct {
	// BaseURL is the QPay API base URL, e.g. https://merchant.qpay.mn.
	BaseURL string

	// Username and Password are the merchant credentials used for the
	// Basic Auth token exchange.
	Username string
	Password string

	// InvoiceCode is the merchant's default invoice code, used when a
	// simple invoice request leaves the field empty.
	InvoiceCode string

	// CallbackURL is the default payment callback URL.
	CallbackURL string
}

// ConfigFromEnv loads configuration from the QPAY_* environment variables.
// All five variables are required; if any are unset the returned *ConfigError
// names every missing variable, not just the first.
func ConfigFromEnv() (*Config, error) {
	var missing []string

	lookup := func(name string) string {
		val := os.Getenv(name)
		if val == "" {
			missing = append(missing, name)
		}
		return val
	}

	cfg := &Config{
		BaseURL:     lookup(EnvBaseURL),
		Username:    lookup(EnvUsername),
		Password:    lookup(EnvPassword),
		InvoiceCode: lookup(EnvInvoiceCode),
		CallbackURL: lookup(EnvCallbackURL),
	}

	if len(missing) > 0 {
		return nil, &ConfigError{Missing: missing}
	}
	return cfg, nil
}
