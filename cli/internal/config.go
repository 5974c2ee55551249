package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	qpay "github.com/qpaymn/qpay-go"
)

// Context represents a named merchant configuration (like kubectl contexts)
type Context struct {
	BaseURL     string `yaml:"base-url"`
	Username    string `yaml:"username"`
	InvoiceCode string `yaml:"invoice-code"`
	CallbackURL string `yaml:"callback-url"`
}

// Config represents the CLI configuration with multiple contexts
type Config struct {
	CurrentContext string              `yaml:"current-context"`
	Contexts       map[string]*Context `yaml:"contexts"`
}

// DefaultConfig returns the default configuration with "sandbox" and
// "production" contexts
func DefaultConfig() *Config {
	return &Config{
		CurrentContext: "sandbox",
		Contexts: map[string]*Context{
			"sandbox": {
				BaseURL: "https://merchant-sandbox.qpay.mn",
			},
			"production": {
				BaseURL: "https://merchant.qpay.mn",
			},
		},
	}
}

// GetCurrentContext returns the current active context
func (c *Config) GetCurrentContext() (*Context, error) {
	if c.CurrentContext == "" {
		return nil, fmt.Errorf("no current context set")
	}

	ctx, ok := c.Contexts[c.CurrentContext]
	if !ok {
		return nil, fmt.Errorf("current context %q not found", c.CurrentContext)
	}

	return ctx, nil
}

// SetCurrentContext sets the current active context
func (c *Config) SetCurrentContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q does not exist", name)
	}
	c.CurrentContext = name
	return nil
}

// AddContext adds or updates a context
func (c *Config) AddContext(name string, ctx *Context) {
	if c.Contexts == nil {
		c.Contexts = make(map[string]*Context)
	}
	c.Contexts[name] = ctx
}

// ClientConfig builds the qpay client configuration from the current
// context. Each QPAY_* environment variable overrides its context value.
// The password always comes from the environment or an interactive prompt
// and is never stored in the config file.
func (c *Config) ClientConfig() (*qpay.Config, error) {
	ctx, err := c.GetCurrentContext()
	if err != nil {
		return nil, err
	}

	cfg := &qpay.Config{
		BaseURL:     firstOf(os.Getenv(qpay.EnvBaseURL), ctx.BaseURL),
		Username:    firstOf(os.Getenv(qpay.EnvUsername), ctx.Username),
		InvoiceCode: firstOf(os.Getenv(qpay.EnvInvoiceCode), ctx.InvoiceCode),
		CallbackURL: firstOf(os.Getenv(qpay.EnvCallbackURL), ctx.CallbackURL),
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("context %q has no base URL; run 'qpay config set --base-url ...'", c.CurrentContext)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("context %q has no username; run 'qpay config set --username ...'", c.CurrentContext)
	}

	password, err := resolvePassword(cfg.Username)
	if err != nil {
		return nil, err
	}
	cfg.Password = password

	return cfg, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ConfigPath returns the path of the CLI config file
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(configDir, "qpay", "config.yaml"), nil
}

// LoadConfig loads the CLI configuration, falling back to defaults when no
// config file exists yet
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.CurrentContext == "" || len(config.Contexts) == 0 {
		return nil, fmt.Errorf("config file %s has no contexts", path)
	}

	return config, nil
}

// SaveConfig writes the CLI configuration to disk
func SaveConfig(config *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
