// Package cli implements the qpay command line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	qpay "github.com/qpaymn/qpay-go"
	"github.com/qpaymn/qpay-go/internal/pkg/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const cliContextKey contextKey = "cliContext"

// CliContext holds shared CLI context
type CliContext struct {
	Config *Config
	Client *qpay.Client
	Logger *slog.Logger
}

// Global logging flags
var (
	logLevel      string
	logFile       string
	logToStderr   bool
	alsoLogStderr bool
	logFormat     string
)

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	var ctx CliContext

	rootCmd := &cobra.Command{
		Use:           "qpay",
		Short:         "CLI for the QPay V2 merchant API",
		Long:          `A command line interface for creating invoices, checking payments, and issuing ebarimt receipts through the QPay V2 API.`,
		SilenceUsage:  true,
		SilenceErrors: true, // main.go prints the error
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(); err != nil {
				return fmt.Errorf("failed to setup logging: %w", err)
			}

			ctx.Logger = slog.Default().With("component", "cli")
			ctx.Logger.Debug("CLI started", "command", cmd.Name())

			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			ctx.Config = cfg

			// Config commands work without merchant credentials
			needsClient := cmd.Name() != "config" && parentName(cmd) != "config"
			if needsClient {
				clientCfg, err := cfg.ClientConfig()
				if err != nil {
					return err
				}
				ctx.Client = qpay.NewClient(*clientCfg, qpay.WithLogger(ctx.Logger))
			}

			cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey, &ctx))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if ctx.Client != nil {
				ctx.Client.Close()
			}
		},
	}

	rootCmd.AddCommand(newAuthCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newInvoiceCommand())
	rootCmd.AddCommand(newPaymentCommand())
	rootCmd.AddCommand(newEbarimtCommand())

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Log file path (if specified, logs to file instead of stderr)")
	rootCmd.PersistentFlags().BoolVar(&logToStderr, "logtostderr", false,
		"Log to stderr (default behavior unless --log-file specified)")
	rootCmd.PersistentFlags().BoolVar(&alsoLogStderr, "alsologtostderr", false,
		"Log to both file and stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format (text, json)")

	return rootCmd
}

// setupLogging configures the default slog logger from the persistent flags
func setupLogging() error {
	cfg := logger.Config{
		Level:         logger.ParseLevel(logLevel),
		LogFile:       logFile,
		LogToStderr:   logToStderr || logFile == "",
		AlsoLogStderr: alsoLogStderr,
		Format:        logFormat,
	}

	log, err := logger.SetupLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(log)
	return nil
}

func parentName(cmd *cobra.Command) string {
	if cmd.Parent() == nil {
		return ""
	}
	return cmd.Parent().Name()
}

// getCliContext extracts the shared CLI context from a command
func getCliContext(cmd *cobra.Command) (*CliContext, error) {
	ctx, ok := cmd.Context().Value(cliContextKey).(*CliContext)
	if !ok || ctx == nil {
		return nil, fmt.Errorf("CLI context not initialized")
	}
	return ctx, nil
}
