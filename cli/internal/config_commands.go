package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration contexts",
	}

	configCmd.AddCommand(newConfigViewCommand())
	configCmd.AddCommand(newConfigUseContextCommand())
	configCmd.AddCommand(newConfigSetCommand())

	return configCmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(ctx.Config)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			fmt.Fprint(os.Stdout, string(data))
			return nil
		},
	}
}

func newConfigUseContextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use-context NAME",
		Short: "Switch the active context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			if err := ctx.Config.SetCurrentContext(args[0]); err != nil {
				return err
			}
			if err := SaveConfig(ctx.Config); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Switched to context %q\n", args[0])
			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	var (
		contextName string
		baseURL     string
		username    string
		invoiceCode string
		callbackURL string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set fields of a context",
		Long:  `Set merchant settings on a context. The password is never stored; it is read from QPAY_PASSWORD or prompted for at call time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			name := contextName
			if name == "" {
				name = ctx.Config.CurrentContext
			}

			target, ok := ctx.Config.Contexts[name]
			if !ok {
				target = &Context{}
				ctx.Config.AddContext(name, target)
			}

			if baseURL != "" {
				target.BaseURL = baseURL
			}
			if username != "" {
				target.Username = username
			}
			if invoiceCode != "" {
				target.InvoiceCode = invoiceCode
			}
			if callbackURL != "" {
				target.CallbackURL = callbackURL
			}

			if err := SaveConfig(ctx.Config); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Updated context %q\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&contextName, "context", "", "Context to modify (default: current context)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "QPay API base URL")
	cmd.Flags().StringVar(&username, "username", "", "Merchant username")
	cmd.Flags().StringVar(&invoiceCode, "invoice-code", "", "Default invoice code")
	cmd.Flags().StringVar(&callbackURL, "callback-url", "", "Payment callback URL")

	return cmd
}
