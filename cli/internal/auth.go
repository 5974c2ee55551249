package cli

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	qpay "github.com/qpaymn/qpay-go"
)

// resolvePassword returns the merchant password from the environment, or
// prompts for it on a terminal. The password is never written to the config
// file.
func resolvePassword(username string) (string, error) {
	if password := os.Getenv(qpay.EnvPassword); password != "" {
		return password, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("%s is not set and stdin is not a terminal", qpay.EnvPassword)
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(passwordBytes) == 0 {
		return "", fmt.Errorf("empty password")
	}
	return string(passwordBytes), nil
}

func newAuthCommand() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Obtain a fresh token pair and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			tok, err := ctx.Client.GetToken(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(tok)
		},
	}

	authCmd.AddCommand(tokenCmd)
	return authCmd
}
