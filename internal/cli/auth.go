package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the HTTP API token",
	Long: `Manage the bearer token that protects the HTTP API.

Only a bcrypt hash of the token is stored in the config file.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Set the API token",
	RunE:  runAuthSet,
}

var authClearCmd = &cobra.Command{
	Use:   "clear-token",
	Short: "Remove the API token and leave the API open",
	RunE:  runAuthClear,
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authClearCmd)
}

func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("a terminal is required to enter the token")
	}
	fmt.Print(prompt)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	token, err := readSecret("Token: ")
	if err != nil {
		return err
	}
	if len(token) < 12 {
		return fmt.Errorf("token must be at least 12 characters")
	}
	again, err := readSecret("Confirm Token: ")
	if err != nil {
		return err
	}
	if token != again {
		return fmt.Errorf("tokens do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	cfg.Server.TokenHash = string(hash)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("✅ API token set. Restart the server to apply it.")
	return nil
}

func runAuthClear(cmd *cobra.Command, args []string) error {
	if cfg.Server.TokenHash == "" {
		fmt.Println("No API token set.")
		return nil
	}
	cfg.Server.TokenHash = ""
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println("✅ API token removed.")
	return nil
}
