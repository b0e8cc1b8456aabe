package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *cfg
		if shown.Server.TokenHash != "" {
			shown.Server.TokenHash = "(set)"
		}
		out, err := yaml.Marshal(&shown)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n%s", cfg.Path(), out)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting and save it.

Keys: confirm_delete, database.driver, database.path, database.url,
prefs_dir, server.addr, log_level, log_file, log_console.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s expects true or false", key)
		}
		return b, nil
	}

	switch key {
	case "confirm_delete":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.ConfirmDelete = b
	case "database.driver":
		cfg.Database.Driver = value
	case "database.path":
		cfg.Database.Path = value
	case "database.url":
		cfg.Database.URL = value
	case "prefs_dir":
		cfg.PrefsDir = value
	case "server.addr":
		cfg.Server.Addr = value
	case "log_level":
		cfg.LogLevel = value
	case "log_file":
		cfg.LogFile = value
	case "log_console":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.LogConsole = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("✓ %s = %s\n", key, value)
	return nil
}
