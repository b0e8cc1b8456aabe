package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/ideaful/internal/app"
	"github.com/existflow/ideaful/internal/config"
	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/notify"
	"github.com/existflow/ideaful/internal/tui"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFile    string
	logConsole bool

	// cfg is loaded once by the root pre-run hook
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ideaful",
	Short: "Ideaful - track ideas, their tasks and notes",
	Long: `Ideaful keeps your ideas with their status, tags, tasks and notes,
and awards achievements as you use it.

Run 'ideaful' without arguments to launch the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			cfg = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}

		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Ideaful started", logger.F("command", cmd.Name()))
		return nil
	},
	RunE: runTUI,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Ideaful exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive TUI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

// runTUI opens the app with a toast queue and hands it to the TUI
func runTUI(cmd *cobra.Command, args []string) error {
	toasts := notify.NewQueue(32)
	a, err := app.Open(context.Background(), cfg, toasts, logger.Default())
	if err != nil {
		logger.Error("Failed to open app", logger.F("error", err))
		return err
	}
	defer func() {
		_ = a.Close()
		logger.Info("Database closed")
	}()

	logger.Info("Launching TUI")
	m := tui.NewModel(a, toasts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", logger.F("error", err))
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Info("TUI exited normally")
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.ideaful/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(ideaCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(tuiCmd)
	addVersion(rootCmd)
}
