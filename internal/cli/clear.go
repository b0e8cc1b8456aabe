package cli

import (
	"fmt"

	"github.com/existflow/ideaful/internal/prefs"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset preferences",
	Long: `Reset stored preferences such as the enabled statuses and UI toggles.
Ideas, tags, stats and achievements are not touched. Statuses held by ideas
are enabled again on the next start.`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().Bool("force", false, "Do not ask for confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if !confirm("Are you sure you want to reset preferences?", force) {
		return nil
	}

	store, err := prefs.Open(cfg.PrefsDir)
	if err != nil {
		return err
	}

	fmt.Println("🧹 Clearing preferences...")
	if err := store.Reset(); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	fmt.Println("Preferences cleared.")
	return nil
}
