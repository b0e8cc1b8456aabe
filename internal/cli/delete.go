package cli

import (
	"context"
	"fmt"

	"github.com/existflow/ideaful/internal/db"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [idea-id]",
	Aliases: []string{"rm"},
	Short:   "Delete an idea",
	Long: `Delete an idea together with its tasks and notes. Tags are kept.

Examples:
  ideaful delete abc123
  ideaful rm abc123 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	id, err := resolve(a, db.TableIdeas, args[0])
	if err != nil {
		return err
	}
	idea, err := a.Ideas.Get(ctx, id)
	if err != nil {
		return err
	}

	if !confirm(fmt.Sprintf("About to delete: \"%s\" (ID: %s)\nAre you sure?", idea.Title, idea.ID), deleteForce) {
		return nil
	}

	if err := a.Ideas.Delete(ctx, idea.ID); err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}

	fmt.Printf("🗑️  Deleted: \"%s\"\n", idea.Title)
	return nil
}
