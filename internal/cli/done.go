package cli

import (
	"context"
	"fmt"

	"github.com/existflow/ideaful/internal/db"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as done",
	Long: `Mark a task as completed.

Examples:
  ideaful done abc123
  ideaful done abc123 --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var doneUndo bool

func init() {
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Mark task as not done")
}

func runDone(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	taskID, err := resolve(a, db.TableTasks, args[0])
	if err != nil {
		return err
	}

	done := !doneUndo
	task, err := a.Ideas.SetTaskCompleted(context.Background(), taskID, done)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if done {
		fmt.Printf("✓ Completed: \"%s\"\n", task.Title)
	} else {
		fmt.Printf("○ Reopened: \"%s\"\n", task.Title)
	}

	return nil
}
