package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/ideaful/internal/db"
	"github.com/existflow/ideaful/internal/ideas"
	"github.com/existflow/ideaful/internal/model"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage an idea's tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [idea-id] [title]",
	Short: "Add a task to an idea",
	Long: `Add a task to an idea.

Examples:
  ideaful task add abc123 "Buy wood"
  ideaful task add abc123 "Call supplier" -p 3 --due 2026-11-02`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:     "list [idea-id]",
	Aliases: []string{"ls"},
	Short:   "List an idea's tasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskList,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete [task-id...]",
	Aliases: []string{"rm"},
	Short:   "Delete tasks",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTaskDelete,
}

var (
	taskDesc        string
	taskPriority    int
	taskDue         string
	taskReminder    string
	taskDeleteForce bool
)

func init() {
	taskAddCmd.Flags().StringVarP(&taskDesc, "desc", "d", "", "Description")
	taskAddCmd.Flags().IntVarP(&taskPriority, "priority", "p", model.PriorityNone, "Priority (0=none, 1=low, 2=medium, 3=high)")
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "Due date (YYYY-MM-DD, 'today' or 'tomorrow')")
	taskAddCmd.Flags().StringVar(&taskReminder, "remind", "", "Reminder time (YYYY-MM-DD HH:MM)")
	taskDeleteCmd.Flags().BoolVarP(&taskDeleteForce, "force", "f", false, "Do not ask for confirmation")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

// parseDate understands YYYY-MM-DD and the words today and tomorrow
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var t time.Time
	switch strings.ToLower(s) {
	case "today":
		t = today
	case "tomorrow":
		t = today.AddDate(0, 0, 1)
	default:
		parsed, err := time.ParseInLocation("2006-01-02", s, now.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
		}
		t = parsed
	}
	return &t, nil
}

func parseReminder(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder %q: use YYYY-MM-DD HH:MM", s)
	}
	return &t, nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	due, err := parseDate(taskDue)
	if err != nil {
		return err
	}
	reminder, err := parseReminder(taskReminder)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ideaID, err := resolve(a, db.TableIdeas, args[0])
	if err != nil {
		return err
	}

	task, err := a.Ideas.AddTask(context.Background(), ideaID, ideas.NewTask{
		Title:       strings.Join(args[1:], " "),
		Description: taskDesc,
		Priority:    taskPriority,
		DueDate:     due,
		Reminder:    reminder,
	})
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("✓ Added task [%s]: \"%s\" (%s)\n", shortID(task.ID), task.Title, model.PriorityLabel(task.Priority))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ideaID, err := resolve(a, db.TableIdeas, args[0])
	if err != nil {
		return err
	}
	tasks, err := a.Ideas.ListTasks(context.Background(), ideaID)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks yet. Add one with: ideaful task add <idea> \"Your task\"")
		return nil
	}

	pending := 0
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tasks {
		if !t.Completed {
			pending++
		}
		tbl.AddRow(taskIcon(t), faint.Sprint(shortID(t.ID)), truncate(t.Title, 50), model.PriorityLabel(t.Priority), dueLabel(t))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Printf("\n  %d pending of %d\n", pending, len(tasks))
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ids := make([]string, 0, len(args))
	for _, prefix := range args {
		id, err := resolve(a, db.TableTasks, prefix)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if !confirm(fmt.Sprintf("Delete %d tasks?", len(ids)), taskDeleteForce) {
		return nil
	}

	if err := a.Ideas.DeleteTasks(context.Background(), ids...); err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}
	fmt.Printf("🗑️  Deleted %d tasks\n", len(ids))
	return nil
}
