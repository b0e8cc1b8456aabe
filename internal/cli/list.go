package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/existflow/ideaful/internal/app"
	"github.com/existflow/ideaful/internal/ideas"
	"github.com/existflow/ideaful/internal/model"
	"github.com/existflow/ideaful/internal/status"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List ideas",
	Long: `List ideas, most recently updated first.

Examples:
  ideaful list
  ideaful list --status Planning
  ideaful list --tag diy --tag outdoors`,
	RunE: runList,
}

var (
	listStatus string
	listTags   []string
)

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Only ideas with this status")
	listCmd.Flags().StringArrayVarP(&listTags, "tag", "t", nil, "Only ideas with any of these tags (repeatable)")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tagIDs, err := resolveTags(a, listTags)
	if err != nil {
		return err
	}

	list, err := a.Ideas.List(context.Background(), ideas.Filter{Status: listStatus, TagIDs: tagIDs})
	if err != nil {
		return fmt.Errorf("failed to list ideas: %w", err)
	}

	if len(list) == 0 {
		fmt.Println("No ideas found. Add one with: ideaful add \"Your idea\"")
		return nil
	}

	printIdeas(a, list)
	return nil
}

func printIdeas(a *app.App, list []model.Idea) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Status"), bold.Sprint("Tags"), bold.Sprint("Tasks"), bold.Sprint("Updated"))

	for _, idea := range list {
		tags, _ := a.Tags.TagsForIdea(context.Background(), idea.ID)
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			names = append(names, hexColor(t.Color.Hex(), t.Name))
		}

		tasks, _ := a.Ideas.ListTasks(context.Background(), idea.ID)
		done := 0
		for _, t := range tasks {
			if t.Completed {
				done++
			}
		}

		tbl.AddRow(
			faint.Sprint(shortID(idea.ID)),
			truncate(idea.Title, 40),
			statusLabel(idea.Status),
			strings.Join(names, ", "),
			fmt.Sprintf("%d/%d", done, len(tasks)),
			idea.UpdatedAt.Local().Format("Jan 2 15:04"),
		)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Printf("\n  %d ideas\n", len(list))
}

func statusLabel(name string) string {
	if s, ok := status.Lookup(name); ok {
		return hexColor(s.Color, name)
	}
	return name
}
