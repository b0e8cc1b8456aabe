package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/existflow/ideaful/internal/db"
	"github.com/existflow/ideaful/internal/ideas"
	"github.com/existflow/ideaful/internal/model"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var ideaCmd = &cobra.Command{
	Use:   "idea",
	Short: "Inspect and edit ideas",
	Long:  `Show, edit, re-status and tag individual ideas.`,
}

var ideaShowCmd = &cobra.Command{
	Use:   "show [idea-id]",
	Short: "Show an idea with its tags, tasks and notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeaShow,
}

var ideaEditCmd = &cobra.Command{
	Use:   "edit [idea-id]",
	Short: "Change an idea's title or description",
	Long: `Change an idea's title or short description.

Examples:
  ideaful idea edit abc123 --title "Solar kettle v2"
  ideaful idea edit abc123 -d "now with a thermos"`,
	Args: cobra.ExactArgs(1),
	RunE: runIdeaEdit,
}

var ideaStatusCmd = &cobra.Command{
	Use:   "status [idea-id] [status]",
	Short: "Move an idea to another status",
	Long: `Move an idea to another enabled status.

Examples:
  ideaful idea status abc123 Planning
  ideaful idea status abc123 "On Hold"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runIdeaStatus,
}

var ideaImagesCmd = &cobra.Command{
	Use:   "images [idea-id] [path...]",
	Short: "Replace an idea's images (at most 10)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIdeaImages,
}

var ideaTagCmd = &cobra.Command{
	Use:   "tag [idea-id] [tag...]",
	Short: "Add tags to an idea",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runIdeaTag,
}

var ideaUntagCmd = &cobra.Command{
	Use:   "untag [idea-id] [tag...]",
	Short: "Remove tags from an idea",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runIdeaUntag,
}

var (
	editTitle string
	editDesc  string
)

func init() {
	ideaEditCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	ideaEditCmd.Flags().StringVarP(&editDesc, "desc", "d", "", "New short description")

	ideaCmd.AddCommand(ideaShowCmd)
	ideaCmd.AddCommand(ideaEditCmd)
	ideaCmd.AddCommand(ideaStatusCmd)
	ideaCmd.AddCommand(ideaImagesCmd)
	ideaCmd.AddCommand(ideaTagCmd)
	ideaCmd.AddCommand(ideaUntagCmd)
}

func runIdeaShow(cmd *cobra.Command, args []string) error {
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
	tags, err := a.Tags.TagsForIdea(ctx, id)
	if err != nil {
		return err
	}
	tasks, err := a.Ideas.ListTasks(ctx, id)
	if err != nil {
		return err
	}
	notes, err := a.Ideas.ListNotes(ctx, id)
	if err != nil {
		return err
	}

	out := color.Output
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s  %s\n", bold.Sprint(idea.Title), statusLabel(idea.Status))
	if idea.ShortDesc != "" {
		fmt.Fprintf(out, "  %s\n", idea.ShortDesc)
	}
	fmt.Fprintf(out, "  %s\n", faint.Sprintf("%s · created %s · updated %s", idea.ID,
		idea.CreatedAt.Local().Format("Jan 2 2006"), idea.UpdatedAt.Local().Format("Jan 2 15:04")))

	if len(tags) > 0 {
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			names = append(names, hexColor(t.Color.Hex(), "#"+t.Name))
		}
		fmt.Fprintf(out, "  %s\n", strings.Join(names, " "))
	}
	for i, p := range idea.ImagePaths {
		fmt.Fprintf(out, "  🖼  %d. %s\n", i+1, p)
	}

	fmt.Fprintf(out, "\n  %s\n", bold.Sprint("Tasks"))
	if len(tasks) == 0 {
		fmt.Fprintln(out, faint.Sprint("  none"))
	} else {
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, t := range tasks {
			tbl.AddRow("  "+taskIcon(t), faint.Sprint(shortID(t.ID)), truncate(t.Title, 50), model.PriorityLabel(t.Priority), dueLabel(t))
		}
		fmt.Fprintln(out, tbl)
	}

	fmt.Fprintf(out, "\n  %s\n", bold.Sprint("Notes"))
	if len(notes) == 0 {
		fmt.Fprintln(out, faint.Sprint("  none"))
	}
	for _, n := range notes {
		title := n.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(out, "  %s %s  %s\n", faint.Sprint(shortID(n.ID)), bold.Sprint(title), faint.Sprint(n.Timestamp.Local().Format("Jan 2 15:04")))
		for _, line := range strings.Split(strings.TrimSpace(n.Text), "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}
	fmt.Fprintln(out)
	return nil
}

func taskIcon(t model.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

func dueLabel(t model.Task) string {
	if t.DueDate == nil {
		return ""
	}
	due := t.DueDate.Local().Format("Jan 2")
	if t.IsOverdue() {
		return color.RedString("%s overdue", due)
	}
	if t.IsDue() {
		return warning.Sprintf("%s today", due)
	}
	return due
}

func runIdeaEdit(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("desc") {
		return fmt.Errorf("nothing to change; pass --title or --desc")
	}

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

	update := ideas.IdeaUpdate{Title: idea.Title, ShortDesc: idea.ShortDesc}
	if cmd.Flags().Changed("title") {
		update.Title = editTitle
	}
	if cmd.Flags().Changed("desc") {
		update.ShortDesc = editDesc
	}

	idea, err = a.Ideas.Update(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update idea: %w", err)
	}
	fmt.Printf("✓ Updated: \"%s\"\n", idea.Title)
	return nil
}

func runIdeaStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolve(a, db.TableIdeas, args[0])
	if err != nil {
		return err
	}
	name := strings.Join(args[1:], " ")
	idea, err := a.Ideas.SetStatus(context.Background(), id, name)
	if err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	fmt.Printf("✓ \"%s\" is now %s\n", idea.Title, statusLabel(idea.Status))
	return nil
}

func runIdeaImages(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolve(a, db.TableIdeas, args[0])
	if err != nil {
		return err
	}
	idea, err := a.Ideas.SetImages(context.Background(), id, args[1:])
	if err != nil {
		return fmt.Errorf("failed to set images: %w", err)
	}
	fmt.Printf("✓ \"%s\" has %d images\n", idea.Title, len(idea.ImagePaths))
	return nil
}

func runIdeaTag(cmd *cobra.Command, args []string) error {
	return changeIdeaTags(args, true)
}

func runIdeaUntag(cmd *cobra.Command, args []string) error {
	return changeIdeaTags(args, false)
}

func changeIdeaTags(args []string, attach bool) error {
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
	tagIDs, err := resolveTags(a, args[1:])
	if err != nil {
		return err
	}

	if attach {
		err = a.Tags.AttachTags(ctx, id, tagIDs)
	} else {
		err = a.Tags.DetachTags(ctx, id, tagIDs)
	}
	if err != nil {
		return fmt.Errorf("failed to update tags: %w", err)
	}

	tags, _ := a.Tags.TagsForIdea(ctx, id)
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	fmt.Printf("✓ Tags: %s\n", strings.Join(names, ", "))
	return nil
}
