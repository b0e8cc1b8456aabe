package cli

import (
	"context"
	"fmt"

	"github.com/existflow/ideaful/internal/db"
	"github.com/existflow/ideaful/internal/model"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
	Long:  `Create, list, rename, recolor and delete tags.`,
}

var tagNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new tag",
	Long: `Create a new tag. Names are unique and case-sensitive.

Colors are a theme color (colorPrimary, colorSecondary, ...) or a hex value.

Examples:
  ideaful tag new "diy"
  ideaful tag new "Work" --color "#FF6B6B"`,
	Args: cobra.ExactArgs(1),
	RunE: runTagNew,
}

var tagListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all tags",
	RunE:    runTagList,
}

var tagRenameCmd = &cobra.Command{
	Use:   "rename [tag] [new-name]",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagRename,
}

var tagColorCmd = &cobra.Command{
	Use:   "color [tag] [color]",
	Short: "Change a tag's color",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagColor,
}

var tagIdeasCmd = &cobra.Command{
	Use:   "ideas [tag]",
	Short: "List ideas with a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagIdeas,
}

var tagApplyCmd = &cobra.Command{
	Use:   "apply [tag] [idea-id...]",
	Short: "Add a tag to several ideas at once",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTagApply,
}

var tagDeleteCmd = &cobra.Command{
	Use:     "delete [tag]",
	Aliases: []string{"rm"},
	Short:   "Delete a tag (ideas are kept)",
	Args:    cobra.ExactArgs(1),
	RunE:    runTagDelete,
}

var (
	tagColor       string
	tagDeleteForce bool
)

func init() {
	tagNewCmd.Flags().StringVarP(&tagColor, "color", "c", model.DefaultTagColor, "Tag color (theme name or hex)")
	tagDeleteCmd.Flags().BoolVarP(&tagDeleteForce, "force", "f", false, "Do not ask for confirmation")

	tagCmd.AddCommand(tagNewCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagRenameCmd)
	tagCmd.AddCommand(tagColorCmd)
	tagCmd.AddCommand(tagIdeasCmd)
	tagCmd.AddCommand(tagApplyCmd)
	tagCmd.AddCommand(tagDeleteCmd)
}

func runTagNew(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tag, err := a.Tags.CreateTag(context.Background(), args[0], tagColor)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	fmt.Printf("✓ Created tag: %s (id: %s)\n", hexColor(tag.Color.Hex(), tag.Name), shortID(tag.ID))
	return nil
}

func runTagList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	tags, err := a.Tags.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}

	if len(tags) == 0 {
		fmt.Println("No tags found.")
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Color"), bold.Sprint("Ideas"))
	for _, t := range tags {
		count, _ := a.Tags.CountIdeas(ctx, t.ID)
		tbl.AddRow(faint.Sprint(shortID(t.ID)), hexColor(t.Color.Hex(), t.Name), t.Color.String(), count)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Printf("\n  %d tags\n", len(tags))
	return nil
}

func runTagRename(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tag, err := resolveTag(a, args[0])
	if err != nil {
		return err
	}
	renamed, err := a.Tags.RenameTag(context.Background(), tag.ID, args[1])
	if err != nil {
		return fmt.Errorf("failed to rename tag: %w", err)
	}
	fmt.Printf("✓ Renamed %s → %s\n", tag.Name, renamed.Name)
	return nil
}

func runTagColor(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tag, err := resolveTag(a, args[0])
	if err != nil {
		return err
	}
	tag, err = a.Tags.SetColor(context.Background(), tag.ID, args[1])
	if err != nil {
		return fmt.Errorf("failed to set color: %w", err)
	}
	fmt.Printf("✓ %s is now %s\n", hexColor(tag.Color.Hex(), tag.Name), tag.Color)
	return nil
}

func runTagIdeas(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tag, err := resolveTag(a, args[0])
	if err != nil {
		return err
	}
	list, err := a.Tags.IdeasForTag(context.Background(), tag.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Printf("No ideas tagged %s.\n", tag.Name)
		return nil
	}
	printIdeas(a, list)
	return nil
}

func runTagApply(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tag, err := resolveTag(a, args[0])
	if err != nil {
		return err
	}
	ideaIDs := make([]string, 0, len(args)-1)
	for _, prefix := range args[1:] {
		id, err := resolve(a, db.TableIdeas, prefix)
		if err != nil {
			return err
		}
		ideaIDs = append(ideaIDs, id)
	}

	if err := a.Tags.ApplyTagsToIdeas(context.Background(), ideaIDs, []string{tag.ID}); err != nil {
		return fmt.Errorf("failed to apply tag: %w", err)
	}
	fmt.Printf("✓ Tagged %d ideas with %s\n", len(ideaIDs), tag.Name)
	return nil
}

func runTagDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	tag, err := resolveTag(a, args[0])
	if err != nil {
		return err
	}
	count, _ := a.Tags.CountIdeas(ctx, tag.ID)
	if !confirm(fmt.Sprintf("Delete tag %q used by %d ideas?", tag.Name, count), tagDeleteForce) {
		return nil
	}

	if err := a.Tags.DeleteTag(ctx, tag.ID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	fmt.Printf("🗑️  Deleted tag: %s\n", tag.Name)
	return nil
}
