package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/existflow/ideaful/internal/ideas"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new idea",
	Long: `Add a new idea.

Examples:
  ideaful add "Solar kettle"
  ideaful add "Bike trailer" --status Planning --tag diy --tag outdoors
  ideaful add "Podcast" -d "weekly interviews"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addStatus string
	addDesc   string
	addTags   []string
	addImages []string
)

func init() {
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "", "Initial status (default Unassigned)")
	addCmd.Flags().StringVarP(&addDesc, "desc", "d", "", "Short description")
	addCmd.Flags().StringArrayVarP(&addTags, "tag", "t", nil, "Tag name or id (repeatable)")
	addCmd.Flags().StringArrayVar(&addImages, "image", nil, "Image path (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tagIDs, err := resolveTags(a, addTags)
	if err != nil {
		return err
	}

	idea, err := a.Ideas.Create(context.Background(), ideas.NewIdea{
		Title:      strings.Join(args, " "),
		ShortDesc:  addDesc,
		Status:     addStatus,
		TagIDs:     tagIDs,
		ImagePaths: addImages,
	})
	if err != nil {
		return fmt.Errorf("failed to add idea: %w", err)
	}

	fmt.Printf("✓ Added [%s]: \"%s\" (%s)\n", shortID(idea.ID), idea.Title, idea.Status)
	return nil
}
