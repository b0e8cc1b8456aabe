package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/existflow/ideaful/internal/db"
	"github.com/existflow/ideaful/internal/ideas"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage an idea's notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [idea-id] [text]",
	Short: "Add a note to an idea",
	Long: `Add a note to an idea. Use "-" as text to read it from stdin.

Examples:
  ideaful note add abc123 "Ask Sam about the motor"
  cat meeting.md | ideaful note add abc123 - --title "Meeting"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:     "list [idea-id]",
	Aliases: []string{"ls"},
	Short:   "List an idea's notes, newest first",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteList,
}

var noteDeleteCmd = &cobra.Command{
	Use:     "delete [note-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteDelete,
}

var (
	noteTitle       string
	noteDeleteForce bool
)

func init() {
	noteAddCmd.Flags().StringVar(&noteTitle, "title", "", "Note title")
	noteDeleteCmd.Flags().BoolVarP(&noteDeleteForce, "force", "f", false, "Do not ask for confirmation")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteDeleteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args[1:], " ")
	if text == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read note: %w", err)
		}
		text = string(b)
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
	note, err := a.Ideas.AddNote(context.Background(), ideaID, ideas.NewNote{Title: noteTitle, Text: text})
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	fmt.Printf("✓ Added note [%s]\n", shortID(note.ID))
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ideaID, err := resolve(a, db.TableIdeas, args[0])
	if err != nil {
		return err
	}
	notes, err := a.Ideas.ListNotes(context.Background(), ideaID)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}
	if len(notes) == 0 {
		fmt.Println("No notes yet.")
		return nil
	}

	for _, n := range notes {
		title := n.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Printf("\n%s %s  %s\n", faint.Sprint(shortID(n.ID)), bold.Sprint(title), faint.Sprint(n.Timestamp.Local().Format("Jan 2 2006 15:04")))
		fmt.Println(strings.TrimSpace(n.Text))
	}
	fmt.Println()
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolve(a, db.TableNotes, args[0])
	if err != nil {
		return err
	}
	if !confirm("Delete this note?", noteDeleteForce) {
		return nil
	}
	if err := a.Ideas.DeleteNote(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	fmt.Println("🗑️  Deleted note")
	return nil
}
