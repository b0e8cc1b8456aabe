package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/ideaful/internal/app"
	"github.com/existflow/ideaful/internal/db"
	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/model"
	"github.com/existflow/ideaful/internal/notify"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	bold    = color.New(color.Bold)
	faint   = color.New(color.Faint)
	warning = color.New(color.FgYellow)
	success = color.New(color.FgGreen)
)

// openApp opens the store for a one-shot command. Toasts are printed as they arrive.
func openApp() (*app.App, error) {
	toast := notify.Func(func(message string) {
		_, _ = warning.Fprintf(color.Error, "⚠ %s\n", message)
	})
	a, err := app.Open(context.Background(), cfg, toast, logger.Default())
	if err != nil {
		logger.Error("Failed to open app", logger.F("error", err))
		return nil, err
	}
	return a, nil
}

// resolve expands a short id into the full id in table
func resolve(a *app.App, table db.Table, prefix string) (string, error) {
	id, err := a.DB.ResolveID(context.Background(), table, prefix)
	if errors.Is(err, model.ErrNotFound) {
		return "", fmt.Errorf("%s not found: %s", strings.TrimSuffix(string(table), "s"), prefix)
	}
	return id, err
}

// resolveTag accepts a tag name or a tag id prefix
func resolveTag(a *app.App, nameOrID string) (model.Tag, error) {
	ctx := context.Background()
	if tag, err := a.Tags.FindByName(ctx, nameOrID); err == nil {
		return tag, nil
	}
	id, err := resolve(a, db.TableTags, nameOrID)
	if err != nil {
		return model.Tag{}, err
	}
	return a.Tags.GetTag(ctx, id)
}

func resolveTags(a *app.App, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, n := range names {
		tag, err := resolveTag(a, n)
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

// confirm asks a yes/no question. Without a terminal on stdin it answers no
// unless force is set.
func confirm(prompt string, force bool) bool {
	if force || !cfg.ConfirmDelete {
		return true
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("Refusing to delete without confirmation; pass --force.")
		return false
	}
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		fmt.Println("Cancelled.")
		return false
	}
	return true
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// hexColor paints s with a #RRGGBB color when the terminal supports it
func hexColor(hex, s string) string {
	if color.NoColor {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}
