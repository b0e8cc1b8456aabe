package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/ideaful/internal/app"
	"github.com/existflow/ideaful/internal/config"
	"github.com/existflow/ideaful/internal/ideas"
	"github.com/existflow/ideaful/internal/notify"
)

func newTestModel(t *testing.T) (Model, *app.App, *notify.Queue) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database = config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(dir, "tui.db")}
	cfg.PrefsDir = filepath.Join(dir, "prefs")

	queue := notify.NewQueue(8)
	a, err := app.Open(context.Background(), cfg, queue, nil)
	if err != nil {
		t.Fatalf("app.Open: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	m := NewModel(a, queue)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), a, queue
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestAddTagFromTUI(t *testing.T) {
	m, a, _ := newTestModel(t)

	// sidebar: Ideas -> Statuses -> Tags
	m = press(t, m, "j", "j", "a")
	if m.mode != ModeAddTag {
		t.Fatalf("mode = %v, want ModeAddTag", m.mode)
	}
	m = typeText(t, m, "garden")
	m = press(t, m, "enter")

	if m.mode != ModeNormal {
		t.Errorf("mode = %v after save", m.mode)
	}
	tags, _ := a.Tags.ListTags(context.Background())
	if len(tags) != 1 || tags[0].Name != "garden" {
		t.Fatalf("tags = %+v", tags)
	}

	// a duplicate keeps the input open and shows the error
	m = press(t, m, "a")
	m = typeText(t, m, "garden")
	m = press(t, m, "enter")
	if m.mode != ModeAddTag {
		t.Errorf("duplicate should keep the input open, mode = %v", m.mode)
	}
	if !strings.Contains(m.message, "Error") {
		t.Errorf("message = %q", m.message)
	}
}

func TestToggleStatusInUseShowsToast(t *testing.T) {
	m, a, queue := newTestModel(t)
	ctx := context.Background()

	idea, err := a.Ideas.Create(ctx, ideas.NewIdea{Title: "Kite"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := a.Ideas.SetStatus(ctx, idea.ID, "New Idea"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	queue.Drain()
	m.loadData()

	// Statuses section, focus the list, move to "New Idea" (second row)
	m = press(t, m, "j", "tab", "j", " ")

	if !a.Statuses.IsEnabled("New Idea") {
		t.Error("New Idea is in use and must stay enabled")
	}
	found := false
	for _, msg := range queue.Drain() {
		if strings.Contains(msg, "currently in use") {
			found = true
		}
	}
	if !found {
		t.Error("expected an in-use toast")
	}

	// Unassigned is required
	m = press(t, m, "k", " ")
	if !a.Statuses.IsEnabled("Unassigned") {
		t.Error("Unassigned must stay enabled")
	}
	if !strings.Contains(m.message, "always enabled") {
		t.Errorf("message = %q", m.message)
	}
}

func TestDeleteIdeaNeedsConfirmation(t *testing.T) {
	m, a, _ := newTestModel(t)
	ctx := context.Background()

	if _, err := a.Ideas.Create(ctx, ideas.NewIdea{Title: "Temporary"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	m.loadData()

	m = press(t, m, "tab", "d", "n")
	list, _ := a.Ideas.List(ctx, ideas.Filter{})
	if len(list) != 1 {
		t.Fatalf("idea deleted without confirmation")
	}

	m = press(t, m, "d", "y")
	list, _ = a.Ideas.List(ctx, ideas.Filter{})
	if len(list) != 0 {
		t.Errorf("ideas left = %d", len(list))
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestToastMessageReloads(t *testing.T) {
	m, _, _ := newTestModel(t)
	next, _ := m.Update(toastMsg("Achievement unlocked: Hello"))
	m = next.(Model)
	if m.message != "Achievement unlocked: Hello" {
		t.Errorf("message = %q", m.message)
	}
	if !strings.Contains(m.View(), "Achievement unlocked") {
		t.Error("toast not rendered")
	}
}
