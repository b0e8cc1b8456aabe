package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/existflow/ideaful/internal/config"
	"github.com/existflow/ideaful/internal/db"
	"github.com/existflow/ideaful/internal/ideas"
	"github.com/existflow/ideaful/internal/model"
	"github.com/existflow/ideaful/internal/notify"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database = config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(dir, "ideaful.db")}
	cfg.PrefsDir = filepath.Join(dir, "prefs")
	return cfg
}

func TestOpenRunsStartup(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	// seed a store with a legacy note and a status that no longer exists
	seed, err := db.Open(cfg.Database)
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	legacy := model.NewIdea("old", "Legacy idea")
	legacy.LegacyNotes = "from the old notes field"
	legacy.Status = "Brainstorm"
	if err := seed.CreateIdea(ctx, legacy); err != nil {
		t.Fatalf("CreateIdea: %v", err)
	}
	parked := model.NewIdea("parked", "Parked idea")
	parked.Status = "On Hold"
	if err := seed.CreateIdea(ctx, parked); err != nil {
		t.Fatalf("CreateIdea: %v", err)
	}
	seed.Close()

	queue := notify.NewQueue(8)
	a, err := Open(ctx, cfg, queue, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	got, err := a.Ideas.Get(ctx, "old")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != model.StatusUnassigned {
		t.Errorf("status = %q, want repaired to Unassigned", got.Status)
	}
	notes, _ := a.Ideas.ListNotes(ctx, "old")
	if len(notes) != 1 || notes[0].Title != model.MigratedNotesTitle {
		t.Errorf("notes = %+v", notes)
	}

	if !a.Statuses.IsEnabled("On Hold") {
		t.Error("On Hold is held by an idea and must be enabled")
	}

	// the On Hold idea unlocks I15 during startup evaluation
	var toast string
	for _, m := range queue.Drain() {
		if strings.Contains(m, "Achievement unlocked") {
			toast = m
		}
	}
	if toast == "" {
		t.Error("expected an achievement toast from startup evaluation")
	}
}

func TestOpenTwiceKeepsState(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := Open(ctx, cfg, nil, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := a.Ideas.Create(ctx, ideas.NewIdea{Title: "Persist me"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := a.Statuses.SetEnabled(ctx, "Researching", false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	a.Close()

	b, err := Open(ctx, cfg, nil, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()

	s, _ := b.Evaluator.Snapshot(ctx)
	if s.IdeasCreated != 1 {
		t.Errorf("ideas created = %d, want 1", s.IdeasCreated)
	}
	if b.Statuses.IsEnabled("Researching") {
		t.Error("Researching should stay disabled across restarts")
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"
	if _, err := Open(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
