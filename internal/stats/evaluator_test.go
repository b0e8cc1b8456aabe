package stats

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/existflow/ideaful/internal/db"
	"github.com/existflow/ideaful/internal/model"
)

func newTestEvaluator(t *testing.T) (*Evaluator, *db.DB) {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	e := NewEvaluator(database, nil)
	if err := e.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	return e, database
}

func ids(list []model.Achievement) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, a := range list {
		m[a.ID] = true
	}
	return m
}

func TestRulesReferenceCatalog(t *testing.T) {
	if len(Catalog) != 53 {
		t.Errorf("catalog has %d entries, want 53", len(Catalog))
	}
	covered := map[string]bool{}
	for _, r := range ThresholdRules {
		if _, ok := catalogIndex[r.Achievement]; !ok {
			t.Errorf("rule points at unknown achievement %s", r.Achievement)
		}
		covered[r.Achievement] = true
	}
	for _, r := range StatusRules {
		if _, ok := catalogIndex[r.Achievement]; !ok {
			t.Errorf("status rule points at unknown achievement %s", r.Achievement)
		}
		covered[r.Achievement] = true
	}
	for _, a := range Catalog {
		if !covered[a.ID] {
			t.Errorf("achievement %s has no rule", a.ID)
		}
	}
}

func TestTaskLadderUnlocksAtFive(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEvaluator(t)

	for i := 0; i < 4; i++ {
		if err := e.RecordEvent(ctx, TaskCreated, 1); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}
	got, err := e.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !ids(got)["T01"] || ids(got)["T02"] {
		t.Fatalf("after 4 tasks unlocked %v", got)
	}

	if err := e.RecordEvent(ctx, TaskCreated, 1); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	got, err = e.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(got) != 1 || got[0].ID != "T02" || !got[0].Unlocked {
		t.Fatalf("after 5 tasks unlocked %v, want only T02", got)
	}

	all, _ := e.Achievements(ctx)
	for _, a := range all {
		if a.ID == "T03" && a.Unlocked {
			t.Error("T03 must stay locked at 5 tasks")
		}
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEvaluator(t)

	if err := e.RecordEvent(ctx, NoteCreated, 10); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	first, err := e.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(first) != 3 {
		t.Errorf("expected N01-N03, got %v", first)
	}

	second, err := e.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second evaluate unlocked %v", second)
	}
}

func TestRecordEventDelta(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEvaluator(t)

	if err := e.RecordEvent(ctx, TaskDeleted, 3); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	if err := e.RecordEvent(ctx, TaskDeleted, 0); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	s, err := e.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if s.TasksDeleted != 4 {
		t.Errorf("tasks deleted = %d, want 4", s.TasksDeleted)
	}

	if err := e.RecordEvent(ctx, EventKind("ideaRenamed"), 1); !model.IsValidation(err) {
		t.Errorf("unknown event should be a validation error, got %v", err)
	}

	if err := e.RecordEvent(ctx, TaskDeleted, -2); !model.IsValidation(err) {
		t.Errorf("negative delta should be a validation error, got %v", err)
	}
	s, _ = e.Snapshot(ctx)
	if s.TasksDeleted != 4 {
		t.Errorf("negative delta changed the counter: %d", s.TasksDeleted)
	}
}

func TestIdeaDeletedLadder(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEvaluator(t)

	e.RecordEvent(ctx, IdeaDeleted, 2)
	got, _ := e.Evaluate(ctx)
	if !ids(got)["I09"] || ids(got)["I10"] {
		t.Errorf("after 2 deletes unlocked %v", got)
	}

	e.RecordEvent(ctx, IdeaDeleted, 3)
	got, _ = e.Evaluate(ctx)
	if !ids(got)["I10"] {
		t.Errorf("I10 should unlock at 5 deletes, got %v", got)
	}
}

func TestStatusAchievements(t *testing.T) {
	ctx := context.Background()
	e, database := newTestEvaluator(t)

	idea := model.NewIdea("a", "Garden robot")
	idea.Status = "On Hold"
	if err := database.CreateIdea(ctx, idea); err != nil {
		t.Fatalf("CreateIdea: %v", err)
	}

	var hooked []string
	e.OnUnlock(func(a model.Achievement) { hooked = append(hooked, a.ID) })

	got, err := e.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(got) != 1 || got[0].ID != "I15" {
		t.Errorf("unlocked %v, want I15", got)
	}
	if len(hooked) != 1 || hooked[0] != "I15" {
		t.Errorf("hook saw %v", hooked)
	}
}

func TestBootstrapKeepsUnlocks(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEvaluator(t)

	e.RecordEvent(ctx, IdeaCreated, 1)
	if _, err := e.Evaluate(ctx); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if err := e.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	all, _ := e.Achievements(ctx)
	if len(all) != len(Catalog) {
		t.Fatalf("achievements = %d, want %d", len(all), len(Catalog))
	}
	for _, a := range all {
		if a.ID == "I01" && !a.Unlocked {
			t.Error("re-seeding must not relock I01")
		}
	}
}

// failingStore fails writes to stats
type failingStore struct {
	Store
}

func (failingStore) IncrementStat(context.Context, model.Counter, int64) error {
	return errors.New("disk I/O error")
}

func (failingStore) GetStats(context.Context) (model.Stats, error) {
	return model.Stats{}, errors.New("disk I/O error")
}

func TestPersistenceFailures(t *testing.T) {
	ctx := context.Background()
	e := NewEvaluator(failingStore{}, nil)

	var pe *model.PersistenceError
	if err := e.RecordEvent(ctx, IdeaCreated, 1); !errors.As(err, &pe) {
		t.Errorf("RecordEvent error = %v, want PersistenceError", err)
	}
	if _, err := e.Evaluate(ctx); !errors.As(err, &pe) {
		t.Errorf("Evaluate error = %v, want PersistenceError", err)
	}
}
