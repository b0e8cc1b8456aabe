package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/existflow/ideaful/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func mustCreateIdea(t *testing.T, database *DB, id, status string, updated time.Time) model.Idea {
	t.Helper()
	idea := model.NewIdea(id, "Idea "+id)
	idea.Status = status
	idea.UpdatedAt = updated
	if err := database.CreateIdea(context.Background(), idea); err != nil {
		t.Fatalf("CreateIdea(%s): %v", id, err)
	}
	return idea
}

func mustCreateTag(t *testing.T, database *DB, id, name string) model.Tag {
	t.Helper()
	tag := model.Tag{ID: id, Name: name, Color: model.Color{Kind: model.ColorNamed, Value: "colorPrimary"}, CreatedAt: time.Now()}
	if err := database.CreateTag(context.Background(), tag); err != nil {
		t.Fatalf("CreateTag(%s): %v", name, err)
	}
	return tag
}

func TestRebind(t *testing.T) {
	q := &Queries{postgres: true}
	got := q.rebind("SELECT * FROM t WHERE a = ? AND b IN (?, ?)")
	want := "SELECT * FROM t WHERE a = $1 AND b IN ($2, $3)"
	if got != want {
		t.Errorf("rebind = %q, want %q", got, want)
	}

	lite := &Queries{}
	if lite.rebind("a = ?") != "a = ?" {
		t.Error("sqlite queries should not be rewritten")
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	database := openTestDB(t)
	if err := database.migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestIdeaRoundTrip(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	idea := model.NewIdea("i1", "Solar kettle")
	idea.ShortDesc = "boil water"
	idea.ImagePaths = []string{"a.png", "b,c.png"}
	if err := database.CreateIdea(ctx, idea); err != nil {
		t.Fatalf("CreateIdea: %v", err)
	}

	got, err := database.GetIdea(ctx, "i1")
	if err != nil {
		t.Fatalf("GetIdea: %v", err)
	}
	if got.Title != "Solar kettle" || got.Status != model.StatusUnassigned {
		t.Errorf("unexpected idea: %+v", got)
	}
	if len(got.ImagePaths) != 2 || got.ImagePaths[1] != "b,c.png" {
		t.Errorf("image paths = %v", got.ImagePaths)
	}

	if _, err := database.GetIdea(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDecodeLegacyImagePaths(t *testing.T) {
	paths := decodeImages("one.png, two.png,,")
	if len(paths) != 2 || paths[0] != "one.png" || paths[1] != "two.png" {
		t.Errorf("decodeImages = %v", paths)
	}
}

func TestTagNameIsUnique(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	mustCreateTag(t, database, "t1", "Work")
	err := database.CreateTag(ctx, model.Tag{ID: "t2", Name: "Work", Color: model.Color{Kind: model.ColorNamed, Value: "colorPrimary"}, CreatedAt: time.Now()})
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// names are case-sensitive
	mustCreateTag(t, database, "t3", "work")
}

func TestDeleteTagKeepsIdeas(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	now := time.Now()

	tag := mustCreateTag(t, database, "t1", "Work")
	for _, id := range []string{"a", "b", "c"} {
		mustCreateIdea(t, database, id, model.StatusUnassigned, now)
		if err := database.AttachTag(ctx, id, tag.ID); err != nil {
			t.Fatalf("AttachTag: %v", err)
		}
	}

	if err := database.DeleteTag(ctx, tag.ID); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}

	ideas, err := database.ListIdeas(ctx, IdeaFilter{})
	if err != nil {
		t.Fatalf("ListIdeas: %v", err)
	}
	if len(ideas) != 3 {
		t.Fatalf("expected 3 ideas to survive, got %d", len(ideas))
	}
	for _, id := range []string{"a", "b", "c"} {
		tags, err := database.TagsForIdea(ctx, id)
		if err != nil {
			t.Fatalf("TagsForIdea: %v", err)
		}
		if len(tags) != 0 {
			t.Errorf("idea %s still has tags %v", id, tags)
		}
	}
	if err := database.DeleteTag(ctx, tag.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("second delete should be ErrNotFound, got %v", err)
	}
}

func TestAttachIsIdempotentAndIdeasForTagOrder(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	base := time.Now().Add(-time.Hour)

	tag := mustCreateTag(t, database, "t1", "Work")
	mustCreateIdea(t, database, "old", model.StatusUnassigned, base)
	mustCreateIdea(t, database, "new", model.StatusUnassigned, base.Add(time.Minute))

	for i := 0; i < 2; i++ {
		if err := database.AttachTag(ctx, "old", tag.ID); err != nil {
			t.Fatalf("AttachTag: %v", err)
		}
	}
	if err := database.AttachTag(ctx, "new", tag.ID); err != nil {
		t.Fatalf("AttachTag: %v", err)
	}

	n, err := database.CountIdeasForTag(ctx, tag.ID)
	if err != nil || n != 2 {
		t.Fatalf("CountIdeasForTag = %d, %v", n, err)
	}

	ideas, err := database.IdeasForTag(ctx, tag.ID)
	if err != nil {
		t.Fatalf("IdeasForTag: %v", err)
	}
	if len(ideas) != 2 || ideas[0].ID != "new" || ideas[1].ID != "old" {
		t.Errorf("unexpected order: %v", ideas)
	}
}

func TestListIdeasAnyTagMatch(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	now := time.Now()

	work := mustCreateTag(t, database, "t1", "Work")
	home := mustCreateTag(t, database, "t2", "Home")
	mustCreateIdea(t, database, "a", "Planning", now)
	mustCreateIdea(t, database, "b", model.StatusUnassigned, now)
	mustCreateIdea(t, database, "c", model.StatusUnassigned, now)
	database.AttachTag(ctx, "a", work.ID)
	database.AttachTag(ctx, "b", home.ID)

	ideas, err := database.ListIdeas(ctx, IdeaFilter{TagIDs: []string{work.ID, home.ID}})
	if err != nil {
		t.Fatalf("ListIdeas: %v", err)
	}
	if len(ideas) != 2 {
		t.Errorf("expected 2 ideas, got %d", len(ideas))
	}

	ideas, err = database.ListIdeas(ctx, IdeaFilter{Status: "Planning", TagIDs: []string{work.ID}})
	if err != nil {
		t.Fatalf("ListIdeas: %v", err)
	}
	if len(ideas) != 1 || ideas[0].ID != "a" {
		t.Errorf("unexpected filtered ideas: %v", ideas)
	}
}

func TestReassignInvalidStatuses(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	now := time.Now()

	mustCreateIdea(t, database, "a", "Planning", now)
	mustCreateIdea(t, database, "b", "Brainstorming", now)
	mustCreateIdea(t, database, "c", "", now)

	valid := []string{model.StatusUnassigned, "Planning"}
	n, err := database.ReassignInvalidStatuses(ctx, valid, model.StatusUnassigned)
	if err != nil {
		t.Fatalf("ReassignInvalidStatuses: %v", err)
	}
	if n != 2 {
		t.Errorf("changed %d ideas, want 2", n)
	}

	n, err = database.ReassignInvalidStatuses(ctx, valid, model.StatusUnassigned)
	if err != nil || n != 0 {
		t.Errorf("second pass changed %d ideas (err %v), want 0", n, err)
	}

	count, _ := database.CountIdeasWithStatus(ctx, model.StatusUnassigned)
	if count != 2 {
		t.Errorf("unassigned count = %d, want 2", count)
	}
}

func TestStatsUpsertIncrement(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	s, err := database.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats on empty store: %v", err)
	}
	if s != (model.Stats{}) {
		t.Errorf("expected zero stats, got %+v", s)
	}

	for i := 0; i < 3; i++ {
		if err := database.IncrementStat(ctx, model.CounterTasksCreated, 1); err != nil {
			t.Fatalf("IncrementStat: %v", err)
		}
	}
	if err := database.IncrementStat(ctx, model.CounterTasksDeleted, 4); err != nil {
		t.Fatalf("IncrementStat: %v", err)
	}

	s, _ = database.GetStats(ctx)
	if s.TasksCreated != 3 || s.TasksDeleted != 4 {
		t.Errorf("unexpected stats: %+v", s)
	}

	if err := database.IncrementStat(ctx, model.Counter("bogus"), 1); err == nil {
		t.Error("expected error for unknown counter")
	}
}

func TestAchievementUnlockIsMonotonic(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	a := model.Achievement{ID: "T01", Title: "First Task", Description: "Create your 1st task."}
	if err := database.UpsertAchievement(ctx, a); err != nil {
		t.Fatalf("UpsertAchievement: %v", err)
	}

	unlocked, err := database.UnlockAchievement(ctx, "T01")
	if err != nil || !unlocked {
		t.Fatalf("first unlock = %v, %v", unlocked, err)
	}
	unlocked, err = database.UnlockAchievement(ctx, "T01")
	if err != nil || unlocked {
		t.Fatalf("second unlock = %v, %v", unlocked, err)
	}

	// re-seeding refreshes text but keeps the unlock
	a.Title = "First Task!"
	if err := database.UpsertAchievement(ctx, a); err != nil {
		t.Fatalf("UpsertAchievement: %v", err)
	}
	got, err := database.GetAchievement(ctx, "T01")
	if err != nil {
		t.Fatalf("GetAchievement: %v", err)
	}
	if !got.Unlocked || got.Title != "First Task!" {
		t.Errorf("unexpected achievement: %+v", got)
	}
}

func TestCascadeOnIdeaDelete(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	mustCreateIdea(t, database, "a", model.StatusUnassigned, time.Now())

	task := model.NewTask("task1", "a", "Buy parts")
	if err := database.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	note := model.Note{ID: "n1", IdeaID: "a", Title: "n", Text: "t", Timestamp: time.Now()}
	if err := database.CreateNote(ctx, note); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	if err := database.DeleteIdea(ctx, "a"); err != nil {
		t.Fatalf("DeleteIdea: %v", err)
	}
	if _, err := database.GetTask(ctx, "task1"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("task should cascade, got %v", err)
	}
	if _, err := database.GetNote(ctx, "n1"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("note should cascade, got %v", err)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	boom := errors.New("boom")
	err := database.WithTx(ctx, func(q *Queries) error {
		if err := q.CreateTag(ctx, model.Tag{ID: "t1", Name: "Work", Color: model.Color{Kind: model.ColorNamed, Value: "colorPrimary"}, CreatedAt: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := database.GetTag(ctx, "t1"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("tag should have been rolled back, got %v", err)
	}
}

func TestResolveID(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	now := time.Now()
	mustCreateIdea(t, database, "abc", "Unassigned", now)
	mustCreateIdea(t, database, "abcdef", "Unassigned", now)
	mustCreateIdea(t, database, "abx123", "Unassigned", now)

	tests := []struct {
		prefix  string
		want    string
		wantErr func(error) bool
	}{
		{"abc", "abc", nil},
		{"abcd", "abcdef", nil},
		{"abx", "abx123", nil},
		{"ab", "", model.IsValidation},
		{"zz", "", func(err error) bool { return errors.Is(err, model.ErrNotFound) }},
	}
	for _, tt := range tests {
		got, err := database.ResolveID(ctx, TableIdeas, tt.prefix)
		if tt.wantErr != nil {
			if !tt.wantErr(err) {
				t.Errorf("ResolveID(%q) error = %v", tt.prefix, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ResolveID(%q) = %q, %v; want %q", tt.prefix, got, err, tt.want)
		}
	}

	if _, err := database.ResolveID(ctx, Table("users"), "a"); err == nil {
		t.Error("unknown table should fail")
	}
}
