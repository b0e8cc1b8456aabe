package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/existflow/ideaful/internal/app"
	"github.com/existflow/ideaful/internal/config"
	"github.com/existflow/ideaful/internal/model"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T, tokenHash string) (*Server, *app.App) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database = config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(dir, "api.db")}
	cfg.PrefsDir = filepath.Join(dir, "prefs")

	a, err := app.Open(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("app.Open: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return New(a, tokenHash, nil), a
}

func do(t *testing.T, s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d, want %d, body = %s", rec.Code, code, rec.Body.String())
	}
}

func createIdea(t *testing.T, s *Server, body map[string]any) model.Idea {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/v1/ideas", body, "")
	expect(t, rec, http.StatusCreated)
	var idea model.Idea
	decode(t, rec, &idea)
	return idea
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/health", nil, "")
	expect(t, rec, http.StatusOK)
}

func TestAuthMiddleware(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := newTestServer(t, string(hash))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer s3cret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			s.Router().ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	// health stays public
	expect(t, do(t, s, http.MethodGet, "/health", nil, ""), http.StatusOK)
}

func TestIdeaLifecycle(t *testing.T) {
	s, _ := newTestServer(t, "")

	idea := createIdea(t, s, map[string]any{"title": "  Solar kettle ", "short_desc": "boil with sun"})
	if idea.Title != "Solar kettle" || idea.Status != model.StatusUnassigned {
		t.Fatalf("idea = %+v", idea)
	}

	rec := do(t, s, http.MethodGet, "/api/v1/ideas/"+idea.ID, nil, "")
	expect(t, rec, http.StatusOK)
	var got ideaResponse
	decode(t, rec, &got)
	if got.ID != idea.ID || got.Tags == nil {
		t.Errorf("got = %+v", got)
	}

	rec = do(t, s, http.MethodPatch, "/api/v1/ideas/"+idea.ID, map[string]any{"title": "Solar kettle v2"}, "")
	expect(t, rec, http.StatusOK)

	rec = do(t, s, http.MethodPut, "/api/v1/ideas/"+idea.ID+"/status", map[string]any{"status": "Completed"}, "")
	expect(t, rec, http.StatusOK)

	// same status again is not counted twice
	rec = do(t, s, http.MethodPut, "/api/v1/ideas/"+idea.ID+"/status", map[string]any{"status": "Completed"}, "")
	expect(t, rec, http.StatusOK)

	rec = do(t, s, http.MethodGet, "/api/v1/stats", nil, "")
	expect(t, rec, http.StatusOK)
	var st model.Stats
	decode(t, rec, &st)
	if st.IdeasCreated != 1 || st.IdeasCompleted != 1 {
		t.Errorf("stats = %+v", st)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/ideas?status=Completed", nil, "")
	expect(t, rec, http.StatusOK)
	var list []model.Idea
	decode(t, rec, &list)
	if len(list) != 1 {
		t.Errorf("filtered ideas = %d", len(list))
	}

	expect(t, do(t, s, http.MethodDelete, "/api/v1/ideas/"+idea.ID, nil, ""), http.StatusNoContent)
	expect(t, do(t, s, http.MethodGet, "/api/v1/ideas/"+idea.ID, nil, ""), http.StatusNotFound)
	expect(t, do(t, s, http.MethodDelete, "/api/v1/ideas/"+idea.ID, nil, ""), http.StatusNotFound)
}

func TestIdeaValidation(t *testing.T) {
	s, _ := newTestServer(t, "")

	images := make([]string, model.MaxImages+1)
	for i := range images {
		images[i] = "img.png"
	}

	tests := []struct {
		name string
		body map[string]any
	}{
		{"blank title", map[string]any{"title": "   "}},
		{"long title", map[string]any{"title": strings.Repeat("x", model.MaxTitleLength+1)}},
		{"too many images", map[string]any{"title": "ok", "image_paths": images}},
		{"unknown status", map[string]any{"title": "ok", "status": "Sleeping"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/ideas", tt.body, "")
			expect(t, rec, http.StatusBadRequest)
		})
	}

	idea := createIdea(t, s, map[string]any{"title": "ok"})
	expect(t, do(t, s, http.MethodPut, "/api/v1/statuses/Troubleshooting", map[string]any{"enabled": false}, ""), http.StatusOK)
	rec := do(t, s, http.MethodPut, "/api/v1/ideas/"+idea.ID+"/status", map[string]any{"status": "Troubleshooting"}, "")
	expect(t, rec, http.StatusBadRequest)
}

func TestStatusToggles(t *testing.T) {
	s, a := newTestServer(t, "")
	createIdea(t, s, map[string]any{"title": "Kite", "status": "New Idea"})

	rec := do(t, s, http.MethodPut, "/api/v1/statuses/New%20Idea", map[string]any{"enabled": false}, "")
	expect(t, rec, http.StatusConflict)
	var res map[string]any
	decode(t, rec, &res)
	if res["result"] != "rejected_in_use" || res["enabled"] != true {
		t.Errorf("in use toggle = %v", res)
	}

	rec = do(t, s, http.MethodPut, "/api/v1/statuses/Unassigned", map[string]any{"enabled": false}, "")
	expect(t, rec, http.StatusConflict)

	rec = do(t, s, http.MethodPut, "/api/v1/statuses/Marketing", map[string]any{"enabled": false}, "")
	expect(t, rec, http.StatusOK)
	if a.Statuses.IsEnabled("Marketing") {
		t.Error("Marketing still enabled")
	}

	expect(t, do(t, s, http.MethodPut, "/api/v1/statuses/Marketing", map[string]any{}, ""), http.StatusBadRequest)
	expect(t, do(t, s, http.MethodPut, "/api/v1/statuses/Sleeping", map[string]any{"enabled": true}, ""), http.StatusBadRequest)

	rec = do(t, s, http.MethodGet, "/api/v1/statuses", nil, "")
	expect(t, rec, http.StatusOK)
	var list []statusResponse
	decode(t, rec, &list)
	byName := map[string]statusResponse{}
	for _, st := range list {
		byName[st.Name] = st
	}
	if len(list) != 35 {
		t.Errorf("statuses = %d", len(list))
	}
	if !byName["New Idea"].InUse || !byName["New Idea"].Enabled {
		t.Errorf("New Idea = %+v", byName["New Idea"])
	}
	if byName["Marketing"].Enabled {
		t.Error("Marketing listed as enabled")
	}

	rec = do(t, s, http.MethodPost, "/api/v1/statuses/repair", nil, "")
	expect(t, rec, http.StatusOK)
}

func TestTagsAPI(t *testing.T) {
	s, a := newTestServer(t, "")
	idea := createIdea(t, s, map[string]any{"title": "Garden bot"})

	rec := do(t, s, http.MethodPost, "/api/v1/tags", map[string]any{"name": "garden", "color": "#26de81"}, "")
	expect(t, rec, http.StatusCreated)
	var tag model.Tag
	decode(t, rec, &tag)

	expect(t, do(t, s, http.MethodPost, "/api/v1/tags", map[string]any{"name": " garden "}, ""), http.StatusConflict)
	expect(t, do(t, s, http.MethodPost, "/api/v1/tags", map[string]any{"name": ""}, ""), http.StatusBadRequest)

	rec = do(t, s, http.MethodPost, "/api/v1/tags/apply", map[string]any{
		"idea_ids": []string{idea.ID},
		"tag_ids":  []string{tag.ID},
	}, "")
	expect(t, rec, http.StatusOK)

	rec = do(t, s, http.MethodGet, "/api/v1/tags/"+tag.ID+"/ideas", nil, "")
	expect(t, rec, http.StatusOK)
	var tagged []model.Idea
	decode(t, rec, &tagged)
	if len(tagged) != 1 || tagged[0].ID != idea.ID {
		t.Errorf("tagged = %+v", tagged)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/tags", nil, "")
	expect(t, rec, http.StatusOK)
	var tags []tagResponse
	decode(t, rec, &tags)
	if len(tags) != 1 || tags[0].Ideas != 1 {
		t.Errorf("tags = %+v", tags)
	}

	rec = do(t, s, http.MethodPatch, "/api/v1/tags/"+tag.ID, map[string]any{"name": "outdoors", "color": "colorTeal"}, "")
	expect(t, rec, http.StatusOK)
	decode(t, rec, &tag)
	if tag.Name != "outdoors" || tag.Color.Value != "colorTeal" {
		t.Errorf("updated tag = %+v", tag)
	}
	expect(t, do(t, s, http.MethodPatch, "/api/v1/tags/"+tag.ID, map[string]any{}, ""), http.StatusBadRequest)
	expect(t, do(t, s, http.MethodPatch, "/api/v1/tags/"+tag.ID, map[string]any{"color": "mauve"}, ""), http.StatusBadRequest)

	// a bad color must not leave a half-applied rename behind
	expect(t, do(t, s, http.MethodPatch, "/api/v1/tags/"+tag.ID, map[string]any{"name": "Renamed", "color": "not-a-color"}, ""), http.StatusBadRequest)
	stored, err := a.Tags.GetTag(context.Background(), tag.ID)
	if err != nil {
		t.Fatalf("GetTag: %v", err)
	}
	if stored.Name != "outdoors" || stored.Color.Value != "colorTeal" {
		t.Errorf("tag after rejected PATCH = %+v", stored)
	}

	rec = do(t, s, http.MethodDelete, "/api/v1/ideas/"+idea.ID+"/tags", map[string]any{"tag_ids": []string{tag.ID}}, "")
	expect(t, rec, http.StatusOK)
	var left []model.Tag
	decode(t, rec, &left)
	if len(left) != 0 {
		t.Errorf("tags left on idea = %d", len(left))
	}

	expect(t, do(t, s, http.MethodDelete, "/api/v1/tags/"+tag.ID, nil, ""), http.StatusNoContent)
	expect(t, do(t, s, http.MethodDelete, "/api/v1/tags/"+tag.ID, nil, ""), http.StatusNotFound)
	expect(t, do(t, s, http.MethodGet, "/api/v1/ideas/"+idea.ID, nil, ""), http.StatusOK)
}

func TestTasksAndNotes(t *testing.T) {
	s, _ := newTestServer(t, "")
	idea := createIdea(t, s, map[string]any{"title": "Board game"})

	rec := do(t, s, http.MethodPost, "/api/v1/ideas/"+idea.ID+"/tasks", map[string]any{"title": "Draw board", "priority": 2}, "")
	expect(t, rec, http.StatusCreated)
	var task model.Task
	decode(t, rec, &task)

	expect(t, do(t, s, http.MethodPost, "/api/v1/ideas/"+idea.ID+"/tasks", map[string]any{"title": "x", "priority": 9}, ""), http.StatusBadRequest)
	expect(t, do(t, s, http.MethodPost, "/api/v1/ideas/missing/tasks", map[string]any{"title": "x"}, ""), http.StatusNotFound)

	rec = do(t, s, http.MethodPut, "/api/v1/tasks/"+task.ID+"/completed", map[string]any{"completed": true}, "")
	expect(t, rec, http.StatusOK)
	decode(t, rec, &task)
	if !task.Completed {
		t.Error("task not completed")
	}

	rec = do(t, s, http.MethodGet, "/api/v1/ideas/"+idea.ID+"/tasks", nil, "")
	expect(t, rec, http.StatusOK)
	var tasks []model.Task
	decode(t, rec, &tasks)
	if len(tasks) != 1 {
		t.Errorf("tasks = %d", len(tasks))
	}

	expect(t, do(t, s, http.MethodDelete, "/api/v1/tasks/"+task.ID, nil, ""), http.StatusNoContent)
	expect(t, do(t, s, http.MethodDelete, "/api/v1/tasks/"+task.ID, nil, ""), http.StatusNotFound)

	rec = do(t, s, http.MethodPost, "/api/v1/ideas/"+idea.ID+"/notes", map[string]any{"title": "Rules", "text": "roll twice"}, "")
	expect(t, rec, http.StatusCreated)
	var note model.Note
	decode(t, rec, &note)

	rec = do(t, s, http.MethodGet, "/api/v1/ideas/"+idea.ID+"/notes", nil, "")
	expect(t, rec, http.StatusOK)
	var notes []model.Note
	decode(t, rec, &notes)
	if len(notes) != 1 || notes[0].Text != "roll twice" {
		t.Errorf("notes = %+v", notes)
	}
	expect(t, do(t, s, http.MethodDelete, "/api/v1/notes/"+note.ID, nil, ""), http.StatusNoContent)

	rec = do(t, s, http.MethodGet, "/api/v1/stats", nil, "")
	var st model.Stats
	decode(t, rec, &st)
	if st.TasksCreated != 1 || st.TasksCompleted != 1 || st.TasksDeleted != 1 || st.NotesCreated != 1 || st.NotesDeleted != 1 {
		t.Errorf("stats = %+v", st)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/achievements", nil, "")
	expect(t, rec, http.StatusOK)
	var achievements []model.Achievement
	decode(t, rec, &achievements)
	unlocked := 0
	for _, ach := range achievements {
		if ach.Unlocked {
			unlocked++
		}
	}
	if unlocked == 0 {
		t.Error("expected first-use achievements to unlock")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, "")
	do(t, s, http.MethodGet, "/api/v1/stats", nil, "")

	rec := do(t, s, http.MethodGet, "/metrics", nil, "")
	expect(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "ideaful_http_requests_total") {
		t.Error("request counter missing from /metrics")
	}
}
