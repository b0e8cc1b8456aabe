package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/ideaful/internal/model"
)

const ideaColumns = `id, title, short_desc, legacy_notes, status, image_paths,
    tasks_created, tasks_completed, tasks_deleted, notes_created, notes_deleted,
    created_at, updated_at`

// IdeaFilter narrows ListIdeas. Empty fields match everything.
type IdeaFilter struct {
	Status string
	TagIDs []string // any-match
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIdea(s scanner) (model.Idea, error) {
	var (
		idea                 model.Idea
		images               string
		createdAt, updatedAt string
	)
	err := s.Scan(&idea.ID, &idea.Title, &idea.ShortDesc, &idea.LegacyNotes, &idea.Status, &images,
		&idea.TasksCreated, &idea.TasksCompleted, &idea.TasksDeleted, &idea.NotesCreated, &idea.NotesDeleted,
		&createdAt, &updatedAt)
	if err != nil {
		return model.Idea{}, err
	}
	idea.ImagePaths = decodeImages(images)
	idea.CreatedAt = parseTime(createdAt)
	idea.UpdatedAt = parseTime(updatedAt)
	return idea, nil
}

func encodeImages(paths []string) string {
	if len(paths) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(paths)
	return string(b)
}

// decodeImages reads the JSON list, falling back to the comma separated legacy form
func decodeImages(s string) []string {
	var paths []string
	if err := json.Unmarshal([]byte(s), &paths); err == nil {
		return paths
	}
	paths = []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// CreateIdea inserts a new idea
func (q *Queries) CreateIdea(ctx context.Context, idea model.Idea) error {
	_, err := q.exec(ctx, `
		INSERT INTO ideas (`+ideaColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		idea.ID, idea.Title, idea.ShortDesc, idea.LegacyNotes, idea.Status, encodeImages(idea.ImagePaths),
		idea.TasksCreated, idea.TasksCompleted, idea.TasksDeleted, idea.NotesCreated, idea.NotesDeleted,
		formatTime(idea.CreatedAt), formatTime(idea.UpdatedAt))
	if isUniqueViolation(err) {
		return model.ErrConflict
	}
	return err
}

// GetIdea returns one idea or model.ErrNotFound
func (q *Queries) GetIdea(ctx context.Context, id string) (model.Idea, error) {
	idea, err := scanIdea(q.queryRow(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Idea{}, model.ErrNotFound
	}
	return idea, err
}

// UpdateIdea writes the editable fields of an idea
func (q *Queries) UpdateIdea(ctx context.Context, idea model.Idea) error {
	res, err := q.exec(ctx, `
		UPDATE ideas
		SET title = ?, short_desc = ?, legacy_notes = ?, status = ?, image_paths = ?, updated_at = ?
		WHERE id = ?`,
		idea.Title, idea.ShortDesc, idea.LegacyNotes, idea.Status, encodeImages(idea.ImagePaths),
		formatTime(idea.UpdatedAt), idea.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// TouchIdea sets updated_at
func (q *Queries) TouchIdea(ctx context.Context, id string, at time.Time) error {
	res, err := q.exec(ctx, `UPDATE ideas SET updated_at = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// IdeaCounter names a denormalized per-idea counter column
type IdeaCounter string

const (
	IdeaTasksCreated   IdeaCounter = "tasks_created"
	IdeaTasksCompleted IdeaCounter = "tasks_completed"
	IdeaTasksDeleted   IdeaCounter = "tasks_deleted"
	IdeaNotesCreated   IdeaCounter = "notes_created"
	IdeaNotesDeleted   IdeaCounter = "notes_deleted"
)

// IncrementIdeaCounter adds delta to one of the idea's counters
func (q *Queries) IncrementIdeaCounter(ctx context.Context, id string, counter IdeaCounter, delta int64) error {
	switch counter {
	case IdeaTasksCreated, IdeaTasksCompleted, IdeaTasksDeleted, IdeaNotesCreated, IdeaNotesDeleted:
	default:
		return fmt.Errorf("unknown idea counter %q", counter)
	}
	col := string(counter)
	res, err := q.exec(ctx, `UPDATE ideas SET `+col+` = `+col+` + ? WHERE id = ?`, delta, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// DeleteIdea removes an idea; tasks, notes and tag links cascade
func (q *Queries) DeleteIdea(ctx context.Context, id string) error {
	res, err := q.exec(ctx, `DELETE FROM ideas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// ListIdeas returns ideas matching filter, most recently updated first
func (q *Queries) ListIdeas(ctx context.Context, filter IdeaFilter) ([]model.Idea, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if len(filter.TagIDs) > 0 {
		where = append(where, `EXISTS (SELECT 1 FROM idea_tags it WHERE it.idea_id = ideas.id AND it.tag_id IN (`+placeholders(len(filter.TagIDs))+`))`)
		for _, id := range filter.TagIDs {
			args = append(args, id)
		}
	}

	query := `SELECT ` + ideaColumns + ` FROM ideas`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY updated_at DESC, id"

	return q.listIdeas(ctx, query, args...)
}

func (q *Queries) listIdeas(ctx context.Context, query string, args ...any) ([]model.Idea, error) {
	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ideas := []model.Idea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, idea)
	}
	return ideas, rows.Err()
}

// CountIdeasWithStatus counts ideas currently at status
func (q *Queries) CountIdeasWithStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.queryRow(ctx, `SELECT COUNT(*) FROM ideas WHERE status = ?`, status).Scan(&n)
	return n, err
}

// StatusesInUse returns the distinct statuses held by at least one idea
func (q *Queries) StatusesInUse(ctx context.Context) ([]string, error) {
	rows, err := q.query(ctx, `SELECT DISTINCT status FROM ideas ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

// ReassignInvalidStatuses moves every idea whose status is not in valid to fallback.
// It returns the number of ideas changed.
func (q *Queries) ReassignInvalidStatuses(ctx context.Context, valid []string, fallback string) (int64, error) {
	if len(valid) == 0 {
		return 0, fmt.Errorf("valid status list is empty")
	}
	args := []any{fallback}
	for _, s := range valid {
		args = append(args, s)
	}
	res, err := q.exec(ctx, `UPDATE ideas SET status = ? WHERE status NOT IN (`+placeholders(len(valid))+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// IdeasWithLegacyNotes returns ideas that still carry text in the legacy notes field
func (q *Queries) IdeasWithLegacyNotes(ctx context.Context) ([]model.Idea, error) {
	return q.listIdeas(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE legacy_notes <> '' ORDER BY created_at`)
}

// ClearLegacyNotes empties the legacy notes field
func (q *Queries) ClearLegacyNotes(ctx context.Context, id string) error {
	_, err := q.exec(ctx, `UPDATE ideas SET legacy_notes = '' WHERE id = ?`, id)
	return err
}
