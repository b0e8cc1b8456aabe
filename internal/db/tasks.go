package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/existflow/ideaful/internal/model"
)

const taskColumns = `id, idea_id, title, description, completed, priority, due_date, reminder, created_at`

func scanTask(s scanner) (model.Task, error) {
	var (
		t             model.Task
		completed     int
		due, reminder sql.NullString
		createdAt     string
	)
	err := s.Scan(&t.ID, &t.IdeaID, &t.Title, &t.Description, &completed, &t.Priority, &due, &reminder, &createdAt)
	if err != nil {
		return model.Task{}, err
	}
	t.Completed = completed != 0
	t.DueDate = parseNullTime(due)
	t.Reminder = parseNullTime(reminder)
	t.CreatedAt = parseTime(createdAt)
	return t, nil
}

// CreateTask inserts a task
func (q *Queries) CreateTask(ctx context.Context, t model.Task) error {
	_, err := q.exec(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.IdeaID, t.Title, t.Description, boolToInt(t.Completed), t.Priority,
		formatNullTime(t.DueDate), formatNullTime(t.Reminder), formatTime(t.CreatedAt))
	return err
}

// GetTask returns one task or model.ErrNotFound
func (q *Queries) GetTask(ctx context.Context, id string) (model.Task, error) {
	t, err := scanTask(q.queryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, model.ErrNotFound
	}
	return t, err
}

// ListTasks returns an idea's tasks, open ones first then by creation
func (q *Queries) ListTasks(ctx context.Context, ideaID string) ([]model.Task, error) {
	rows, err := q.query(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE idea_id = ?
		ORDER BY completed, created_at, id`, ideaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SetTaskCompleted writes the completion flag
func (q *Queries) SetTaskCompleted(ctx context.Context, id string, completed bool) error {
	res, err := q.exec(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, boolToInt(completed), id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// DeleteTask removes a task
func (q *Queries) DeleteTask(ctx context.Context, id string) error {
	res, err := q.exec(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
