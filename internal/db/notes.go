package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/existflow/ideaful/internal/model"
)

func scanNote(s scanner) (model.Note, error) {
	var (
		n  model.Note
		ts string
	)
	if err := s.Scan(&n.ID, &n.IdeaID, &n.Title, &n.Text, &ts); err != nil {
		return model.Note{}, err
	}
	n.Timestamp = parseTime(ts)
	return n, nil
}

// CreateNote inserts a note
func (q *Queries) CreateNote(ctx context.Context, n model.Note) error {
	_, err := q.exec(ctx, `INSERT INTO notes (id, idea_id, title, text, timestamp) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.IdeaID, n.Title, n.Text, formatTime(n.Timestamp))
	return err
}

// GetNote returns one note or model.ErrNotFound
func (q *Queries) GetNote(ctx context.Context, id string) (model.Note, error) {
	n, err := scanNote(q.queryRow(ctx, `SELECT id, idea_id, title, text, timestamp FROM notes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, model.ErrNotFound
	}
	return n, err
}

// ListNotes returns an idea's notes, newest first
func (q *Queries) ListNotes(ctx context.Context, ideaID string) ([]model.Note, error) {
	rows, err := q.query(ctx, `
		SELECT id, idea_id, title, text, timestamp FROM notes
		WHERE idea_id = ?
		ORDER BY timestamp DESC, id`, ideaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// DeleteNote removes a note
func (q *Queries) DeleteNote(ctx context.Context, id string) error {
	res, err := q.exec(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
