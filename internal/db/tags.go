package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/existflow/ideaful/internal/model"
)

func scanTag(s scanner) (model.Tag, error) {
	var (
		tag       model.Tag
		kind      string
		createdAt string
	)
	if err := s.Scan(&tag.ID, &tag.Name, &kind, &tag.Color.Value, &createdAt); err != nil {
		return model.Tag{}, err
	}
	tag.Color.Kind = model.ColorKind(kind)
	tag.CreatedAt = parseTime(createdAt)
	return tag, nil
}

func (q *Queries) listTags(ctx context.Context, query string, args ...any) ([]model.Tag, error) {
	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// CreateTag inserts a tag. A name collision returns model.ErrConflict.
func (q *Queries) CreateTag(ctx context.Context, tag model.Tag) error {
	_, err := q.exec(ctx, `
		INSERT INTO tags (id, name, color_kind, color, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		tag.ID, tag.Name, string(tag.Color.Kind), tag.Color.Value, formatTime(tag.CreatedAt))
	if isUniqueViolation(err) {
		return model.ErrConflict
	}
	return err
}

// GetTag returns one tag or model.ErrNotFound
func (q *Queries) GetTag(ctx context.Context, id string) (model.Tag, error) {
	tag, err := scanTag(q.queryRow(ctx, `SELECT id, name, color_kind, color, created_at FROM tags WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tag{}, model.ErrNotFound
	}
	return tag, err
}

// GetTagByName looks a tag up by its exact name
func (q *Queries) GetTagByName(ctx context.Context, name string) (model.Tag, error) {
	tag, err := scanTag(q.queryRow(ctx, `SELECT id, name, color_kind, color, created_at FROM tags WHERE name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tag{}, model.ErrNotFound
	}
	return tag, err
}

// TagNameTaken reports whether another tag than exceptID already uses name
func (q *Queries) TagNameTaken(ctx context.Context, name, exceptID string) (bool, error) {
	var n int64
	err := q.queryRow(ctx, `SELECT COUNT(*) FROM tags WHERE name = ? AND id <> ?`, name, exceptID).Scan(&n)
	return n > 0, err
}

// ListTags returns every tag ordered by name
func (q *Queries) ListTags(ctx context.Context) ([]model.Tag, error) {
	return q.listTags(ctx, `SELECT id, name, color_kind, color, created_at FROM tags ORDER BY name`)
}

// UpdateTag writes a tag's name and color
func (q *Queries) UpdateTag(ctx context.Context, tag model.Tag) error {
	res, err := q.exec(ctx, `UPDATE tags SET name = ?, color_kind = ?, color = ? WHERE id = ?`,
		tag.Name, string(tag.Color.Kind), tag.Color.Value, tag.ID)
	if isUniqueViolation(err) {
		return model.ErrConflict
	}
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// DeleteTag unlinks a tag from every idea and removes it
func (q *Queries) DeleteTag(ctx context.Context, id string) error {
	if _, err := q.exec(ctx, `DELETE FROM idea_tags WHERE tag_id = ?`, id); err != nil {
		return err
	}
	res, err := q.exec(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// AttachTag links a tag to an idea. Existing links are left alone.
func (q *Queries) AttachTag(ctx context.Context, ideaID, tagID string) error {
	_, err := q.exec(ctx, `
		INSERT INTO idea_tags (idea_id, tag_id) VALUES (?, ?)
		ON CONFLICT (idea_id, tag_id) DO NOTHING`, ideaID, tagID)
	return err
}

// DetachTag removes a link if present
func (q *Queries) DetachTag(ctx context.Context, ideaID, tagID string) error {
	_, err := q.exec(ctx, `DELETE FROM idea_tags WHERE idea_id = ? AND tag_id = ?`, ideaID, tagID)
	return err
}

// TagsForIdea returns the idea's tags ordered by name
func (q *Queries) TagsForIdea(ctx context.Context, ideaID string) ([]model.Tag, error) {
	return q.listTags(ctx, `
		SELECT t.id, t.name, t.color_kind, t.color, t.created_at
		FROM tags t
		JOIN idea_tags it ON it.tag_id = t.id
		WHERE it.idea_id = ?
		ORDER BY t.name`, ideaID)
}

// IdeasForTag returns the ideas carrying a tag, most recently updated first
func (q *Queries) IdeasForTag(ctx context.Context, tagID string) ([]model.Idea, error) {
	return q.listIdeas(ctx, `
		SELECT `+ideaColumns+`
		FROM ideas
		WHERE id IN (SELECT idea_id FROM idea_tags WHERE tag_id = ?)
		ORDER BY updated_at DESC, id`, tagID)
}

// CountIdeasForTag counts the ideas carrying a tag
func (q *Queries) CountIdeasForTag(ctx context.Context, tagID string) (int64, error) {
	var n int64
	err := q.queryRow(ctx, `SELECT COUNT(*) FROM idea_tags WHERE tag_id = ?`, tagID).Scan(&n)
	return n, err
}

