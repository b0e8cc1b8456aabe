package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/existflow/ideaful/internal/model"
)

// UpsertAchievement inserts a catalog entry or refreshes its text. The unlocked flag is never touched.
func (q *Queries) UpsertAchievement(ctx context.Context, a model.Achievement) error {
	_, err := q.exec(ctx, `
		INSERT INTO achievements (id, title, description, unlocked) VALUES (?, ?, ?, 0)
		ON CONFLICT (id) DO UPDATE SET title = excluded.title, description = excluded.description`,
		a.ID, a.Title, a.Description)
	return err
}

// GetAchievement returns one achievement or model.ErrNotFound
func (q *Queries) GetAchievement(ctx context.Context, id string) (model.Achievement, error) {
	var (
		a        model.Achievement
		unlocked int
	)
	err := q.queryRow(ctx, `SELECT id, title, description, unlocked FROM achievements WHERE id = ?`, id).
		Scan(&a.ID, &a.Title, &a.Description, &unlocked)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Achievement{}, model.ErrNotFound
	}
	a.Unlocked = unlocked != 0
	return a, err
}

// ListAchievements returns every achievement ordered by id
func (q *Queries) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
	rows, err := q.query(ctx, `SELECT id, title, description, unlocked FROM achievements ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Achievement{}
	for rows.Next() {
		var (
			a        model.Achievement
			unlocked int
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &unlocked); err != nil {
			return nil, err
		}
		a.Unlocked = unlocked != 0
		list = append(list, a)
	}
	return list, rows.Err()
}

// UnlockAchievement flips a locked achievement to unlocked.
// It reports false when the achievement was already unlocked or does not exist.
func (q *Queries) UnlockAchievement(ctx context.Context, id string) (bool, error) {
	res, err := q.exec(ctx, `UPDATE achievements SET unlocked = 1 WHERE id = ? AND unlocked = 0`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
