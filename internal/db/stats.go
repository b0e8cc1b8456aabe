package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/existflow/ideaful/internal/model"
)

// statsID is the primary key of the singleton stats row
const statsID = 1

// GetStats returns the counters. A missing row reads as all zeros.
func (q *Queries) GetStats(ctx context.Context) (model.Stats, error) {
	var s model.Stats
	err := q.queryRow(ctx, `
		SELECT ideas_created, ideas_completed, ideas_cancelled, ideas_deleted,
		       tasks_created, tasks_completed, tasks_uncompleted, tasks_deleted,
		       notes_created, notes_deleted
		FROM stats WHERE id = ?`, statsID).Scan(
		&s.IdeasCreated, &s.IdeasCompleted, &s.IdeasCancelled, &s.IdeasDeleted,
		&s.TasksCreated, &s.TasksCompleted, &s.TasksUncompleted, &s.TasksDeleted,
		&s.NotesCreated, &s.NotesDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Stats{}, nil
	}
	return s, err
}

// IncrementStat adds delta to a counter, creating the row on first use
func (q *Queries) IncrementStat(ctx context.Context, counter model.Counter, delta int64) error {
	if !counter.Valid() {
		return fmt.Errorf("unknown stats counter %q", counter)
	}
	col := string(counter)
	_, err := q.exec(ctx, `
		INSERT INTO stats (id, `+col+`) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET `+col+` = stats.`+col+` + excluded.`+col,
		statsID, delta)
	return err
}
