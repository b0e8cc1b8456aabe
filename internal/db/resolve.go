package db

import (
	"context"
	"fmt"

	"github.com/existflow/ideaful/internal/model"
)

// Table names an entity table whose ids can be abbreviated
type Table string

const (
	TableIdeas Table = "ideas"
	TableTags  Table = "tags"
	TableTasks Table = "tasks"
	TableNotes Table = "notes"
)

// ResolveID expands an id prefix to the single full id it matches.
// An exact id always wins. No match is model.ErrNotFound; several is a ValidationError.
func (q *Queries) ResolveID(ctx context.Context, table Table, prefix string) (string, error) {
	switch table {
	case TableIdeas, TableTags, TableTasks, TableNotes:
	default:
		return "", fmt.Errorf("unknown table %q", table)
	}
	if prefix == "" {
		return "", model.ErrNotFound
	}

	rows, err := q.query(ctx,
		`SELECT id FROM `+string(table)+` WHERE substr(id, 1, ?) = ? ORDER BY id LIMIT 2`,
		len(prefix), prefix)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		if id == prefix {
			return id, nil
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(ids) {
	case 0:
		return "", model.ErrNotFound
	case 1:
		return ids[0], nil
	default:
		return "", model.NewValidationError("id", fmt.Sprintf("%q matches more than one %s", prefix, table))
	}
}
