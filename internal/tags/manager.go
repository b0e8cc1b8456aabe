// Package tags manages user-defined labels and their many-to-many link to ideas.
package tags

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/existflow/ideaful/internal/db"
	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/model"
	"github.com/google/uuid"
)

var (
	// ErrEmptyName is returned when a tag name is blank after trimming
	ErrEmptyName = model.NewValidationError("name", "tag name cannot be empty")

	// ErrDuplicateName is returned when another tag already has the name
	ErrDuplicateName = model.NewValidationError("name", "a tag with this name already exists")
)

// Manager creates, renames and deletes tags and links them to ideas
type Manager struct {
	db  *db.DB
	log *logger.Logger
	now func() time.Time
}

// NewManager creates a tag manager over the entity store
func NewManager(database *db.DB, log *logger.Logger) *Manager {
	return &Manager{
		db:  database,
		log: log.WithFields(logger.F("component", "tags")),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// storeError maps store failures onto the tag error taxonomy
func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrConflict):
		return ErrDuplicateName
	case errors.Is(err, model.ErrNotFound), model.IsValidation(err):
		return err
	default:
		return model.NewPersistenceError(op, err)
	}
}

// CreateTag creates a tag. The name is trimmed and must be unique (case-sensitive).
// An empty color selects the default theme color.
func (m *Manager) CreateTag(ctx context.Context, name, color string) (model.Tag, error) {
	name, err := normalizeName(name)
	if err != nil {
		return model.Tag{}, err
	}
	c, err := model.ParseColor(color)
	if err != nil {
		return model.Tag{}, err
	}

	tag := model.Tag{ID: uuid.New().String(), Name: name, Color: c, CreatedAt: m.now()}

	err = m.db.WithTx(ctx, func(q *db.Queries) error {
		taken, err := q.TagNameTaken(ctx, name, "")
		if err != nil {
			return err
		}
		if taken {
			return model.ErrConflict
		}
		// the unique index still guards against a concurrent insert
		return q.CreateTag(ctx, tag)
	})
	if err != nil {
		return model.Tag{}, storeError("create tag", err)
	}

	m.log.Info("Tag created", logger.F("id", tag.ID), logger.F("name", tag.Name))
	return tag, nil
}

// RenameTag changes a tag's name. Renaming to its current name is allowed.
func (m *Manager) RenameTag(ctx context.Context, id, newName string) (model.Tag, error) {
	name, err := normalizeName(newName)
	if err != nil {
		return model.Tag{}, err
	}

	var tag model.Tag
	err = m.db.WithTx(ctx, func(q *db.Queries) error {
		var err error
		tag, err = q.GetTag(ctx, id)
		if err != nil {
			return err
		}
		taken, err := q.TagNameTaken(ctx, name, id)
		if err != nil {
			return err
		}
		if taken {
			return model.ErrConflict
		}
		tag.Name = name
		return q.UpdateTag(ctx, tag)
	})
	if err != nil {
		return model.Tag{}, storeError("rename tag", err)
	}

	m.log.Info("Tag renamed", logger.F("id", id), logger.F("name", name))
	return tag, nil
}

// SetColor changes a tag's color
func (m *Manager) SetColor(ctx context.Context, id, color string) (model.Tag, error) {
	c, err := model.ParseColor(color)
	if err != nil {
		return model.Tag{}, err
	}

	var tag model.Tag
	err = m.db.WithTx(ctx, func(q *db.Queries) error {
		var err error
		tag, err = q.GetTag(ctx, id)
		if err != nil {
			return err
		}
		tag.Color = c
		return q.UpdateTag(ctx, tag)
	})
	if err != nil {
		return model.Tag{}, storeError("update tag color", err)
	}
	return tag, nil
}

// Update changes the name and/or color of a tag in one transaction. Nil fields
// are left alone; when either value is rejected nothing is saved.
func (m *Manager) Update(ctx context.Context, id string, name, color *string) (model.Tag, error) {
	var (
		newName  string
		newColor model.Color
		err      error
	)
	if name != nil {
		if newName, err = normalizeName(*name); err != nil {
			return model.Tag{}, err
		}
	}
	if color != nil {
		if newColor, err = model.ParseColor(*color); err != nil {
			return model.Tag{}, err
		}
	}

	var tag model.Tag
	err = m.db.WithTx(ctx, func(q *db.Queries) error {
		var err error
		tag, err = q.GetTag(ctx, id)
		if err != nil {
			return err
		}
		if name != nil {
			taken, err := q.TagNameTaken(ctx, newName, id)
			if err != nil {
				return err
			}
			if taken {
				return model.ErrConflict
			}
			tag.Name = newName
		}
		if color != nil {
			tag.Color = newColor
		}
		return q.UpdateTag(ctx, tag)
	})
	if err != nil {
		return model.Tag{}, storeError("update tag", err)
	}

	m.log.Info("Tag updated", logger.F("id", id), logger.F("name", tag.Name), logger.F("color", tag.Color.Value))
	return tag, nil
}

// DeleteTag removes the tag from every idea and deletes it. Ideas are kept.
func (m *Manager) DeleteTag(ctx context.Context, id string) error {
	err := m.db.WithTx(ctx, func(q *db.Queries) error {
		return q.DeleteTag(ctx, id)
	})
	if err != nil {
		return storeError("delete tag", err)
	}
	m.log.Info("Tag deleted", logger.F("id", id))
	return nil
}

// GetTag returns one tag
func (m *Manager) GetTag(ctx context.Context, id string) (model.Tag, error) {
	tag, err := m.db.GetTag(ctx, id)
	return tag, storeError("get tag", err)
}

// FindByName returns the tag with exactly name (after trimming)
func (m *Manager) FindByName(ctx context.Context, name string) (model.Tag, error) {
	name, err := normalizeName(name)
	if err != nil {
		return model.Tag{}, err
	}
	tag, err := m.db.GetTagByName(ctx, name)
	return tag, storeError("find tag", err)
}

// ListTags returns every tag ordered by name
func (m *Manager) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags, err := m.db.ListTags(ctx)
	return tags, storeError("list tags", err)
}

// AttachTags links tags to one idea and bumps its update time once
func (m *Manager) AttachTags(ctx context.Context, ideaID string, tagIDs []string) error {
	return m.ApplyTagsToIdeas(ctx, []string{ideaID}, tagIDs)
}

// DetachTags unlinks tags from one idea and bumps its update time once
func (m *Manager) DetachTags(ctx context.Context, ideaID string, tagIDs []string) error {
	err := m.db.WithTx(ctx, func(q *db.Queries) error {
		if _, err := q.GetIdea(ctx, ideaID); err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if err := q.DetachTag(ctx, ideaID, tagID); err != nil {
				return err
			}
		}
		return q.TouchIdea(ctx, ideaID, m.now())
	})
	return storeError("detach tags", err)
}

// ApplyTagsToIdeas adds every tag to every idea. Existing tags are kept (union)
// and each idea's update time is bumped once.
func (m *Manager) ApplyTagsToIdeas(ctx context.Context, ideaIDs, tagIDs []string) error {
	now := m.now()
	err := m.db.WithTx(ctx, func(q *db.Queries) error {
		for _, tagID := range tagIDs {
			if _, err := q.GetTag(ctx, tagID); err != nil {
				return err
			}
		}
		for _, ideaID := range ideaIDs {
			if _, err := q.GetIdea(ctx, ideaID); err != nil {
				return err
			}
			for _, tagID := range tagIDs {
				if err := q.AttachTag(ctx, ideaID, tagID); err != nil {
					return err
				}
			}
			if err := q.TouchIdea(ctx, ideaID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storeError("apply tags", err)
	}
	m.log.Debug("Tags applied", logger.F("ideas", len(ideaIDs)), logger.F("tags", len(tagIDs)))
	return nil
}

// TagsForIdea returns an idea's tags ordered by name
func (m *Manager) TagsForIdea(ctx context.Context, ideaID string) ([]model.Tag, error) {
	tags, err := m.db.TagsForIdea(ctx, ideaID)
	return tags, storeError("list idea tags", err)
}

// IdeasForTag returns the ideas carrying a tag, most recently updated first
func (m *Manager) IdeasForTag(ctx context.Context, tagID string) ([]model.Idea, error) {
	if _, err := m.db.GetTag(ctx, tagID); err != nil {
		return nil, storeError("get tag", err)
	}
	ideas, err := m.db.IdeasForTag(ctx, tagID)
	return ideas, storeError("list tag ideas", err)
}

// CountIdeas returns how many ideas carry a tag
func (m *Manager) CountIdeas(ctx context.Context, tagID string) (int64, error) {
	n, err := m.db.CountIdeasForTag(ctx, tagID)
	return n, storeError("count tag ideas", err)
}
