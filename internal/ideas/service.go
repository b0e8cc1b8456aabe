// Package ideas is the write path for ideas, their tasks and notes. Every
// mutation records the matching usage event and re-evaluates achievements.
package ideas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/ideaful/internal/db"
	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/model"
	"github.com/existflow/ideaful/internal/stats"
	"github.com/existflow/ideaful/internal/status"
	"github.com/existflow/ideaful/internal/validate"
	"github.com/google/uuid"
)

// StatusChecker reports whether a status may be assigned
type StatusChecker interface {
	IsEnabled(name string) bool
}

// NewIdea is the input for Create
type NewIdea struct {
	Title      string   `json:"title" validate:"notblank,max=85"`
	ShortDesc  string   `json:"short_desc" validate:"max=85"`
	Status     string   `json:"status"`
	TagIDs     []string `json:"tag_ids"`
	ImagePaths []string `json:"image_paths" validate:"max=10"`
}

// IdeaUpdate is the input for Update
type IdeaUpdate struct {
	Title     string `json:"title" validate:"notblank,max=85"`
	ShortDesc string `json:"short_desc" validate:"max=85"`
}

// Filter narrows List. Tag matching is any-of.
type Filter struct {
	Status string
	TagIDs []string
}

// NewTask is the input for AddTask
type NewTask struct {
	Title       string     `json:"title" validate:"notblank,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Priority    int        `json:"priority" validate:"min=0,max=3"`
	DueDate     *time.Time `json:"due_date"`
	Reminder    *time.Time `json:"reminder"`
}

// NewNote is the input for AddNote
type NewNote struct {
	Title string `json:"title" validate:"max=85"`
	Text  string `json:"text"`
}

// Service owns idea mutations
type Service struct {
	db        *db.DB
	statuses  StatusChecker
	evaluator *stats.Evaluator
	validate  *validate.Validator
	log       *logger.Logger
	now       func() time.Time
}

// NewService wires the idea service
func NewService(database *db.DB, statuses StatusChecker, evaluator *stats.Evaluator, log *logger.Logger) *Service {
	return &Service{
		db:        database,
		statuses:  statuses,
		evaluator: evaluator,
		validate:  validate.New(),
		log:       log.WithFields(logger.F("component", "ideas")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrNotFound), model.IsValidation(err):
		return err
	default:
		return model.NewPersistenceError(op, err)
	}
}

// record bumps a stats counter and re-evaluates achievements. The mutation has
// already been committed, so failures here are logged and not returned.
func (s *Service) record(ctx context.Context, kind stats.EventKind, delta int64) {
	if s.evaluator == nil {
		return
	}
	if kind != "" {
		if err := s.evaluator.RecordEvent(ctx, kind, delta); err != nil {
			s.log.Error("Stats not updated", logger.F("event", kind), logger.F("error", err))
		}
	}
	if _, err := s.evaluator.Evaluate(ctx); err != nil {
		s.log.Error("Achievement evaluation failed", logger.F("error", err))
	}
}

func (s *Service) checkStatus(name string) error {
	if s.statuses.IsEnabled(name) {
		return nil
	}
	return model.NewValidationError("status", fmt.Sprintf("%q is not an enabled status", name))
}

// Create saves a new idea. An empty status means Unassigned.
func (s *Service) Create(ctx context.Context, in NewIdea) (model.Idea, error) {
	if err := s.validate.Struct(in); err != nil {
		return model.Idea{}, err
	}
	statusName := strings.TrimSpace(in.Status)
	if statusName == "" {
		statusName = model.StatusUnassigned
	}
	if err := s.checkStatus(statusName); err != nil {
		return model.Idea{}, err
	}

	idea := model.NewIdea(uuid.New().String(), strings.TrimSpace(in.Title))
	idea.ShortDesc = strings.TrimSpace(in.ShortDesc)
	idea.Status = statusName
	idea.CreatedAt = s.now()
	idea.UpdatedAt = idea.CreatedAt
	if in.ImagePaths != nil {
		idea.ImagePaths = in.ImagePaths
	}

	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		if err := q.CreateIdea(ctx, idea); err != nil {
			return err
		}
		for _, tagID := range in.TagIDs {
			if _, err := q.GetTag(ctx, tagID); err != nil {
				return err
			}
			if err := q.AttachTag(ctx, idea.ID, tagID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Idea{}, storeError("create idea", err)
	}

	s.log.Info("Idea created", logger.F("id", idea.ID), logger.F("status", idea.Status))
	s.record(ctx, stats.IdeaCreated, 1)
	return idea, nil
}

// Get returns one idea
func (s *Service) Get(ctx context.Context, id string) (model.Idea, error) {
	idea, err := s.db.GetIdea(ctx, id)
	return idea, storeError("get idea", err)
}

// List returns ideas matching filter, most recently updated first
func (s *Service) List(ctx context.Context, f Filter) ([]model.Idea, error) {
	ideas, err := s.db.ListIdeas(ctx, db.IdeaFilter{Status: f.Status, TagIDs: f.TagIDs})
	return ideas, storeError("list ideas", err)
}

// Update changes an idea's title and short description
func (s *Service) Update(ctx context.Context, id string, in IdeaUpdate) (model.Idea, error) {
	if err := s.validate.Struct(in); err != nil {
		return model.Idea{}, err
	}
	idea, err := s.db.GetIdea(ctx, id)
	if err != nil {
		return model.Idea{}, storeError("get idea", err)
	}
	idea.Title = strings.TrimSpace(in.Title)
	idea.ShortDesc = strings.TrimSpace(in.ShortDesc)
	idea.UpdatedAt = s.now()
	if err := s.db.UpdateIdea(ctx, idea); err != nil {
		return model.Idea{}, storeError("update idea", err)
	}
	s.record(ctx, "", 0)
	return idea, nil
}

// SetStatus moves an idea to another enabled status. Moving into Completed or
// Cancelled counts towards the matching stats.
func (s *Service) SetStatus(ctx context.Context, id, statusName string) (model.Idea, error) {
	if err := s.checkStatus(statusName); err != nil {
		return model.Idea{}, err
	}
	idea, err := s.db.GetIdea(ctx, id)
	if err != nil {
		return model.Idea{}, storeError("get idea", err)
	}
	if idea.Status == statusName {
		return idea, nil
	}

	previous := idea.Status
	idea.Status = statusName
	idea.UpdatedAt = s.now()
	if err := s.db.UpdateIdea(ctx, idea); err != nil {
		return model.Idea{}, storeError("update idea status", err)
	}

	s.log.Info("Idea status changed", logger.F("id", id), logger.F("from", previous), logger.F("to", statusName))

	var kind stats.EventKind
	switch statusName {
	case status.Completed:
		kind = stats.IdeaCompleted
	case status.Cancelled:
		kind = stats.IdeaCancelled
	}
	s.record(ctx, kind, 1)
	return idea, nil
}

// SetImages replaces an idea's ordered image paths
func (s *Service) SetImages(ctx context.Context, id string, paths []string) (model.Idea, error) {
	if len(paths) > model.MaxImages {
		return model.Idea{}, model.NewValidationError("image_paths", fmt.Sprintf("must have at most %d items", model.MaxImages))
	}
	idea, err := s.db.GetIdea(ctx, id)
	if err != nil {
		return model.Idea{}, storeError("get idea", err)
	}
	idea.ImagePaths = append([]string{}, paths...)
	idea.UpdatedAt = s.now()
	if err := s.db.UpdateIdea(ctx, idea); err != nil {
		return model.Idea{}, storeError("update idea images", err)
	}
	return idea, nil
}

// Delete removes an idea with its tasks and notes. Tags are kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.db.DeleteIdea(ctx, id); err != nil {
		return storeError("delete idea", err)
	}
	s.log.Info("Idea deleted", logger.F("id", id))
	s.record(ctx, stats.IdeaDeleted, 1)
	return nil
}

// MigrateLegacyNotes moves text from the old single notes field into a note
// titled "Migrated Notes" and clears the field. It returns how many ideas moved.
func MigrateLegacyNotes(ctx context.Context, database *db.DB, log *logger.Logger) (int, error) {
	moved := 0
	err := database.WithTx(ctx, func(q *db.Queries) error {
		legacy, err := q.IdeasWithLegacyNotes(ctx)
		if err != nil {
			return err
		}
		for _, idea := range legacy {
			note := model.Note{
				ID:        uuid.New().String(),
				IdeaID:    idea.ID,
				Title:     model.MigratedNotesTitle,
				Text:      idea.LegacyNotes,
				Timestamp: time.Now().UTC(),
			}
			if err := q.CreateNote(ctx, note); err != nil {
				return err
			}
			if err := q.ClearLegacyNotes(ctx, idea.ID); err != nil {
				return err
			}
			moved++
		}
		return nil
	})
	if err != nil {
		return 0, storeError("migrate legacy notes", err)
	}
	if moved > 0 {
		log.Info("Migrated legacy notes", logger.F("ideas", moved))
	}
	return moved, nil
}
