package ideas

import (
	"context"
	"strings"

	"github.com/existflow/ideaful/internal/db"
	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/model"
	"github.com/existflow/ideaful/internal/stats"
	"github.com/google/uuid"
)

// AddTask creates a task on an idea
func (s *Service) AddTask(ctx context.Context, ideaID string, in NewTask) (model.Task, error) {
	if err := s.validate.Struct(in); err != nil {
		return model.Task{}, err
	}

	task := model.NewTask(uuid.New().String(), ideaID, strings.TrimSpace(in.Title))
	task.Description = strings.TrimSpace(in.Description)
	task.Priority = in.Priority
	task.DueDate = in.DueDate
	task.Reminder = in.Reminder
	task.CreatedAt = s.now()

	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		if _, err := q.GetIdea(ctx, ideaID); err != nil {
			return err
		}
		if err := q.CreateTask(ctx, task); err != nil {
			return err
		}
		if err := q.IncrementIdeaCounter(ctx, ideaID, db.IdeaTasksCreated, 1); err != nil {
			return err
		}
		return q.TouchIdea(ctx, ideaID, task.CreatedAt)
	})
	if err != nil {
		return model.Task{}, storeError("add task", err)
	}

	s.log.Info("Task added", logger.F("idea", ideaID), logger.F("task", task.ID))
	s.record(ctx, stats.TaskCreated, 1)
	return task, nil
}

// ListTasks returns an idea's tasks, open ones first
func (s *Service) ListTasks(ctx context.Context, ideaID string) ([]model.Task, error) {
	if _, err := s.db.GetIdea(ctx, ideaID); err != nil {
		return nil, storeError("get idea", err)
	}
	tasks, err := s.db.ListTasks(ctx, ideaID)
	return tasks, storeError("list tasks", err)
}

// SetTaskCompleted checks or unchecks a task. Only an actual change is counted.
func (s *Service) SetTaskCompleted(ctx context.Context, taskID string, completed bool) (model.Task, error) {
	var (
		task    model.Task
		changed bool
	)
	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		var err error
		task, err = q.GetTask(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Completed == completed {
			return nil
		}
		changed = true
		task.Completed = completed
		if err := q.SetTaskCompleted(ctx, taskID, completed); err != nil {
			return err
		}
		if completed {
			if err := q.IncrementIdeaCounter(ctx, task.IdeaID, db.IdeaTasksCompleted, 1); err != nil {
				return err
			}
		}
		return q.TouchIdea(ctx, task.IdeaID, s.now())
	})
	if err != nil {
		return model.Task{}, storeError("update task", err)
	}
	if !changed {
		return task, nil
	}

	kind := stats.TaskUncompleted
	if completed {
		kind = stats.TaskCompleted
	}
	s.record(ctx, kind, 1)
	return task, nil
}

// DeleteTasks removes tasks and counts them as one event of size len(taskIDs)
func (s *Service) DeleteTasks(ctx context.Context, taskIDs ...string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		now := s.now()
		for _, id := range taskIDs {
			task, err := q.GetTask(ctx, id)
			if err != nil {
				return err
			}
			if err := q.DeleteTask(ctx, id); err != nil {
				return err
			}
			if err := q.IncrementIdeaCounter(ctx, task.IdeaID, db.IdeaTasksDeleted, 1); err != nil {
				return err
			}
			if err := q.TouchIdea(ctx, task.IdeaID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storeError("delete tasks", err)
	}

	s.log.Info("Tasks deleted", logger.F("count", len(taskIDs)))
	s.record(ctx, stats.TaskDeleted, int64(len(taskIDs)))
	return nil
}

// AddNote attaches a note to an idea
func (s *Service) AddNote(ctx context.Context, ideaID string, in NewNote) (model.Note, error) {
	if err := s.validate.Struct(in); err != nil {
		return model.Note{}, err
	}
	note := model.Note{
		ID:        uuid.New().String(),
		IdeaID:    ideaID,
		Title:     strings.TrimSpace(in.Title),
		Text:      in.Text,
		Timestamp: s.now(),
	}

	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		if _, err := q.GetIdea(ctx, ideaID); err != nil {
			return err
		}
		if err := q.CreateNote(ctx, note); err != nil {
			return err
		}
		if err := q.IncrementIdeaCounter(ctx, ideaID, db.IdeaNotesCreated, 1); err != nil {
			return err
		}
		return q.TouchIdea(ctx, ideaID, note.Timestamp)
	})
	if err != nil {
		return model.Note{}, storeError("add note", err)
	}

	s.record(ctx, stats.NoteCreated, 1)
	return note, nil
}

// ListNotes returns an idea's notes, newest first
func (s *Service) ListNotes(ctx context.Context, ideaID string) ([]model.Note, error) {
	if _, err := s.db.GetIdea(ctx, ideaID); err != nil {
		return nil, storeError("get idea", err)
	}
	notes, err := s.db.ListNotes(ctx, ideaID)
	return notes, storeError("list notes", err)
}

// DeleteNote removes a note
func (s *Service) DeleteNote(ctx context.Context, noteID string) error {
	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		note, err := q.GetNote(ctx, noteID)
		if err != nil {
			return err
		}
		if err := q.DeleteNote(ctx, noteID); err != nil {
			return err
		}
		return q.IncrementIdeaCounter(ctx, note.IdeaID, db.IdeaNotesDeleted, 1)
	})
	if err != nil {
		return storeError("delete note", err)
	}

	s.record(ctx, stats.NoteDeleted, 1)
	return nil
}
