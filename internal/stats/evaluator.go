// Package stats keeps lifetime usage counters and awards achievements from them.
package stats

import (
	"context"
	"fmt"
	"sync"

	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/model"
)

// EventKind is a user action that moves a counter
type EventKind string

const (
	IdeaCreated     EventKind = "ideaCreated"
	IdeaDeleted     EventKind = "ideaDeleted"
	IdeaCompleted   EventKind = "ideaCompleted"
	IdeaCancelled   EventKind = "ideaCancelled"
	TaskCreated     EventKind = "taskCreated"
	TaskCompleted   EventKind = "taskCompleted"
	TaskUncompleted EventKind = "taskUncompleted"
	TaskDeleted     EventKind = "taskDeleted"
	NoteCreated     EventKind = "noteCreated"
	NoteDeleted     EventKind = "noteDeleted"
)

var eventCounters = map[EventKind]model.Counter{
	IdeaCreated:     model.CounterIdeasCreated,
	IdeaDeleted:     model.CounterIdeasDeleted,
	IdeaCompleted:   model.CounterIdeasCompleted,
	IdeaCancelled:   model.CounterIdeasCancelled,
	TaskCreated:     model.CounterTasksCreated,
	TaskCompleted:   model.CounterTasksCompleted,
	TaskUncompleted: model.CounterTasksUncompleted,
	TaskDeleted:     model.CounterTasksDeleted,
	NoteCreated:     model.CounterNotesCreated,
	NoteDeleted:     model.CounterNotesDeleted,
}

// Counter returns the stats counter an event moves
func (k EventKind) Counter() (model.Counter, bool) {
	c, ok := eventCounters[k]
	return c, ok
}

// Store is the slice of the entity store the evaluator needs
type Store interface {
	GetStats(ctx context.Context) (model.Stats, error)
	IncrementStat(ctx context.Context, counter model.Counter, delta int64) error
	UpsertAchievement(ctx context.Context, a model.Achievement) error
	ListAchievements(ctx context.Context) ([]model.Achievement, error)
	UnlockAchievement(ctx context.Context, id string) (bool, error)
	CountIdeasWithStatus(ctx context.Context, status string) (int64, error)
}

// Evaluator records events and unlocks achievements
type Evaluator struct {
	mu       sync.Mutex
	store    Store
	log      *logger.Logger
	onUnlock []func(model.Achievement)
}

// NewEvaluator creates an evaluator over store
func NewEvaluator(store Store, log *logger.Logger) *Evaluator {
	return &Evaluator{
		store: store,
		log:   log.WithFields(logger.F("component", "stats")),
	}
}

// OnUnlock registers fn to run for every newly unlocked achievement
func (e *Evaluator) OnUnlock(fn func(model.Achievement)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onUnlock = append(e.onUnlock, fn)
}

// Bootstrap seeds the achievement catalog. Existing unlocks are kept.
func (e *Evaluator) Bootstrap(ctx context.Context) error {
	for _, a := range Catalog {
		if err := e.store.UpsertAchievement(ctx, a); err != nil {
			e.log.Error("Failed to seed achievement", logger.F("id", a.ID), logger.F("error", err))
			return model.NewPersistenceError("seed achievements", err)
		}
	}
	e.log.Debug("Achievement catalog seeded", logger.F("count", len(Catalog)))
	return nil
}

// RecordEvent adds delta to the event's counter and persists it immediately.
// A zero delta counts as 1 and a negative delta is rejected.
func (e *Evaluator) RecordEvent(ctx context.Context, kind EventKind, delta int64) error {
	counter, ok := kind.Counter()
	if !ok {
		return model.NewValidationError("event", fmt.Sprintf("unknown event kind %q", kind))
	}
	switch {
	case delta < 0:
		return model.NewValidationError("delta", fmt.Sprintf("must not be negative, got %d", delta))
	case delta == 0:
		delta = 1
	}

	if err := e.store.IncrementStat(ctx, counter, delta); err != nil {
		e.log.Error("Failed to record event",
			logger.F("event", kind), logger.F("delta", delta), logger.F("error", err))
		return model.NewPersistenceError("record "+string(kind), err)
	}

	e.log.Debug("Event recorded", logger.F("event", kind), logger.F("delta", delta))
	return nil
}

// Snapshot returns the current counters
func (e *Evaluator) Snapshot(ctx context.Context) (model.Stats, error) {
	s, err := e.store.GetStats(ctx)
	if err != nil {
		return model.Stats{}, model.NewPersistenceError("read stats", err)
	}
	return s, nil
}

// Achievements lists every achievement with its unlock state
func (e *Evaluator) Achievements(ctx context.Context) ([]model.Achievement, error) {
	list, err := e.store.ListAchievements(ctx)
	if err != nil {
		return nil, model.NewPersistenceError("list achievements", err)
	}
	return list, nil
}

// Evaluate unlocks every achievement whose rule is satisfied and returns the
// ones unlocked by this call. Already unlocked achievements are never returned
// again, so repeated calls with unchanged stats return nothing.
func (e *Evaluator) Evaluate(ctx context.Context) ([]model.Achievement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.store.GetStats(ctx)
	if err != nil {
		e.log.Error("Failed to read stats", logger.F("error", err))
		return nil, model.NewPersistenceError("read stats", err)
	}

	var candidates []string
	for _, r := range ThresholdRules {
		if s.Get(r.Counter) >= r.Threshold {
			candidates = append(candidates, r.Achievement)
		}
	}
	for _, r := range StatusRules {
		n, err := e.store.CountIdeasWithStatus(ctx, r.Status)
		if err != nil {
			e.log.Warn("Failed to count ideas for status rule",
				logger.F("status", r.Status), logger.F("error", err))
			continue
		}
		if n > 0 {
			candidates = append(candidates, r.Achievement)
		}
	}

	var unlocked []model.Achievement
	for _, id := range candidates {
		ok, err := e.store.UnlockAchievement(ctx, id)
		if err != nil {
			e.log.Error("Failed to unlock achievement", logger.F("id", id), logger.F("error", err))
			return unlocked, model.NewPersistenceError("unlock achievement", err)
		}
		if !ok {
			continue
		}
		a := catalogIndex[id]
		a.Unlocked = true
		unlocked = append(unlocked, a)
		e.log.Info("Achievement unlocked", logger.F("id", id), logger.F("title", a.Title))
		for _, fn := range e.onUnlock {
			fn(a)
		}
	}

	return unlocked, nil
}
