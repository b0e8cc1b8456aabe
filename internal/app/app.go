// Package app builds the object graph shared by the CLI, the TUI and the HTTP server.
package app

import (
	"context"
	"fmt"

	"github.com/existflow/ideaful/internal/config"
	"github.com/existflow/ideaful/internal/db"
	"github.com/existflow/ideaful/internal/ideas"
	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/model"
	"github.com/existflow/ideaful/internal/notify"
	"github.com/existflow/ideaful/internal/prefs"
	"github.com/existflow/ideaful/internal/stats"
	"github.com/existflow/ideaful/internal/status"
	"github.com/existflow/ideaful/internal/tags"
)

// App holds every service over one store
type App struct {
	DB        *db.DB
	Prefs     *prefs.Store
	Statuses  *status.Manager
	Tags      *tags.Manager
	Evaluator *stats.Evaluator
	Ideas     *ideas.Service

	log *logger.Logger
}

// Open connects to the store and runs startup: seed achievements, migrate
// legacy notes, repair invalid statuses, load the enabled set, then evaluate.
// notifier receives toasts and may be nil.
func Open(ctx context.Context, cfg *config.Config, notifier notify.Notifier, log *logger.Logger) (*App, error) {
	if notifier == nil {
		notifier = notify.Discard
	}

	database, err := db.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store, err := prefs.Open(cfg.PrefsDir)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	a := &App{DB: database, Prefs: store, log: log}
	if err := a.start(ctx, notifier); err != nil {
		database.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) start(ctx context.Context, notifier notify.Notifier) error {
	a.Evaluator = stats.NewEvaluator(a.DB, a.log)
	if err := a.Evaluator.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to seed achievements: %w", err)
	}

	if _, err := ideas.MigrateLegacyNotes(ctx, a.DB, a.log); err != nil {
		return fmt.Errorf("failed to migrate notes: %w", err)
	}

	// Repair failures leave bad rows in place; the app still starts.
	if _, err := status.Repair(ctx, a.DB, a.log); err != nil {
		a.log.Warn("Continuing with unrepaired statuses", logger.F("error", err))
	}

	statuses, err := status.NewManager(ctx, a.DB, a.Prefs, notifier, a.log)
	if err != nil {
		return fmt.Errorf("failed to load statuses: %w", err)
	}
	a.Statuses = statuses
	a.Tags = tags.NewManager(a.DB, a.log)
	a.Ideas = ideas.NewService(a.DB, statuses, a.Evaluator, a.log)

	a.Evaluator.OnUnlock(func(ach model.Achievement) {
		notifier.Notify(fmt.Sprintf("Achievement unlocked: %s", ach.Title))
	})
	if _, err := a.Evaluator.Evaluate(ctx); err != nil {
		a.log.Warn("Startup achievement evaluation failed", logger.F("error", err))
	}
	return nil
}

// Close releases the store
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
