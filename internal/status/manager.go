package status

import (
	"context"
	"fmt"
	"sync"

	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/model"
	"github.com/existflow/ideaful/internal/notify"
)

// IdeaStore is the slice of the entity store the manager reads
type IdeaStore interface {
	CountIdeasWithStatus(ctx context.Context, status string) (int64, error)
	StatusesInUse(ctx context.Context) ([]string, error)
	ReassignInvalidStatuses(ctx context.Context, valid []string, fallback string) (int64, error)
}

// Preferences persists the enabled-status names
type Preferences interface {
	EnabledStatuses() ([]string, bool, error)
	SetEnabledStatuses(names []string) error
}

// ToggleResult describes what SetEnabled did
type ToggleResult int

const (
	Applied ToggleResult = iota
	RejectedRequired
	RejectedInUse
)

func (r ToggleResult) String() string {
	switch r {
	case Applied:
		return "applied"
	case RejectedRequired:
		return "rejected_required"
	case RejectedInUse:
		return "rejected_in_use"
	default:
		return "unknown"
	}
}

// Manager tracks which statuses are offered to the user
type Manager struct {
	mu       sync.Mutex
	enabled  map[string]bool
	ideas    IdeaStore
	prefs    Preferences
	notifier notify.Notifier
	log      *logger.Logger
}

// NewManager loads the enabled set and force-enables every status that is
// currently held by an idea.
func NewManager(ctx context.Context, ideas IdeaStore, prefs Preferences, notifier notify.Notifier, log *logger.Logger) (*Manager, error) {
	if notifier == nil {
		notifier = notify.Discard
	}
	m := &Manager{
		enabled:  make(map[string]bool),
		ideas:    ideas,
		prefs:    prefs,
		notifier: notifier,
		log:      log.WithFields(logger.F("component", "status")),
	}

	names, ok, err := prefs.EnabledStatuses()
	if err != nil {
		m.log.Warn("Failed to load enabled statuses, using defaults", logger.F("error", err))
		ok = false
	}
	if !ok {
		names = DefaultEnabled()
	}
	for _, name := range names {
		if IsValid(name) {
			m.enabled[name] = true
		}
	}
	m.enabled[model.StatusUnassigned] = true

	changed := !ok
	inUse, err := ideas.StatusesInUse(ctx)
	if err != nil {
		m.log.Warn("Failed to list statuses in use", logger.F("error", err))
	}
	for _, name := range inUse {
		if IsValid(name) && !m.enabled[name] {
			m.enabled[name] = true
			changed = true
			m.log.Info("Enabled status held by existing ideas", logger.F("status", name))
		}
	}

	if changed {
		if err := prefs.SetEnabledStatuses(m.enabledNames()); err != nil {
			return nil, model.NewPersistenceError("save enabled statuses", err)
		}
	}

	return m, nil
}

// enabledNames returns the enabled set in catalog order. Caller holds mu or owns m.
func (m *Manager) enabledNames() []string {
	names := []string{}
	for _, s := range catalog {
		if m.enabled[s.Name] {
			names = append(names, s.Name)
		}
	}
	return names
}

// ListAll returns the full catalog in display order
func (m *Manager) ListAll() []Status {
	return Catalog()
}

// ListEnabled returns the enabled statuses in display order
func (m *Manager) ListEnabled() []Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Status
	for _, s := range catalog {
		if m.enabled[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

// IsEnabled reports whether name is currently offered
func (m *Manager) IsEnabled(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled[name]
}

// IsInUse reports whether at least one idea holds name.
// A failed query reports false: an unreadable store must not stop the user
// from disabling a status.
func (m *Manager) IsInUse(ctx context.Context, name string) bool {
	n, err := m.ideas.CountIdeasWithStatus(ctx, name)
	if err != nil {
		m.log.Warn("Status usage check failed, treating as unused",
			logger.F("status", name), logger.F("error", err))
		return false
	}
	return n > 0
}

// CanDisable reports whether a disable request for name would be applied
func (m *Manager) CanDisable(ctx context.Context, name string) bool {
	s, ok := Lookup(name)
	if !ok || !s.CanBeDisabled {
		return false
	}
	return !m.IsInUse(ctx, name)
}

// SetEnabled enables or disables a status and persists the enabled set.
// Disabling a required or in-use status is rejected without error; an in-use
// rejection also sends a notification.
func (m *Manager) SetEnabled(ctx context.Context, name string, enabled bool) (ToggleResult, error) {
	s, ok := Lookup(name)
	if !ok {
		return RejectedRequired, model.NewValidationError("status", fmt.Sprintf("unknown status %q", name))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !enabled {
		if !s.CanBeDisabled {
			m.log.Debug("Refused to disable required status", logger.F("status", name))
			return RejectedRequired, nil
		}
		if m.IsInUse(ctx, name) {
			m.notifier.Notify(fmt.Sprintf("Cannot disable '%s' status as it's currently in use.", name))
			m.log.Info("Refused to disable status in use", logger.F("status", name))
			return RejectedInUse, nil
		}
	}

	was := m.enabled[name]
	if was == enabled {
		return Applied, nil
	}
	m.set(name, enabled)

	if err := m.prefs.SetEnabledStatuses(m.enabledNames()); err != nil {
		m.set(name, was)
		m.log.Error("Failed to save enabled statuses", logger.F("status", name), logger.F("error", err))
		return Applied, model.NewPersistenceError("save enabled statuses", err)
	}

	m.log.Info("Status toggled", logger.F("status", name), logger.F("enabled", enabled))
	return Applied, nil
}

func (m *Manager) set(name string, enabled bool) {
	if enabled {
		m.enabled[name] = true
	} else {
		delete(m.enabled, name)
	}
}

// RepairInvalidStatuses moves every idea whose status is outside the catalog
// to Unassigned and returns how many were changed.
func (m *Manager) RepairInvalidStatuses(ctx context.Context) (int64, error) {
	return Repair(ctx, m.ideas, m.log)
}

// Repair is RepairInvalidStatuses without a manager. Startup runs it before
// the enabled set is loaded.
func Repair(ctx context.Context, ideas IdeaStore, log *logger.Logger) (int64, error) {
	n, err := ideas.ReassignInvalidStatuses(ctx, Names(), model.StatusUnassigned)
	if err != nil {
		log.Error("Status repair failed", logger.F("error", err))
		return 0, model.NewPersistenceError("repair invalid statuses", err)
	}
	if n > 0 {
		log.Info("Repaired invalid statuses", logger.F("ideas", n))
	}
	return n, nil
}
