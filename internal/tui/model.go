package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/ideaful/internal/app"
	"github.com/existflow/ideaful/internal/ideas"
	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/model"
	"github.com/existflow/ideaful/internal/notify"
	"github.com/existflow/ideaful/internal/status"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneList
)

// Section is an entry in the sidebar
type Section int

const (
	SectionIdeas Section = iota
	SectionStatuses
	SectionTags
	SectionAchievements
)

var sections = []struct {
	section Section
	title   string
}{
	{SectionIdeas, "Ideas"},
	{SectionStatuses, "Statuses"},
	{SectionTags, "Tags"},
	{SectionAchievements, "Achievements"},
}

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddIdea
	ModeEditIdea
	ModeAddTag
	ModeRenameTag
	ModeConfirmDelete
	ModeHelp
)

// toastTTL is how long a toast stays in the status bar
const toastTTL = 4 * time.Second

// Model is the main TUI model
type Model struct {
	app    *app.App
	toasts *notify.Queue

	ideas        []model.Idea
	statuses     []status.Status
	inUse        map[string]bool
	tags         []model.Tag
	tagCounts    map[string]int64
	achievements []model.Achievement

	// UI state
	width         int
	height        int
	pane          Pane
	mode          Mode
	sectionCursor int
	cursor        int

	// Input
	input textinput.Model

	message   string
	messageAt time.Time
}

// NewModel creates a new TUI model. toasts may be nil.
func NewModel(a *app.App, toasts *notify.Queue) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.CharLimit = model.MaxTitleLength
	ti.Width = 50

	m := Model{
		app:    a,
		toasts: toasts,
		pane:   PaneSidebar,
		mode:   ModeNormal,
		input:  ti,
	}

	m.loadData()
	logger.Debug("TUI model initialized",
		logger.F("ideas", len(m.ideas)),
		logger.F("tags", len(m.tags)))
	return m
}

func (m *Model) section() Section {
	return sections[m.sectionCursor].section
}

func (m *Model) loadData() {
	ctx := context.Background()

	var err error
	if m.ideas, err = m.app.Ideas.List(ctx, ideas.Filter{}); err != nil {
		m.setMessage("Error loading ideas: " + err.Error())
	}

	m.statuses = m.app.Statuses.ListAll()
	m.inUse = make(map[string]bool)
	if names, err := m.app.DB.StatusesInUse(ctx); err == nil {
		for _, n := range names {
			m.inUse[n] = true
		}
	}

	if m.tags, err = m.app.Tags.ListTags(ctx); err != nil {
		m.setMessage("Error loading tags: " + err.Error())
	}
	m.tagCounts = make(map[string]int64, len(m.tags))
	for _, t := range m.tags {
		m.tagCounts[t.ID], _ = m.app.Tags.CountIdeas(ctx, t.ID)
	}

	m.achievements, _ = m.app.Evaluator.Achievements(ctx)

	if n := m.listLen(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// listLen is the number of rows in the main pane for the current section
func (m *Model) listLen() int {
	switch m.section() {
	case SectionIdeas:
		return len(m.ideas)
	case SectionStatuses:
		return len(m.statuses)
	case SectionTags:
		return len(m.tags)
	case SectionAchievements:
		return len(m.achievements)
	}
	return 0
}

func (m *Model) currentIdea() *model.Idea {
	if m.section() == SectionIdeas && m.cursor < len(m.ideas) {
		return &m.ideas[m.cursor]
	}
	return nil
}

func (m *Model) currentStatus() *status.Status {
	if m.section() == SectionStatuses && m.cursor < len(m.statuses) {
		return &m.statuses[m.cursor]
	}
	return nil
}

func (m *Model) currentTag() *model.Tag {
	if m.section() == SectionTags && m.cursor < len(m.tags) {
		return &m.tags[m.cursor]
	}
	return nil
}

func (m *Model) unlockedCount() int {
	n := 0
	for _, a := range m.achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.messageAt = time.Now()
}
