package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/ideaful/internal/ideas"
	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/status"
)

// tickMsg is sent every second for time updates
type tickMsg time.Time

// toastMsg carries a message published by a service
type toastMsg string

// Init initializes the model with a tick command
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForToast())
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForToast listens for the next toast
func (m Model) waitForToast() tea.Cmd {
	if m.toasts == nil {
		return nil
	}
	ch := m.toasts.C()
	return func() tea.Msg {
		return toastMsg(<-ch)
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.message != "" && time.Since(m.messageAt) >= toastTTL {
			m.message = ""
		}
		return m, tickCmd()

	case toastMsg:
		m.setMessage(string(msg))
		// a toast usually follows a change made elsewhere
		m.loadData()
		return m, m.waitForToast()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddIdea, ModeEditIdea, ModeAddTag, ModeRenameTag:
			return m.updateInput(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneSidebar {
			m.pane = PaneList
		} else {
			m.pane = PaneSidebar
		}

	case key.Matches(msg, keys.Left):
		m.pane = PaneSidebar

	case key.Matches(msg, keys.Right):
		m.pane = PaneList

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case msg.String() == "G":
		m.handleGoBottom()

	case key.Matches(msg, keys.Enter):
		if m.pane == PaneSidebar {
			m.pane = PaneList
		} else if m.section() == SectionStatuses {
			m.handleToggleStatus()
		}

	case key.Matches(msg, keys.Toggle):
		m.handleToggleStatus()

	case key.Matches(msg, keys.Add):
		return m.startAdd()

	case key.Matches(msg, keys.Edit):
		return m.startEdit()

	case key.Matches(msg, keys.Delete):
		m.startDelete()

	case msg.String() == "b":
		m.handleToggleBlackText()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Refresh):
		m.loadData()
		m.setMessage("Reloaded")
	}

	return m, nil
}

func (m *Model) handleUp() {
	if m.pane == PaneSidebar {
		if m.sectionCursor > 0 {
			m.sectionCursor--
			m.cursor = 0
		}
	} else if m.cursor > 0 {
		m.cursor--
	}
}

func (m *Model) handleDown() {
	if m.pane == PaneSidebar {
		if m.sectionCursor < len(sections)-1 {
			m.sectionCursor++
			m.cursor = 0
		}
	} else if m.cursor < m.listLen()-1 {
		m.cursor++
	}
}

func (m *Model) handleGoBottom() {
	if m.pane == PaneSidebar {
		m.sectionCursor = len(sections) - 1
		m.cursor = 0
	} else {
		m.cursor = max(m.listLen()-1, 0)
	}
}

func (m *Model) handleToggleStatus() {
	s := m.currentStatus()
	if s == nil || m.pane != PaneList {
		return
	}

	enable := !m.app.Statuses.IsEnabled(s.Name)
	result, err := m.app.Statuses.SetEnabled(context.Background(), s.Name, enable)
	if err != nil {
		m.setMessage(fmt.Sprintf("Error: %v", err))
		return
	}

	switch result {
	case status.Applied:
		if enable {
			m.setMessage("Enabled " + s.Name)
		} else {
			m.setMessage("Disabled " + s.Name)
		}
	case status.RejectedRequired:
		m.setMessage(s.Name + " is always enabled")
	case status.RejectedInUse:
		// the manager publishes its own toast
	}
	m.loadData()
}

func (m *Model) handleToggleBlackText() {
	next := !m.app.Prefs.UseBlackForeground()
	if err := m.app.Prefs.SetUseBlackForeground(next); err != nil {
		m.setMessage(fmt.Sprintf("Error saving preference: %v", err))
		return
	}
	if next {
		m.setMessage("Tag text: black")
	} else {
		m.setMessage("Tag text: white")
	}
}

func (m Model) startInput(mode Mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.pane = PaneList
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

func (m Model) startAdd() (tea.Model, tea.Cmd) {
	switch m.section() {
	case SectionIdeas:
		return m.startInput(ModeAddIdea, "", "Idea title...")
	case SectionTags:
		return m.startInput(ModeAddTag, "", "Tag name...")
	}
	return m, nil
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	if m.pane != PaneList {
		return m, nil
	}
	if idea := m.currentIdea(); idea != nil {
		return m.startInput(ModeEditIdea, idea.Title, "Idea title...")
	}
	if tag := m.currentTag(); tag != nil {
		return m.startInput(ModeRenameTag, tag.Name, "Tag name...")
	}
	return m, nil
}

func (m *Model) startDelete() {
	if m.pane != PaneList {
		return
	}
	if m.currentIdea() != nil || m.currentTag() != nil {
		m.mode = ModeConfirmDelete
	}
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	if !key.Matches(msg, keys.Yes) {
		m.setMessage("Cancelled")
		return m, nil
	}

	ctx := context.Background()
	if idea := m.currentIdea(); idea != nil {
		title := idea.Title
		if err := m.app.Ideas.Delete(ctx, idea.ID); err != nil {
			m.setMessage(fmt.Sprintf("Error deleting idea: %v", err))
		} else {
			m.setMessage("Deleted: " + title)
		}
	} else if tag := m.currentTag(); tag != nil {
		name := tag.Name
		if err := m.app.Tags.DeleteTag(ctx, tag.ID); err != nil {
			m.setMessage(fmt.Sprintf("Error deleting tag: %v", err))
		} else {
			m.setMessage("Deleted tag: " + name)
		}
	}
	m.loadData()
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			m.mode = ModeNormal
			return m, nil
		}

		ctx := context.Background()
		var err error
		switch m.mode {
		case ModeAddIdea:
			_, err = m.app.Ideas.Create(ctx, ideas.NewIdea{Title: value})
			if err == nil {
				m.setMessage("Added: " + value)
			}
		case ModeEditIdea:
			if idea := m.currentIdea(); idea != nil {
				_, err = m.app.Ideas.Update(ctx, idea.ID, ideas.IdeaUpdate{Title: value, ShortDesc: idea.ShortDesc})
				if err == nil {
					m.setMessage("Updated: " + value)
				}
			}
		case ModeAddTag:
			_, err = m.app.Tags.CreateTag(ctx, value, "")
			if err == nil {
				m.setMessage("Created tag: " + value)
			}
		case ModeRenameTag:
			if tag := m.currentTag(); tag != nil {
				_, err = m.app.Tags.RenameTag(ctx, tag.ID, value)
				if err == nil {
					m.setMessage("Renamed tag to " + value)
				}
			}
		}

		if err != nil {
			// keep the input open so the user can fix it
			logger.Debug("TUI input rejected", logger.F("error", err))
			m.setMessage(fmt.Sprintf("Error: %v", err))
			return m, nil
		}

		m.loadData()
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
