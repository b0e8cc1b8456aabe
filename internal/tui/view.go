package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/ideaful/internal/status"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	list := m.renderList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, list)

	switch m.mode {
	case ModeAddIdea, ModeEditIdea, ModeAddTag, ModeRenameTag:
		mainContent = m.placeModal(m.renderModal())
	case ModeConfirmDelete:
		mainContent = m.placeModal(m.renderConfirm())
	case ModeHelp:
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) placeModal(modal string) string {
	return lipgloss.Place(
		m.width, m.height-2,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderSidebar() string {
	sidebarWidth := 22
	var s string

	now := time.Now().Format("15:04:05")
	s += lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Ideaful") + "\n"
	s += HelpStyle.Render(now) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render("─────────────────") + "\n\n"

	counts := map[Section]string{
		SectionIdeas:        fmt.Sprintf("%d", len(m.ideas)),
		SectionStatuses:     fmt.Sprintf("%d/%d", len(m.app.Statuses.ListEnabled()), len(m.statuses)),
		SectionTags:         fmt.Sprintf("%d", len(m.tags)),
		SectionAchievements: fmt.Sprintf("%d/%d", m.unlockedCount(), len(m.achievements)),
	}

	for i, sec := range sections {
		cursor := "  "
		style := SectionItemStyle
		if i == m.sectionCursor {
			cursor = "❯ "
			if m.pane == PaneSidebar {
				style = SectionItemSelectedStyle
			}
		}
		line := fmt.Sprintf("%s%-12s %s", cursor, sec.title, counts[sec.section])
		s += style.Render(line) + "\n"
	}

	s += "\n" + lipgloss.NewStyle().Foreground(Border).Render("─────────────────") + "\n"
	s += TrophyStyle.Render(fmt.Sprintf("🏆 %d unlocked", m.unlockedCount()))

	return SidebarStyle.Width(sidebarWidth).Height(m.height - 2).Render(s)
}

func (m Model) renderList() string {
	width := m.width - 24
	var header string
	var rows []string

	switch m.section() {
	case SectionIdeas:
		header = fmt.Sprintf("Ideas (%d)", len(m.ideas))
		if len(m.ideas) == 0 {
			rows = append(rows, HelpStyle.Render("  No ideas. Press 'a' to add one."))
		}
		for i, idea := range m.ideas {
			color := "#A5B1C2"
			if s, ok := status.Lookup(idea.Status); ok {
				color = s.Color
			}
			title := fmt.Sprintf(" %-*s ", max(width-30, 10), truncate(idea.Title, width-30))
			rows = append(rows, m.row(i, title)+Swatch(color)+" "+HelpStyle.Render(idea.Status))
		}

	case SectionStatuses:
		header = "Statuses"
		for i, s := range m.statuses {
			mark := DisabledStyle.Render("[ ]")
			if m.app.Statuses.IsEnabled(s.Name) {
				mark = EnabledStyle.Render("[x]")
			}
			note := ""
			switch {
			case !s.CanBeDisabled:
				note = HelpStyle.Render("required")
			case m.inUse[s.Name]:
				note = HelpStyle.Render("in use")
			}
			rows = append(rows, mark+m.row(i, fmt.Sprintf(" %s %-20s ", Swatch(s.Color), s.Name))+note)
		}

	case SectionTags:
		header = fmt.Sprintf("Tags (%d)", len(m.tags))
		if len(m.tags) == 0 {
			rows = append(rows, HelpStyle.Render("  No tags. Press 'a' to add one."))
		}
		black := m.app.Prefs.UseBlackForeground()
		for i, t := range m.tags {
			badge := Badge(t.Color.Hex(), truncate(t.Name, 24), black)
			rows = append(rows, m.row(i, " ")+badge+HelpStyle.Render(fmt.Sprintf("  %d ideas", m.tagCounts[t.ID])))
		}

	case SectionAchievements:
		header = fmt.Sprintf("Achievements (%d/%d)", m.unlockedCount(), len(m.achievements))
		for i, a := range m.achievements {
			text := fmt.Sprintf(" 🔒 %-24s %s", truncate(a.Title, 24), a.Description)
			if a.Unlocked {
				text = TrophyStyle.Render(fmt.Sprintf(" 🏆 %-24s", truncate(a.Title, 24))) + " " + a.Description
			}
			rows = append(rows, m.row(i, truncate(text, width+20)))
		}
	}

	s := lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(header) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(repeat("─", width-4)) + "\n\n"

	// keep the cursor visible
	visible := m.height - 8
	start := 0
	if visible > 0 && m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	for i := start; i < len(rows) && (visible <= 0 || i < start+visible); i++ {
		s += rows[i] + "\n"
	}

	return ListStyle.Width(width).Height(m.height - 2).Render(s)
}

// row renders the cursor column plus text for list row i
func (m Model) row(i int, text string) string {
	if i == m.cursor && m.pane == PaneList {
		return ItemSelectedStyle.Render("❯" + text)
	}
	return ItemStyle.Render(" " + text)
}

func (m Model) renderStatusBar() string {
	if m.message != "" {
		return StatusBarStyle.Width(m.width).Render(ToastStyle.Render(m.message))
	}

	var help string
	switch m.section() {
	case SectionIdeas:
		help = "a:add  e:edit  d:del"
	case SectionStatuses:
		help = "space:toggle"
	case SectionTags:
		help = "a:add  e:rename  d:del  b:text color"
	}
	help += "  tab:pane  ?:help  q:quit"
	return StatusBarStyle.Width(m.width).Render(strings.TrimSpace(help))
}

func (m Model) renderModal() string {
	title := "Add Idea"
	switch m.mode {
	case ModeEditIdea:
		title = "Edit Idea"
	case ModeAddTag:
		title = "New Tag"
	case ModeRenameTag:
		title = "Rename Tag"
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render("Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderConfirm() string {
	var what string
	if idea := m.currentIdea(); idea != nil {
		what = fmt.Sprintf("Delete idea %q with its tasks and notes?", idea.Title)
	} else if tag := m.currentTag(); tag != nil {
		what = fmt.Sprintf("Delete tag %q? It is used by %d ideas.", tag.Name, m.tagCounts[tag.ID])
	}
	content := lipgloss.NewStyle().Bold(true).Render(what) + "\n\n"
	content += HelpStyle.Render("y:delete  any other key:cancel")
	return DangerModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ───╮
│                          │
│  Navigation              │
│  ──────────              │
│  j/↓    Move down        │
│  k/↑    Move up          │
│  h/l    Switch pane      │
│  Tab    Switch pane      │
│  G      Go to bottom     │
│                          │
│  Actions                 │
│  ───────                 │
│  a       Add idea/tag    │
│  e       Edit / rename   │
│  d       Delete          │
│  space   Toggle status   │
│  b       Tag text color  │
│  r       Reload          │
│                          │
│  Other                   │
│  ─────                   │
│  ?       Toggle help     │
│  q       Quit            │
│                          │
╰──────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
