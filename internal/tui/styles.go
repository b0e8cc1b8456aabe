package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Enabled  = lipgloss.Color("#95E1A3") // Green
	Disabled = lipgloss.Color("#6C757D") // Gray
	Locked   = lipgloss.Color("#6C757D")
	Trophy   = lipgloss.Color("#FFE66D") // Yellow
	Danger   = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary    = lipgloss.Color("#4ECDC4")
	Secondary  = lipgloss.Color("#6C757D")
	Background = lipgloss.Color("#1a1a2e")
	Surface    = lipgloss.Color("#16213e")
	Text       = lipgloss.Color("#FFFFFF")
	TextMuted  = lipgloss.Color("#888888")
	Border     = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().
			Width(20).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	ListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	SectionItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	SectionItemSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(Surface).
					Bold(true)

	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	ItemMutedStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	EnabledStyle  = lipgloss.NewStyle().Foreground(Enabled).Bold(true)
	DisabledStyle = lipgloss.NewStyle().Foreground(Disabled)
	TrophyStyle   = lipgloss.NewStyle().Foreground(Trophy).Bold(true)
	LockedStyle   = lipgloss.NewStyle().Foreground(Locked)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ToastStyle = lipgloss.NewStyle().
			Foreground(Trophy).
			Bold(true)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	DangerModalStyle = ModalStyle.
				BorderForeground(Danger)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// Swatch renders a colored dot for a #RRGGBB value
func Swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}

// Badge renders text on a colored background. Tags honor the black
// foreground preference for light colors.
func Badge(hex, text string, blackText bool) string {
	fg := Text
	if blackText {
		fg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(fg).
		Padding(0, 1).
		Render(text)
}
