package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#e94560")
	muted  = lipgloss.Color("#7a7a90")
	text   = lipgloss.Color("#e0e0f0")
)

// Styles are the lipgloss styles of the chat screens.
type Styles struct {
	App       lipgloss.Style
	Header    lipgloss.Style
	Subtitle  lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Desc      lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Error     lipgloss.Style
	Footer    lipgloss.Style
}

// DefaultStyles returns the gallery palette.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Item: lipgloss.NewStyle().
			Foreground(text).
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(accent),
		Desc: lipgloss.NewStyle().
			Foreground(muted).
			PaddingLeft(4),
		User: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8fb8ff")).
			Bold(true),
		Assistant: lipgloss.NewStyle().
			Foreground(text),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5f5f")),
		Footer: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),
	}
}
