package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#15202b")).
			Background(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)

	detailHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7aa2f7")).
				Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#565f89"}).
			Width(16)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#7aa2f7", Dark: "#3a6af2"}).
				Render

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#56FF4E")).
			Render
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)
