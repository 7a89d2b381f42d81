package cli

import "github.com/charmbracelet/lipgloss"

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00A86B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

func Primary(text string) string { return primaryStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Silent(text string) string  { return silentStyle.Render(text) }
