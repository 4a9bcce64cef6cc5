package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/NikitaCOEUR/promptline/internal/mode"
)

var (
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	modeStyles = map[mode.Mode]lipgloss.Style{
		mode.Shell:           lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		mode.NaturalLanguage: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		mode.Slash:           lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		mode.Ambiguous:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		mode.Invalid:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
)

func renderMode(m mode.Mode) string {
	return modeStyles[m].Render(m.String())
}
