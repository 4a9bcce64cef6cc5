package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	sections := []string{
		renderHeader(data),
		renderConfigHierarchy(data),
		renderClassifier(data),
		renderCompletion(data),
		renderMenu(data),
	}
	if len(data.Commands) > 0 {
		sections = append(sections, renderCommands(data))
	}
	return strings.Join(sections, "\n\n")
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📂 Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	return b.String()
}

func renderConfigHierarchy(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration hierarchy:") + "\n")
	b.WriteString("   " + keyStyle.Render("Log level: ") + valueStyle.Render(data.LogLevel) + "\n")
	if data.GlobalConfigDir != "" {
		b.WriteString("   " + keyStyle.Render("Global dir: ") + subtleStyle.Render(data.GlobalConfigDir) + "\n")
	}

	if len(data.ConfigFiles) == 0 {
		b.WriteString("   " + subtleStyle.Render("No configuration files found, using defaults"))
		return b.String()
	}

	b.WriteString("   " + subtleStyle.Render("0. built-in defaults") + "\n")
	for i, path := range data.ConfigFiles {
		b.WriteString(fmt.Sprintf("   %d. %s %s\n", i+1, valueStyle.Render(path), successStyle.Render("✓")))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderClassifier(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🧭 Classifier rules:") + "\n")

	for i, r := range data.Rules {
		note := warningStyle.Render("needs oracle")
		if r.Definitive {
			note = successStyle.Render("definitive")
		}
		b.WriteString(fmt.Sprintf("   %2d. %s %s\n", i+1, valueStyle.Render(r.Name), note))
	}
	if len(data.ExtraWords) > 0 {
		b.WriteString("   " + keyStyle.Render("Extra words: ") + subtleStyle.Render(strings.Join(data.ExtraWords, ", ")) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderCompletion(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⚡ Completion:") + "\n")
	b.WriteString("   " + keyStyle.Render("Completers: ") + valueStyle.Render(strings.Join(data.Completers, ", ")) + "\n")
	b.WriteString("   " + keyStyle.Render("Max results: ") + valueStyle.Render(fmt.Sprintf("%d", data.MaxResults)) + "\n")
	b.WriteString("   " + keyStyle.Render("Timeout: ") + valueStyle.Render(data.CompletionTimeout.String()) + "\n")
	b.WriteString("   " + keyStyle.Render("Lookup timeout: ") + valueStyle.Render(data.LookupTimeout.String()) + "\n")
	b.WriteString("   " + keyStyle.Render("Cached lookups: ") + subtleStyle.Render(fmt.Sprintf("%d", data.CachedWords)))
	return b.String()
}

func renderMenu(data *Data) string {
	width := "terminal"
	if data.MenuWidth > 0 {
		width = fmt.Sprintf("%d columns", data.MenuWidth)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("📋 Menu:") + "\n")
	b.WriteString("   " + keyStyle.Render("Visible items: ") + valueStyle.Render(fmt.Sprintf("%d", data.MaxVisible)) + "\n")
	b.WriteString("   " + keyStyle.Render("Width: ") + valueStyle.Render(width) + "\n")
	b.WriteString("   " + keyStyle.Render("Hide cursor: ") + valueStyle.Render(fmt.Sprintf("%t", data.HideCursor)))
	return b.String()
}

func renderCommands(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔗 Slash commands:") + "\n")

	for _, c := range data.Commands {
		line := "   " + valueStyle.Render("/"+c.Name)
		if len(c.Aliases) > 0 {
			line += subtleStyle.Render(" (/" + strings.Join(c.Aliases, ", /") + ")")
		}
		if c.Description != "" {
			line += " " + keyStyle.Render(c.Description)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
