package planner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	levelStyles = map[Level]lipgloss.Style{
		LevelCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		LevelHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		LevelMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		LevelLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// Render formats prioritized tasks as an aligned table
func Render(tasks []Task) string {
	if len(tasks) == 0 {
		return "No tasks.\n"
	}

	nameWidth := len("Task")
	for _, t := range tasks {
		if n := lipgloss.Width(t.Name); n > nameWidth {
			nameWidth = n
		}
	}
	nameCol := lipgloss.NewStyle().Width(nameWidth + 2)
	numCol := lipgloss.NewStyle().Width(10)

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		nameCol.Render(headerStyle.Render("Task")),
		numCol.Render(headerStyle.Render("Impact")),
		numCol.Render(headerStyle.Render("Effort")),
		numCol.Render(headerStyle.Render("Priority")),
		headerStyle.Render("Level"),
	))
	b.WriteString("\n")

	for _, t := range tasks {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			nameCol.Render(t.Name),
			numCol.Render(fmt.Sprint(t.Impact)),
			numCol.Render(fmt.Sprint(t.Effort)),
			numCol.Render(fmt.Sprint(t.Priority)),
			levelStyles[t.Level].Render(string(t.Level)),
		))
		b.WriteString("\n")
	}
	return b.String()
}
