package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/sharpen/internal/rubric"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	title := styleTitle.Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var criteria []string
	for _, c := range rubric.All() {
		criteria = append(criteria, "  "+c.Label())
	}
	criteriaTitle := styleSubtitle.Render("A prompt is checked for")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, criteriaTitle))
	b.WriteString("\n\n")

	criteriaBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(criteria, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, criteriaBox))
	b.WriteString("\n\n")

	shortcuts := []string{
		"  Ctrl+D         Diagnose the prompt",
		"  Enter          Answer questions / next",
		"  Tab            Skip a question",
		"  r              Refine without answering",
		"  c              Copy the refined prompt",
		"  Ctrl+O         Settings",
		"  t              Next style (in settings)",
		"  Esc            Go back / Quit",
	}

	shortcutsTitle := styleSubtitle.Render("Keyboard Shortcuts")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsTitle))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
