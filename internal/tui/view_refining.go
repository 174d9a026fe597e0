package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderRefining() string {
	var b strings.Builder

	title := styleTitle.Render("Refining")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	asked := styleSubtitle.Render("> " + truncate(firstLine(a.state.original), 55))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, asked))
	b.WriteString("\n\n")

	answered := len(a.state.answered())
	line := fmt.Sprintf("%s Rewriting with %d answer(s) via %s",
		a.state.spinner.View(), answered, a.state.config.Provider)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
