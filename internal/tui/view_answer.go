package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderAnswer() string {
	var b strings.Builder
	width := min(70, a.width-4)
	i := a.state.questionIndex
	q := a.state.questions[i]

	progress := styleSubtitle.Render(fmt.Sprintf("Question %d of %d  ·  %s", i+1, len(a.state.questions), q.Criterion.Label()))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, progress))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render(wrapText(q.Text, width))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, question))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(width).
		BorderForeground(colorSecondary).
		Render(a.state.answerInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Enter] Next  [Tab] Skip  [Shift+Tab] Previous  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
