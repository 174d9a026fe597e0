package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder
	res := a.state.result

	title := styleTitle.Render("Sharpened prompt")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	score := fmt.Sprintf("Score %.0f%% → %.0f%%", res.Before.Score()*100, res.After.Score()*100)
	scoreStyle := styleSubtitle
	if res.After.Score() > res.Before.Score() {
		scoreStyle = styleSatisfied
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, scoreStyle.Render(score)))
	b.WriteString("\n\n")

	resultBox := styleBox.Copy().
		BorderForeground(colorPrimary).
		Render(a.state.resultView.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultBox))
	b.WriteString("\n\n")

	if a.state.notice != "" {
		notice := lipgloss.NewStyle().Foreground(colorSecondary).Render(a.state.notice)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, notice))
		b.WriteString("\n")
	}

	status := styleStatusBar.Render("[c] Copy  [e] Edit  [d] Diagnose again  [Up/Down] Scroll  [Esc] New prompt")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// resultContent is the scrollable body of the result view
func (a *App) resultContent() string {
	res := a.state.result
	width := a.state.resultView.Width - 2

	var b strings.Builder
	for _, para := range strings.Split(res.Prompt, "\n") {
		b.WriteString(wrapText(para, width))
		b.WriteString("\n")
	}

	if len(res.Changes) > 0 {
		b.WriteString("\n")
		b.WriteString(styleSubtitle.Render("Changes"))
		b.WriteString("\n")
		for _, c := range res.Changes {
			b.WriteString(wrapText("- "+c, width))
			b.WriteString("\n")
		}
	}

	if len(res.Questions) > 0 {
		b.WriteString("\n")
		b.WriteString(styleSubtitle.Render("Still unclear"))
		b.WriteString("\n")
		for _, q := range res.Questions {
			b.WriteString(styleMissing.Render(wrapText("? "+q.Text, width)))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
