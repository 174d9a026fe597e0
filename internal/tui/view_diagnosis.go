package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/sharpen/internal/diagnose"
)

func (a *App) renderDiagnosis() string {
	var b strings.Builder
	d := a.state.diagnosis
	width := min(70, a.width-4)

	title := styleTitle.Render("Diagnosis")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	asked := styleSubtitle.Render("> " + truncate(firstLine(a.state.original), width-4))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, asked))
	b.WriteString("\n\n")

	checklist := styleBox.Copy().
		Width(width).
		Render(strings.Join(checklistLines(d), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, checklist))
	b.WriteString("\n")

	score := styleSubtitle.Render(fmt.Sprintf("Score %.0f%%  ·  %d of %d criteria covered",
		d.Score()*100, len(d.Satisfied()), len(d.Findings())))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, score))
	b.WriteString("\n\n")

	var status string
	if len(a.state.questions) > 0 {
		var qs []string
		for i, q := range a.state.questions {
			qs = append(qs, wrapText(fmt.Sprintf("%d. %s", i+1, q.Text), width-2))
		}
		questions := styleBox.Copy().
			Width(width).
			BorderForeground(colorSecondary).
			Render("Questions\n\n" + strings.Join(qs, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, questions))
		b.WriteString("\n\n")
		status = "[Enter] Answer  [r] Refine now  [e] Edit  [Esc] Back"
	} else {
		done := styleSatisfied.Render("Nothing to ask. Your prompt covers every criterion.")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, done))
		b.WriteString("\n\n")
		status = "[Enter] Refine anyway  [e] Edit  [Esc] Back"
	}

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(status)))

	return a.centerVertically(b.String())
}

func checklistLines(d diagnose.Diagnosis) []string {
	var lines []string
	for _, f := range d.Findings() {
		mark, style := "[ ]", styleMissing
		if f.Satisfied {
			mark, style = "[x]", styleSatisfied
		}
		line := style.Render(fmt.Sprintf("%s %-22s", mark, f.Criterion.Label())) +
			styleSubtitle.Render(f.Note)
		lines = append(lines, line)
	}
	return lines
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// wrapText wraps text to fit within maxWidth, preserving words
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 60
	}
	if len(text) <= maxWidth {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > maxWidth {
				result.WriteString("\n")
				lineLen = 0
			} else {
				result.WriteString(" ")
				lineLen++
			}
		}
		result.WriteString(word)
		lineLen += len(word)
	}

	return result.String()
}
