package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/sharpen/internal/tokens"
)

const logo = `
┌─┐┬ ┬┌─┐┬─┐┌─┐┌─┐┌┐┌
└─┐├─┤├─┤├┬┘├─┘├┤ │││
└─┘┴ ┴┴ ┴┴└─┴  └─┘┘└┘
`

func (a *App) renderEditor() string {
	var b strings.Builder

	header := lipgloss.JoinVertical(
		lipgloss.Center,
		styleLogo.Render(logo),
		styleSubtitle.Render("Find what your prompt is missing"),
	)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
	b.WriteString("\n\n")

	editorBox := styleBox.Copy().
		BorderForeground(colorSecondary).
		Render(a.state.editor.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, editorBox))
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.editorStats()))
	b.WriteString("\n\n")

	if a.state.notice != "" {
		notice := lipgloss.NewStyle().Foreground(colorWarning).Render(a.state.notice)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, notice))
		b.WriteString("\n")
	}

	status := styleStatusBar.Render("[Ctrl+D] Diagnose  [Ctrl+O] Settings  [F1] Help  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// editorStats shows the token count, context usage and provider status
func (a *App) editorStats() string {
	n := a.state.tokenCount
	parts := []string{tokenStyle(n).Render(tokens.Format(n))}

	model := a.state.config.Model
	if n > 0 {
		limit := tokens.ContextLimit(model)
		parts = append(parts, styleStatusBar.Render(fmt.Sprintf("%.1f%% of %dk ctx",
			tokens.ContextUsed(n, model)*100, limit/1000)))
	}

	switch {
	case a.state.providerError != nil:
		parts = append(parts, lipgloss.NewStyle().Foreground(colorError).Render(a.state.config.Provider+" offline"))
	case a.state.providerReady:
		parts = append(parts, styleSatisfied.Render(a.state.config.Provider+" ready"))
	default:
		parts = append(parts, styleStatusBar.Render(a.state.config.Provider+"..."))
	}

	return strings.Join(parts, styleStatusBar.Render("  ·  "))
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
