package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/sharpen/internal/config"
)

func (a *App) renderSetup() string {
	switch a.state.setupStep {
	case 0:
		return a.setupPage("Choose the LLM that rewrites your prompts:", nil,
			styleBox.Copy().Width(60).Render(a.providerList()),
			"[j/k] Navigate  [Enter] Select")
	case 1:
		p := config.GetProvider(a.state.config.Provider)
		if p == nil {
			return ""
		}
		var hints []string
		if p.SignupURL != "" {
			hints = append(hints, "Get one at: "+p.SignupURL)
		}
		if p.EnvVar != "" {
			hints = append(hints, "Leave blank to use $"+p.EnvVar)
		}
		input := styleBox.Copy().
			Width(60).
			BorderForeground(colorSecondary).
			Render(a.state.apiKeyInput.View())
		return a.setupPage(fmt.Sprintf("Enter your %s API key:", p.Name), hints, input,
			"[Enter] Continue  [Esc] Back")
	}
	return ""
}

// setupPage lays out one wizard step under the logo
func (a *App) setupPage(title string, hints []string, body, keysHelp string) string {
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s)
	}

	parts := []string{
		center(styleLogo.Render(logo)),
		"",
		center(lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Render(title)),
		"",
	}
	for _, h := range hints {
		parts = append(parts, center(styleSubtitle.Render(h)))
	}
	if len(hints) > 0 {
		parts = append(parts, "")
	}
	parts = append(parts, center(body), "", center(styleStatusBar.Render(keysHelp)))

	return a.centerVertically(strings.Join(parts, "\n"))
}

func (a *App) providerList() string {
	lines := make([]string, len(config.Providers))
	for i, p := range config.Providers {
		row := fmt.Sprintf("  [ ] %-12s %s", p.Name, p.Description)
		st := lipgloss.NewStyle().Foreground(colorMuted)
		if i == a.state.selectedProvider {
			row = fmt.Sprintf("> [x] %-12s %s", p.Name, p.Description)
			st = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		}
		lines[i] = st.Render(row)
	}
	return strings.Join(lines, "\n")
}
