package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/sharpen/internal/config"
	"github.com/sant0-9/sharpen/internal/style"
)

func (a *App) renderSettings() string {
	var b strings.Builder
	cfg := a.state.config

	title := styleTitle.Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	provider := config.GetProvider(cfg.Provider)
	providerName := cfg.Provider
	if provider != nil {
		providerName = provider.Name
	}

	configLines := []string{
		fmt.Sprintf("  Provider:      %s", providerName),
		fmt.Sprintf("  Model:         %s", cfg.Model),
		fmt.Sprintf("  API Key:       %s", a.keyStatus()),
		fmt.Sprintf("  Max questions: %d", cfg.MaxQuestions),
		fmt.Sprintf("  Encoding:      %s", cfg.Encoding),
		fmt.Sprintf("  Style:         %s", styleLabel(cfg.Style)),
	}
	if path, err := config.ConfigPath(); err == nil {
		configLines = append(configLines, "", styleSubtitle.Render("  "+path))
	}

	configBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	if a.state.notice != "" {
		notice := lipgloss.NewStyle().Foreground(colorWarning).Render(a.state.notice)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, notice))
		b.WriteString("\n\n")
	}

	instructions := styleStatusBar.Render("[p] Change provider  [t] Next style  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func styleLabel(name string) string {
	switch name {
	case "":
		return "none"
	case style.Auto:
		return "auto (picked per prompt)"
	}
	return name
}

// keyStatus describes where the active provider's key comes from, masked
func (a *App) keyStatus() string {
	creds, err := a.state.config.ResolveCredentials(a.state.config.Provider)
	if err != nil {
		return "Not set"
	}
	if creds.APIKey == "" {
		return "Not needed"
	}

	masked := "****"
	if len(creds.APIKey) > 8 {
		masked = creds.APIKey[:4] + "****" + creds.APIKey[len(creds.APIKey)-4:]
	}
	return fmt.Sprintf("%s (%s)", masked, creds.Source)
}
