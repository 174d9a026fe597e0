package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/sharpen/internal/tokens"
)

// truncate shortens text to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorSuccess   = lipgloss.Color("#10B981")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorWhite     = lipgloss.Color("#F9FAFB")

	// Logo style
	styleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Subtitle
	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Box
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Checklist
	styleSatisfied = lipgloss.NewStyle().Foreground(colorSuccess)
	styleMissing   = lipgloss.NewStyle().Foreground(colorError)

	styleSpinner = lipgloss.NewStyle().Foreground(colorSecondary)
)

// tokenStyle colours a token count by its tier
func tokenStyle(n int) lipgloss.Style {
	switch tokens.Tier(n) {
	case tokens.SeverityHigh:
		return lipgloss.NewStyle().Foreground(colorError).Bold(true)
	case tokens.SeverityMedium:
		return lipgloss.NewStyle().Foreground(colorWarning)
	default:
		return styleStatusBar
	}
}
