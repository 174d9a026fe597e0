package tokens

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Severity thresholds, in tokens
const (
	MediumThreshold = 10_000
	HighThreshold   = 100_000
)

// HighMarker prefixes counts in the High tier
const HighMarker = "⚠"

// Severity is a coarse size bucket for a token count
type Severity int

const (
	SeverityNone Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	default:
		return "None"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Tier classifies a token count
func Tier(n int) Severity {
	switch {
	case n >= HighThreshold:
		return SeverityHigh
	case n >= MediumThreshold:
		return SeverityMedium
	default:
		return SeverityNone
	}
}

var printer = message.NewPrinter(language.English)

// Format renders a token count with thousands grouping and its tier,
// e.g. "⚠ 120,000 tokens (High)", "40,000 tokens (Medium)", "100 tokens".
func Format(n int) string {
	switch Tier(n) {
	case SeverityHigh:
		return printer.Sprintf("%s %d tokens (High)", HighMarker, n)
	case SeverityMedium:
		return printer.Sprintf("%d tokens (Medium)", n)
	default:
		return printer.Sprintf("%d tokens", n)
	}
}
