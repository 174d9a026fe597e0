package prompts

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed refine.md
var Refine string

// Answer is the user's reply to one clarifying question
type Answer struct {
	Criterion string
	Question  string
	Text      string
}

// RefineInput is everything the rewrite prompt is built from
type RefineInput struct {
	Original  string
	Satisfied []string
	Missing   []string
	Answers   []Answer
}

// BuildRefineSystem returns the system prompt for a rewrite, followed by the
// style guide when one is given
func BuildRefineSystem(styleGuide string) string {
	system := strings.TrimSpace(Refine)
	if guide := strings.TrimSpace(styleGuide); guide != "" {
		system += "\n\nSTYLE GUIDE (follow it unless it contradicts the user's answers):\n" + guide
	}
	return system
}

// BuildRefineUser lays out the original prompt, its diagnosis and the answers
func BuildRefineUser(in RefineInput) string {
	var b strings.Builder

	b.WriteString("ORIGINAL PROMPT:\n")
	b.WriteString(strings.TrimSpace(in.Original))
	b.WriteString("\n\n")

	if len(in.Satisfied) > 0 {
		b.WriteString("ALREADY COVERED: " + strings.Join(in.Satisfied, ", ") + "\n")
	}
	if len(in.Missing) > 0 {
		b.WriteString("MISSING: " + strings.Join(in.Missing, ", ") + "\n")
	}

	answered := 0
	for _, a := range in.Answers {
		if strings.TrimSpace(a.Text) == "" {
			continue
		}
		if answered == 0 {
			b.WriteString("\nANSWERS:\n")
		}
		answered++
		b.WriteString(fmt.Sprintf("- [%s] %s\n  %s\n", a.Criterion, a.Question, strings.TrimSpace(a.Text)))
	}

	return b.String()
}
