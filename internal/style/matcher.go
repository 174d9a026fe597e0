package style

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sant0-9/sharpen/internal/llm"
	"github.com/sant0-9/sharpen/internal/llmjson"
)

const (
	matchTimeout  = 10 * time.Second
	minConfidence = 0.5
	maxPromptLen  = 2000
)

// Matcher asks the model which style fits a prompt best
type Matcher struct {
	provider llm.Provider
	model    string
	index    *Index
}

func NewMatcher(provider llm.Provider, model string, index *Index) *Matcher {
	return &Matcher{
		provider: provider,
		model:    model,
		index:    index,
	}
}

// MatchResult contains the matching result
type MatchResult struct {
	Style      *Style
	Confidence float64
}

type matchReply struct {
	Style      string  `json:"style"`
	Confidence float64 `json:"confidence"`
}

// Match returns the best style for prompt, or nil when none fits well. An
// unreadable reply counts as no match.
func (m *Matcher) Match(ctx context.Context, prompt string) (*MatchResult, error) {
	if m.index.Count() == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, matchTimeout)
	defer cancel()

	resp, err := m.provider.Complete(ctx, &llm.CompletionRequest{
		Model: m.model,
		Messages: []llm.Message{
			{Role: "user", Content: m.buildMatchingPrompt(prompt)},
		},
		MaxTokens:   100,
		Temperature: 0.1,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	reply, err := llmjson.Parse[matchReply](resp.Content)
	if err != nil {
		return nil, nil
	}
	if reply.Style == "none" || reply.Confidence < minConfidence {
		return nil, nil
	}

	s := m.index.Get(reply.Style)
	if s == nil {
		return nil, nil
	}
	return &MatchResult{Style: s, Confidence: reply.Confidence}, nil
}

func (m *Matcher) buildMatchingPrompt(prompt string) string {
	var sb strings.Builder
	sb.WriteString("Pick the rewriting style that best fits this prompt.\n\n")
	sb.WriteString(fmt.Sprintf("Prompt: %q\n\n", truncate(prompt, maxPromptLen)))
	sb.WriteString("Available styles:\n")

	for _, s := range m.index.All() {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", s.Name, s.Description))
	}

	sb.WriteString("\nRespond with JSON only: {\"style\": \"name-or-none\", \"confidence\": 0.0-1.0}")
	sb.WriteString("\nUse \"none\" if no style matches well (confidence < 0.5)")

	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
