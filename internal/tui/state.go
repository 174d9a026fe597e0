package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sant0-9/sharpen/internal/clarify"
	"github.com/sant0-9/sharpen/internal/config"
	"github.com/sant0-9/sharpen/internal/diagnose"
	"github.com/sant0-9/sharpen/internal/refine"
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Editor
	editor     textarea.Model
	tokenCount int

	// Diagnosis
	original  string
	diagnosis diagnose.Diagnosis
	questions []clarify.Question

	// Answers, indexed like questions
	answers       []string
	questionIndex int
	answerInput   textinput.Model

	// Refinement
	refining   bool
	spinner    spinner.Model
	result     *refine.Result
	resultView viewport.Model
	notice     string

	// Provider
	providerReady bool
	providerError error

	err error
}

func newState() *state {
	editor := textarea.New()
	editor.Placeholder = "Paste or write the prompt you want to sharpen..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetWidth(70)
	editor.SetHeight(10)

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	answer := textinput.New()
	answer.Placeholder = "Your answer (Tab to skip)"
	answer.CharLimit = 1000
	answer.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styleSpinner

	return &state{
		editor:      editor,
		apiKeyInput: apiKey,
		answerInput: answer,
		spinner:     spin,
		resultView:  viewport.New(70, 12),
	}
}

// answered returns the non-blank answers paired with their criteria
func (s *state) answered() []refine.Answer {
	var out []refine.Answer
	for i, q := range s.questions {
		if i >= len(s.answers) || s.answers[i] == "" {
			continue
		}
		out = append(out, refine.Answer{Criterion: q.Criterion, Text: s.answers[i]})
	}
	return out
}
