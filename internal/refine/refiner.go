// Package refine asks an LLM to rewrite a prompt using the user's answers to
// clarifying questions.
package refine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sant0-9/sharpen/internal/clarify"
	"github.com/sant0-9/sharpen/internal/diagnose"
	"github.com/sant0-9/sharpen/internal/llm"
	"github.com/sant0-9/sharpen/internal/llmjson"
	"github.com/sant0-9/sharpen/internal/metrics"
	"github.com/sant0-9/sharpen/internal/prompts"
	"github.com/sant0-9/sharpen/internal/rubric"
	"github.com/sant0-9/sharpen/internal/style"
	"github.com/sirupsen/logrus"
)

const refineTimeout = 60 * time.Second

// ErrEmptyPrompt is returned when there is nothing to refine
var ErrEmptyPrompt = errors.New("original prompt is required")

// Answer is the user's reply for one criterion
type Answer struct {
	Criterion rubric.Criterion `json:"criterion"`
	Text      string           `json:"answer"`
}

// Request contains everything needed to rewrite a prompt
type Request struct {
	Original string
	Answers  []Answer
	// Style names a rewriting style, or style.Auto to let the model pick one
	Style string
}

// Result is the rewritten prompt and how it scores now
type Result struct {
	Prompt    string             `json:"prompt"`
	Changes   []string           `json:"changes"`
	Before    diagnose.Diagnosis `json:"before"`
	After     diagnose.Diagnosis `json:"after"`
	Questions []clarify.Question `json:"remainingQuestions"`
	Style     string             `json:"style,omitempty"`
	Usage     llm.Usage          `json:"-"`
}

type reply struct {
	Prompt  string   `json:"prompt"`
	Changes []string `json:"changes"`
}

// Refiner rewrites prompts with an LLM
type Refiner struct {
	provider llm.Provider
	model    string
	logger   logrus.FieldLogger
	styles   *style.Index
	matcher  *style.Matcher
}

// NewRefiner creates a new refiner
func NewRefiner(provider llm.Provider, model string, logger logrus.FieldLogger) *Refiner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Refiner{
		provider: provider,
		model:    model,
		logger:   logger,
	}
}

// WithStyles makes the styles in idx available to requests
func (r *Refiner) WithStyles(idx *style.Index) *Refiner {
	r.styles = idx
	r.matcher = style.NewMatcher(r.provider, r.model, idx)
	return r
}

// Refine rewrites req.Original. A reply that can't be decoded, or that has no
// prompt in it, is reported as *llmjson.ParseError.
func (r *Refiner) Refine(ctx context.Context, req *Request) (*Result, error) {
	original := strings.TrimSpace(req.Original)
	if original == "" {
		return nil, ErrEmptyPrompt
	}

	st, err := r.resolveStyle(ctx, req.Style, original)
	if err != nil {
		return nil, err
	}
	var guide, styleName string
	if st != nil {
		guide, styleName = st.Body, st.Name
	}

	before := diagnose.Diagnose(original)

	ctx, cancel := context.WithTimeout(ctx, refineTimeout)
	defer cancel()

	llmReq := llm.NewRequest(r.model,
		prompts.BuildRefineSystem(guide),
		prompts.BuildRefineUser(buildInput(original, before, req.Answers)))
	llmReq.JSON = true

	start := time.Now()
	resp, err := r.provider.Complete(ctx, llmReq)
	metrics.LLMRequestDuration.WithLabelValues(r.provider.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RefineRequestsTotal.WithLabelValues("provider_error").Inc()
		return nil, err
	}

	out, err := llmjson.Parse[reply](resp.Content)
	if err != nil {
		metrics.RefineRequestsTotal.WithLabelValues("parse_error").Inc()
		return nil, err
	}
	out.Prompt = strings.TrimSpace(out.Prompt)
	if out.Prompt == "" {
		r.logger.Warn("model reply had no prompt field")
		metrics.RefineRequestsTotal.WithLabelValues("parse_error").Inc()
		return nil, &llmjson.ParseError{}
	}

	metrics.RefineRequestsTotal.WithLabelValues("ok").Inc()
	r.logger.WithFields(logrus.Fields{
		"provider": r.provider.Name(),
		"changes":  len(out.Changes),
		"style":    styleName,
		"tokens":   resp.Usage.TotalTokens,
	}).Info("prompt refined")

	after := diagnose.Diagnose(out.Prompt)
	return &Result{
		Prompt:    out.Prompt,
		Changes:   out.Changes,
		Before:    before,
		After:     after,
		Questions: clarify.Generate(after, len(after.Missing())),
		Style:     styleName,
		Usage:     resp.Usage,
	}, nil
}

// resolveStyle returns nil for no style. A failed or unsure auto match falls
// back to no style; an unknown name is an error.
func (r *Refiner) resolveStyle(ctx context.Context, name, prompt string) (*style.Style, error) {
	switch name {
	case "":
		return nil, nil
	case style.Auto:
		if r.matcher == nil {
			return nil, nil
		}
		m, err := r.matcher.Match(ctx, prompt)
		if err != nil {
			r.logger.WithError(err).Warn("style match failed, refining without a style")
			return nil, nil
		}
		if m == nil {
			return nil, nil
		}
		r.logger.WithFields(logrus.Fields{
			"style":      m.Style.Name,
			"confidence": m.Confidence,
		}).Debug("style matched")
		return m.Style, nil
	default:
		return r.styles.Lookup(name)
	}
}

func buildInput(original string, d diagnose.Diagnosis, answers []Answer) prompts.RefineInput {
	in := prompts.RefineInput{
		Original:  original,
		Satisfied: keys(d.Satisfied()),
		Missing:   keys(d.Missing()),
	}
	for _, a := range answers {
		if !a.Criterion.Valid() {
			continue
		}
		in.Answers = append(in.Answers, prompts.Answer{
			Criterion: a.Criterion.String(),
			Question:  a.Criterion.Question(),
			Text:      a.Text,
		})
	}
	return in
}

func keys(cs []rubric.Criterion) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
