package server

import (
	"strings"

	"github.com/sant0-9/sharpen/internal/refine"
)

// ValidationError is a bad request detected before any work is done
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const (
	msgOriginalRequired  = "original prompt is required"
	msgMaxQuestionsRange = "maxQuestions must be zero or greater"
)

type DiagnoseRequest struct {
	Original     string `json:"original"`
	MaxQuestions *int   `json:"maxQuestions,omitempty"`
}

// Validate rejects blank prompts and negative question limits
func (r *DiagnoseRequest) Validate() error {
	if strings.TrimSpace(r.Original) == "" {
		return &ValidationError{Message: msgOriginalRequired}
	}
	if r.MaxQuestions != nil && *r.MaxQuestions < 0 {
		return &ValidationError{Message: msgMaxQuestionsRange}
	}
	return nil
}

// Limit returns the requested question limit or def when none was given
func (r *DiagnoseRequest) Limit(def int) int {
	if r.MaxQuestions == nil {
		return def
	}
	return *r.MaxQuestions
}

type TokensRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type RefineRequest struct {
	Original string          `json:"original"`
	Answers  []refine.Answer `json:"answers,omitempty"`
	Style    string          `json:"style,omitempty"`
}

func (r *RefineRequest) Validate() error {
	if strings.TrimSpace(r.Original) == "" {
		return &ValidationError{Message: msgOriginalRequired}
	}
	return nil
}
