package server

import (
	"errors"
	"net/http"

	"github.com/sant0-9/sharpen/internal/clarify"
	"github.com/sant0-9/sharpen/internal/config"
	"github.com/sant0-9/sharpen/internal/diagnose"
	"github.com/sant0-9/sharpen/internal/llmjson"
	"github.com/sant0-9/sharpen/internal/metrics"
	"github.com/sant0-9/sharpen/internal/refine"
	"github.com/sant0-9/sharpen/internal/style"
	"github.com/sant0-9/sharpen/internal/tokens"
)

type TokenInfo struct {
	Count   int             `json:"count"`
	Display string          `json:"display"`
	Tier    tokens.Severity `json:"tier"`
}

type DiagnoseResponse struct {
	Diagnosis diagnose.Diagnosis `json:"diagnosis"`
	Questions []clarify.Question `json:"questions"`
	Tokens    TokenInfo          `json:"tokens"`
}

type TokensResponse struct {
	TokenInfo
	ContextLimit int     `json:"contextLimit"`
	ContextUsed  float64 `json:"contextUsed"`
}

type ProviderEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	NeedsAPIKey  bool     `json:"needsApiKey"`
	Configured   bool     `json:"configured"`
	Active       bool     `json:"active"`
	Models       []string `json:"models,omitempty"`
	DefaultModel string   `json:"defaultModel,omitempty"`
}

type ProvidersResponse struct {
	Active    string          `json:"active"`
	Model     string          `json:"model"`
	Providers []ProviderEntry `json:"providers"`
}

type StylesResponse struct {
	Default string           `json:"default,omitempty"`
	Styles  []style.Metadata `json:"styles"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) diagnose(w http.ResponseWriter, r *http.Request) {
	var req DiagnoseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondErr(w, err)
		return
	}

	d := diagnose.Diagnose(req.Original)
	questions := clarify.Generate(d, req.Limit(s.cfg.MaxQuestions))

	metrics.DiagnosesTotal.Inc()
	for _, c := range d.Missing() {
		metrics.MissingCriteriaTotal.WithLabelValues(c.String()).Inc()
	}

	respondJSON(w, DiagnoseResponse{
		Diagnosis: d,
		Questions: questions,
		Tokens:    s.tokenInfo(req.Original),
	}, http.StatusOK)
}

func (s *Server) countTokens(w http.ResponseWriter, r *http.Request) {
	var req TokensRequest
	if !decodeBody(w, r, &req) {
		return
	}

	info := s.tokenInfo(req.Text)
	model := req.Model
	if model == "" {
		model = s.cfg.Model
	}

	respondJSON(w, TokensResponse{
		TokenInfo:    info,
		ContextLimit: tokens.ContextLimit(model),
		ContextUsed:  tokens.ContextUsed(info.Count, model),
	}, http.StatusOK)
}

func (s *Server) refine(w http.ResponseWriter, r *http.Request) {
	var req RefineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondErr(w, err)
		return
	}

	if s.newRefiner == nil {
		respondError(w, "no provider configured", http.StatusPreconditionFailed)
		return
	}
	refiner, err := s.newRefiner()
	if err != nil {
		s.respondErr(w, err)
		return
	}

	styleName := req.Style
	if styleName == "" {
		styleName = s.cfg.Style
	}

	res, err := refiner.Refine(r.Context(), &refine.Request{
		Original: req.Original,
		Answers:  req.Answers,
		Style:    styleName,
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}

	respondJSON(w, res, http.StatusOK)
}

func (s *Server) providers(w http.ResponseWriter, r *http.Request) {
	resp := ProvidersResponse{
		Active:    s.cfg.Provider,
		Model:     s.cfg.Model,
		Providers: make([]ProviderEntry, 0, len(config.Providers)),
	}
	for _, p := range config.Providers {
		_, credErr := s.cfg.ResolveCredentials(p.ID)
		resp.Providers = append(resp.Providers, ProviderEntry{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			NeedsAPIKey:  p.NeedsAPIKey,
			Configured:   credErr == nil,
			Active:       p.ID == s.cfg.Provider,
			Models:       p.Models,
			DefaultModel: p.DefaultModel,
		})
	}
	respondJSON(w, resp, http.StatusOK)
}

func (s *Server) listStyles(w http.ResponseWriter, r *http.Request) {
	all := s.styles.All()
	resp := StylesResponse{
		Default: s.cfg.Style,
		Styles:  make([]style.Metadata, 0, len(all)),
	}
	for _, st := range all {
		resp.Styles = append(resp.Styles, st.Metadata)
	}
	respondJSON(w, resp, http.StatusOK)
}

func (s *Server) tokenInfo(text string) TokenInfo {
	n := s.counter.Count(text)
	return TokenInfo{
		Count:   n,
		Display: tokens.Format(n),
		Tier:    tokens.Tier(n),
	}
}

// respondErr maps domain errors onto HTTP statuses
func (s *Server) respondErr(w http.ResponseWriter, err error) {
	var (
		ve *ValidationError
		pe *llmjson.ParseError
	)
	switch {
	case errors.As(err, &ve):
		respondError(w, ve.Message, http.StatusBadRequest)
	case errors.Is(err, refine.ErrEmptyPrompt), errors.Is(err, style.ErrUnknown):
		respondError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &pe):
		respondError(w, llmjson.ParseErrorMessage, http.StatusBadGateway)
	case errors.Is(err, config.ErrNoCredentials):
		respondError(w, err.Error(), http.StatusPreconditionFailed)
	default:
		s.logger.WithError(err).Error("provider request failed")
		respondError(w, "provider request failed: "+err.Error(), http.StatusBadGateway)
	}
}
