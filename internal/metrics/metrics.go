package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sharpen_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	DiagnosesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sharpen_diagnoses_total",
		Help: "Total prompts diagnosed",
	})

	MissingCriteriaTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sharpen_missing_criteria_total",
		Help: "Rubric criteria found missing, by criterion",
	}, []string{"criterion"})

	TokenizerFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sharpen_tokenizer_fallbacks_total",
		Help: "Token counts that fell back to the character estimate",
	})

	RefineRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sharpen_refine_requests_total",
		Help: "Prompt refinement requests, by outcome",
	}, []string{"status"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sharpen_llm_request_duration_seconds",
		Help:    "LLM request duration",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"provider"})
)
