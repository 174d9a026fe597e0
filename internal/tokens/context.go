package tokens

import "strings"

// DefaultContextLimit is used for models we don't recognise
const DefaultContextLimit = 8000

// ContextLimit returns the context window size for a model
func ContextLimit(model string) int {
	model = strings.ToLower(model)

	// Claude models
	if strings.Contains(model, "claude") {
		return 200000
	}

	// GPT-4 variants
	if strings.Contains(model, "gpt-4.1") {
		return 1000000
	}
	if strings.Contains(model, "gpt-4o") || strings.Contains(model, "gpt-4-turbo") {
		return 128000
	}
	if strings.Contains(model, "gpt-4-32k") {
		return 32000
	}
	if strings.Contains(model, "gpt-4") {
		return 8000
	}

	// Llama variants
	if strings.Contains(model, "llama-3") || strings.Contains(model, "llama3") {
		return 128000
	}
	if strings.Contains(model, "llama") {
		return 8000
	}

	if strings.Contains(model, "qwen2.5") {
		return 32000
	}
	if strings.Contains(model, "mixtral") {
		return 32000
	}

	// Gemini
	if strings.Contains(model, "gemini") {
		return 1000000
	}

	return DefaultContextLimit
}

// ContextUsed returns the fraction of the model's context window that count
// tokens would fill
func ContextUsed(count int, model string) float64 {
	return float64(count) / float64(ContextLimit(model))
}
