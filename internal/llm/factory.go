package llm

import (
	"fmt"

	"github.com/sant0-9/sharpen/internal/config"
)

// NewProvider creates a provider from config, resolving its API key from the
// environment or the config file
func NewProvider(cfg *config.Config) (Provider, error) {
	creds, err := cfg.ResolveCredentials(cfg.Provider)
	if err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, cfg.Model), nil

	case "groq":
		return NewCompatibleProvider("groq", GroqBaseURL, creds.APIKey, cfg.Model), nil

	case "openai":
		p := NewOpenAIProvider(creds.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			p.baseURL = cfg.BaseURL
		}
		return p, nil

	case "anthropic":
		p := NewAnthropicProvider(creds.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			p.baseURL = cfg.BaseURL
		}
		return p, nil

	case "openrouter":
		return NewCompatibleProvider("openrouter", OpenRouterBaseURL, creds.APIKey, cfg.Model), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCompatibleProvider("custom", cfg.BaseURL, creds.APIKey, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
