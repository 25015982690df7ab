package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/medgraphlab/smra/internal/config"
)

// NewEngine resolves a provider name to a concrete engine. The mapping is
// explicit configuration, not a runtime registry.
func NewEngine(ctx context.Context, cfg config.EngineConfig) (Engine, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		return NewOpenAIEngine(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiEngine(ctx, cfg.APIKey, cfg.Model)

	case "claude":
		return NewClaudeEngine(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		// Ollama speaks the OpenAI-compatible API under /v1. The key is
		// required by the client config but ignored by the server.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIEngine(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported model provider: %s", provider)
	}
}
