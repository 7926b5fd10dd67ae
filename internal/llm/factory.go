package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/factcheck/internal/model"
)

// NewProvider creates a new LLM provider based on configuration.
// An empty provider name disables the LLM and returns a nil provider.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(strings.TrimSpace(config.Provider))

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts the application config sections to llm.Config
func ConfigFromModel(llmConfig model.LLMConfig, httpConfig model.HTTPConfig) Config {
	return Config{
		Provider:  llmConfig.Provider,
		Model:     llmConfig.Model,
		APIKey:    llmConfig.APIKey,
		BaseURL:   llmConfig.BaseURL,
		Timeout:   llmConfig.Timeout,
		MaxTokens: llmConfig.MaxTokens,
		HTTP:      httpConfig,
	}
}
