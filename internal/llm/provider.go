package llm

import (
	"context"
	"strings"

	"github.com/ppiankov/factcheck/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Endpoint returns the base URL requests go to (used for throttling)
	Endpoint() string

	// Ask sends one question and returns the raw answer text
	Ask(ctx context.Context, req AskRequest) (*AskResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// AskRequest contains one question for the model
type AskRequest struct {
	// Question is the user message, usually built by BuildQuestion
	Question string

	// System overrides the default system prompt
	System string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AskResponse contains the model's answer
type AskResponse struct {
	// Answer is the trimmed answer text
	Answer string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// HTTP carries proxy settings and the user agent
	HTTP model.HTTPConfig
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 500,
	}
}

// defaultSystemPrompt asks for the bare value, which keeps extraction simple
const defaultSystemPrompt = "あなたは事実確認のための回答者です。質問に対して、値のみを簡潔に回答してください。説明や前置きは不要です。"

func systemPrompt(req AskRequest) string {
	if strings.TrimSpace(req.System) != "" {
		return req.System
	}
	return defaultSystemPrompt
}

func pickModel(req AskRequest, cfg Config, fallback string) string {
	if req.Model != "" {
		return req.Model
	}
	if cfg.Model != "" {
		return cfg.Model
	}
	return fallback
}

func pickMaxTokens(req AskRequest, cfg Config) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	if cfg.MaxTokens > 0 {
		return cfg.MaxTokens
	}
	return 500
}
