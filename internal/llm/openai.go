package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ppiankov/factcheck/internal/util"
	"github.com/sashabaranov/go-openai"
)

const openAIDefaultBaseURL = "https://api.openai.com/v1"

// OpenAIProvider implements the Provider interface for OpenAI models
type OpenAIProvider struct {
	client  *openai.Client
	config  Config
	baseURL string
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = util.NewHTTPClient(config.HTTP)

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  config,
		baseURL: clientConfig.BaseURL,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Endpoint returns the API base URL
func (p *OpenAIProvider) Endpoint() string {
	return p.baseURL
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	// Listing models is the lightest authenticated call
	if _, err := p.client.ListModels(ctx); err != nil {
		slog.Warn("OpenAI API check failed", "error", err)
		return false
	}
	return true
}

// Ask sends the question through the Chat Completions API
func (p *OpenAIProvider) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	model := pickModel(req, p.config, openai.GPT4oMini)

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: req.Question},
		},
		MaxTokens: pickMaxTokens(req, p.config),
	}
	// gpt-4o family only accepts the default temperature
	if !strings.Contains(model, "gpt-4o") {
		chatReq.Temperature = 0.1
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	respModel := resp.Model
	if respModel == "" {
		respModel = model
	}

	return &AskResponse{
		Answer:     strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:      respModel,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
