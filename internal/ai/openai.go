package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	openAIBaseURL      = "https://api.openai.com/v1"
	openAIDefaultModel = "gpt-4o-mini"
)

var errNoAPIKey = errors.New("api key not configured")

// OpenAIProvider talks to a chat-completions endpoint.
type OpenAIProvider struct {
	base
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenAI(cfg Config) *OpenAIProvider {
	url := cfg.BaseURL
	if url == "" {
		url = openAIBaseURL
	}
	return &OpenAIProvider{
		base:    newBase(OpenAI, openAIDefaultModel, cfg),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: trimBase(url),
		client:  cfg.httpClient(),
	}
}

func (p *OpenAIProvider) IsAvailable(context.Context) bool {
	return p.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type openAIResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string) (*Response, error) {
	if p.apiKey == "" {
		return nil, p.fail(errNoAPIKey)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var messages []chatMessage
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	req := openAIRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   maxOutputTokens,
		Temperature: temperature,
	}
	headers := map[string]string{"Authorization": "Bearer " + p.apiKey}

	p.log.Debug("sending request", zap.String("model", p.model), zap.Int("prompt_len", len(prompt)))

	var out openAIResponse
	if err := doJSON(ctx, p.client, http.MethodPost, p.baseURL+"/chat/completions", headers, req, &out); err != nil {
		return nil, p.fail(err)
	}
	if len(out.Choices) == 0 {
		return nil, p.fail(errors.New("no choices returned"))
	}

	resp := &Response{
		Content:  out.Choices[0].Message.Content,
		Model:    p.model,
		Provider: p.name,
	}
	if out.Usage != nil {
		resp.TokensUsed = intPtr(out.Usage.TotalTokens)
	}
	return resp, nil
}
