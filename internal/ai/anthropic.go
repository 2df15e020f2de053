package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	anthropicBaseURL       = "https://api.anthropic.com"
	anthropicDefaultModel  = "claude-3-5-haiku-latest"
	anthropicVersion       = "2023-06-01"
	anthropicDefaultSystem = "You are a helpful assistant."
)

// AnthropicProvider talks to the Messages API.
type AnthropicProvider struct {
	base
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAnthropic(cfg Config) *AnthropicProvider {
	url := cfg.BaseURL
	if url == "" {
		url = anthropicBaseURL
	}
	return &AnthropicProvider{
		base:    newBase(Anthropic, anthropicDefaultModel, cfg),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: trimBase(url),
		client:  cfg.httpClient(),
	}
}

func (p *AnthropicProvider) IsAvailable(context.Context) bool {
	return p.apiKey != ""
}

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (p *AnthropicProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string) (*Response, error) {
	if p.apiKey == "" {
		return nil, p.fail(errNoAPIKey)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = anthropicDefaultSystem
	}
	req := anthropicRequest{
		Model:       p.model,
		MaxTokens:   maxOutputTokens,
		Temperature: temperature,
		System:      systemPrompt,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": anthropicVersion,
	}

	p.log.Debug("sending request", zap.String("model", p.model), zap.Int("prompt_len", len(prompt)))

	var out anthropicResponse
	if err := doJSON(ctx, p.client, http.MethodPost, p.baseURL+"/v1/messages", headers, req, &out); err != nil {
		return nil, p.fail(err)
	}

	var text strings.Builder
	for _, c := range out.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}
	if text.Len() == 0 {
		return nil, p.fail(errors.New("no content returned"))
	}

	resp := &Response{
		Content:  text.String(),
		Model:    p.model,
		Provider: p.name,
	}
	if out.Usage != nil {
		resp.TokensUsed = intPtr(out.Usage.InputTokens + out.Usage.OutputTokens)
	}
	return resp, nil
}
