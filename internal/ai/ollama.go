package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	OllamaDefaultURL   = "http://localhost:11434"
	ollamaDefaultModel = "llama3.2"
	ollamaProbeTimeout = 3 * time.Second
)

// OllamaProvider talks to a locally hosted Ollama server. It needs no
// credential; it is available when the server answers a model listing.
type OllamaProvider struct {
	base
	serverURL string
	client    *http.Client
}

func NewOllama(cfg Config) *OllamaProvider {
	url := cfg.BaseURL
	if url == "" {
		url = OllamaDefaultURL
	}
	return &OllamaProvider{
		base:      newBase(Ollama, ollamaDefaultModel, cfg),
		serverURL: trimBase(url),
		client:    cfg.httpClient(),
	}
}

// IsAvailable probes GET /api/tags.
func (p *OllamaProvider) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, ollamaProbeTimeout)
	defer cancel()

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := doJSON(ctx, p.client, http.MethodGet, p.serverURL+"/api/tags", nil, nil, &tags); err != nil {
		p.log.Debug("ollama probe failed", zap.String("url", p.serverURL), zap.Error(err))
		return false
	}
	return true
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  struct {
		Temperature float64 `json:"temperature"`
		NumPredict  int     `json:"num_predict"`
	} `json:"options"`
}

type ollamaChatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

func (p *OllamaProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string) (*Response, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	req := ollamaChatRequest{Model: p.model, Stream: false}
	if systemPrompt != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	req.Messages = append(req.Messages, chatMessage{Role: "user", Content: prompt})
	req.Options.Temperature = temperature
	req.Options.NumPredict = maxOutputTokens

	p.log.Debug("sending request", zap.String("model", p.model), zap.Int("prompt_len", len(prompt)))

	var out ollamaChatResponse
	if err := doJSON(ctx, p.client, http.MethodPost, p.serverURL+"/api/chat", nil, req, &out); err != nil {
		return nil, p.fail(err)
	}
	if out.Message.Content == "" {
		return nil, p.fail(errors.New("empty response"))
	}
	return &Response{
		Content:  out.Message.Content,
		Model:    p.model,
		Provider: p.name,
	}, nil
}
