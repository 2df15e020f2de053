package ai

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const geminiDefaultModel = "gemini-2.0-flash"

// GeminiProvider performs single-shot generation through the GenAI SDK. The
// system instruction is folded into the prompt text and no token usage is
// reported.
type GeminiProvider struct {
	base
	cfg    Config
	client *genai.Client
}

func NewGemini(cfg Config) *GeminiProvider {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	return &GeminiProvider{
		base: newBase(Gemini, geminiDefaultModel, cfg),
		cfg:  cfg,
	}
}

func (p *GeminiProvider) IsAvailable(context.Context) bool {
	return p.cfg.APIKey != ""
}

func (p *GeminiProvider) connect(ctx context.Context) (*genai.Client, error) {
	if p.client != nil {
		return p.client, nil
	}
	cc := &genai.ClientConfig{
		APIKey:     p.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.cfg.httpClient(),
	}
	if p.cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = p.cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	p.client = client
	return client, nil
}

func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string) (*Response, error) {
	if p.cfg.APIKey == "" {
		return nil, p.fail(errNoAPIKey)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	client, err := p.connect(ctx)
	if err != nil {
		return nil, p.fail(err)
	}

	text := prompt
	if systemPrompt != "" {
		text = systemPrompt + "\n\n" + prompt
	}

	p.log.Debug("sending request", zap.String("model", p.model), zap.Int("prompt_len", len(text)))

	out, err := client.Models.GenerateContent(ctx, p.model, genai.Text(text), nil)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("connection failed: %w", err)
		}
		return nil, p.fail(err)
	}

	content := out.Text()
	if content == "" {
		return nil, p.fail(errors.New("empty response"))
	}
	return &Response{
		Content:  content,
		Model:    p.model,
		Provider: p.name,
	}, nil
}
