// Package ai wraps the text-generation backends used by the daily review
// behind a single Provider contract.
package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Provider identifiers, in discovery order.
const (
	OpenAI    = "openai"
	Anthropic = "anthropic"
	Gemini    = "gemini"
	Ollama    = "ollama"
)

// KnownProviders lists every supported backend in construction order.
var KnownProviders = []string{OpenAI, Anthropic, Gemini, Ollama}

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 30 * time.Second

const (
	maxOutputTokens = 300
	temperature     = 0.7
)

// Provider is a text-generation backend.
type Provider interface {
	// Name is the stable lowercase identifier.
	Name() string
	// Model is the model the next call will use.
	Model() string
	SetModel(model string)
	DefaultModel() string
	// IsAvailable reports whether the backend can be used right now. It never
	// fails; any internal error means "not available".
	IsAvailable(ctx context.Context) bool
	GenerateResponse(ctx context.Context, prompt, systemPrompt string) (*Response, error)
}

// Response is the normalized result of a successful call.
type Response struct {
	Content    string
	Model      string
	Provider   string
	TokensUsed *int
	Cost       *float64
}

// Config carries the per-backend settings resolved from the environment.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: c.timeout()}
}

func (c Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

// base holds the identity and model bookkeeping shared by every backend.
type base struct {
	name         string
	model        string
	defaultModel string
	timeout      time.Duration
	log          *zap.Logger
}

func newBase(name, defaultModel string, cfg Config) base {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	return base{
		name:         name,
		model:        model,
		defaultModel: defaultModel,
		timeout:      cfg.timeout(),
		log:          cfg.logger().With(zap.String("provider", name)),
	}
}

func (b *base) Name() string         { return b.name }
func (b *base) Model() string        { return b.model }
func (b *base) DefaultModel() string { return b.defaultModel }

func (b *base) SetModel(model string) {
	if m := strings.TrimSpace(model); m != "" {
		b.model = m
	}
}

// withTimeout applies the call timeout unless ctx already has a deadline.
func (b *base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

func (b *base) fail(err error) error {
	e := Classify(b.name, b.model, err)
	b.log.Debug("generate failed", zap.String("kind", string(e.Kind)), zap.Error(err))
	return e
}

func intPtr(n int) *int { return &n }
