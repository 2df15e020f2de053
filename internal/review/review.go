// Package review runs the daily review: pick a provider, ask it about
// today, and fall back to a rule-based review whenever that does not work.
package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sadopc/reflex/internal/ai"
	"github.com/sadopc/reflex/internal/summary"
	"github.com/sadopc/reflex/internal/tui"
)

const (
	maxRetries = 2
	retryDelay = 2 * time.Second
)

// Mode says which kind of review was rendered.
type Mode string

const (
	ModeAI    Mode = "ai"
	ModeBasic Mode = "basic"
)

// Options are the per-invocation review flags.
type Options struct {
	Provider string
	Model    string
	// ModelSet distinguishes an explicit empty --model from no flag at all.
	ModelSet bool
}

// Result is the outcome of Run. Err is the failure that caused a fallback,
// if any; it is informational and Run always renders a review.
type Result struct {
	Mode     Mode
	Response *ai.Response
	Err      error
}

// Reviewer holds the collaborators for one review invocation.
type Reviewer struct {
	Out        io.Writer
	Log        *zap.Logger
	Source     summary.Source
	Today      func() time.Time
	NewManager func(ctx context.Context) *ai.Manager
	// Sleep waits between retries; nil means a context-aware time.Sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (r *Reviewer) log() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

func (r *Reviewer) println(s string) {
	fmt.Fprintln(r.Out, s)
}

func (r *Reviewer) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		return r.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *Reviewer) summary() *summary.Summary {
	return summary.Build(r.Source, r.Today(), r.log())
}

// Run performs the review and always renders either an AI or a basic review.
func (r *Reviewer) Run(ctx context.Context, opts Options) Result {
	m := r.NewManager(ctx)
	available := m.Available()

	if len(available) == 0 {
		r.println(tui.Error("No AI providers available. Please configure at least one:"))
		r.println(configHint)
		return r.fallback(nil)
	}

	if len(available) > 1 && strings.TrimSpace(opts.Provider) == "" {
		r.println(tui.Info("Available AI providers: " + strings.Join(available, ", ")))
		r.println(tui.Info(fmt.Sprintf("Using: %s (default)", m.Preferred())))
		r.println(tui.Muted("Specify provider with: reflex review --provider <name>"))
	}

	p, err := m.Provider(opts.Provider)
	if err != nil {
		r.println(tui.Error(err.Error()))
		return r.fallback(err)
	}
	if p == nil {
		r.println(tui.Error("No provider available"))
		return r.fallback(nil)
	}

	if opts.ModelSet {
		if strings.TrimSpace(opts.Model) == "" {
			r.println(tui.Warn("Empty model name provided, using default"))
		} else {
			p.SetModel(opts.Model)
		}
	}
	r.println(tui.Success(fmt.Sprintf("Using provider: %s (%s)", p.Name(), p.Model())))

	sum := r.summary()
	if err := summary.Validate(sum); err != nil {
		r.println(tui.Warn("Invalid daily summary structure"))
		return r.fallback(err)
	}

	prompt := BuildPrompt(sum)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := p.GenerateResponse(ctx, prompt, SystemPrompt)
		if err == nil {
			r.renderAI(resp)
			return Result{Mode: ModeAI, Response: resp}
		}

		lastErr = err
		perr := ai.Classify(p.Name(), p.Model(), err)
		r.log().Debug("review attempt failed",
			zap.Int("attempt", attempt+1), zap.String("kind", string(perr.Kind)), zap.Error(err))

		if perr.Kind == ai.KindNetwork && attempt < maxRetries {
			r.println(tui.Warn(fmt.Sprintf("%s Retrying in 2 seconds... (attempt %d/%d)",
				perr.Message, attempt+1, maxRetries+1)))
			if err := r.sleep(ctx, retryDelay); err != nil {
				lastErr = errors.Join(perr, err)
				break
			}
			continue
		}

		r.println(tui.Error(perr.Message))
		switch perr.Kind {
		case ai.KindRateLimit:
			r.println(tui.Hint("Try again in a few minutes or use a different provider"))
		case ai.KindModelNotFound:
			r.println(tui.Hint(fmt.Sprintf("Available models depend on your %s account tier", perr.Provider)))
		}
		break
	}
	return r.fallback(lastErr)
}

func (r *Reviewer) renderAI(resp *ai.Response) {
	title := fmt.Sprintf("🤖 AI Daily Review (%s - %s)", displayName(resp.Provider), resp.Model)
	r.println(tui.Panel(title, resp.Content, tui.BorderInfo))
	if resp.TokensUsed != nil {
		r.println(tui.Muted(fmt.Sprintf("Tokens used: %d", *resp.TokensUsed)))
	}
}

func (r *Reviewer) fallback(cause error) Result {
	r.println(tui.Info("Falling back to basic review:"))
	r.Basic()
	return Result{Mode: ModeBasic, Err: cause}
}

// Basic renders the rule-based review for today.
func (r *Reviewer) Basic() {
	title, body := BasicReview(r.summary())
	r.println(tui.Panel(title, body, tui.BorderSuccess))
}

const configHint = `• Set OPENAI_API_KEY environment variable
• Set ANTHROPIC_API_KEY environment variable
• Set GEMINI_API_KEY environment variable
• Install and run Ollama locally`

var displayNames = map[string]string{
	ai.OpenAI:    "OpenAI",
	ai.Anthropic: "Anthropic",
	ai.Gemini:    "Gemini",
	ai.Ollama:    "Ollama",
}

func displayName(provider string) string {
	if n, ok := displayNames[provider]; ok {
		return n
	}
	return provider
}
