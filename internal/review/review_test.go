package review

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/sadopc/reflex/internal/ai"
	"github.com/sadopc/reflex/internal/store"
	"github.com/sadopc/reflex/internal/summary"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

// fakeProvider replays scripted errors, then succeeds.
type fakeProvider struct {
	name      string
	model     string
	available bool
	errs      []error
	calls     int
	prompts   []string
}

func (f *fakeProvider) Name() string         { return f.name }
func (f *fakeProvider) Model() string        { return f.model }
func (f *fakeProvider) DefaultModel() string { return f.name + "-default" }
func (f *fakeProvider) SetModel(m string) {
	if strings.TrimSpace(m) != "" {
		f.model = m
	}
}
func (f *fakeProvider) IsAvailable(context.Context) bool { return f.available }

func (f *fakeProvider) GenerateResponse(_ context.Context, prompt, _ string) (*ai.Response, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.calls <= len(f.errs) {
		return nil, ai.Classify(f.name, f.model, f.errs[f.calls-1])
	}
	tokens := 99
	return &ai.Response{Content: "Solid day.", Model: f.model, Provider: f.name, TokensUsed: &tokens}, nil
}

func newFake(name string, available bool, errs ...error) *fakeProvider {
	return &fakeProvider{name: name, model: name + "-default", available: available, errs: errs}
}

type harness struct {
	out    bytes.Buffer
	sleeps []time.Duration
	r      *Reviewer
}

func newHarness(t *testing.T, src summary.Source, defaultName string, providers ...*fakeProvider) *harness {
	t.Helper()
	h := &harness{}
	var builders []ai.Builder
	for _, p := range providers {
		builders = append(builders, ai.Builder{Name: p.name, New: func() (ai.Provider, error) { return p, nil }})
	}
	h.r = &Reviewer{
		Out:    &h.out,
		Log:    zap.NewNop(),
		Source: src,
		Today:  func() time.Time { return time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local) },
		NewManager: func(ctx context.Context) *ai.Manager {
			return ai.NewManager(ctx, builders, defaultName, zap.NewNop())
		},
		Sleep: func(_ context.Context, d time.Duration) error {
			h.sleeps = append(h.sleeps, d)
			return nil
		},
	}
	return h
}

type staticSource struct {
	stats store.DailyStats
	tasks []store.Task
	logs  []store.LogEntry
}

func (s staticSource) DailyStats(time.Time) (*store.DailyStats, error) {
	st := s.stats
	return &st, nil
}

func (s staticSource) ListTasksFor(time.Time) ([]store.Task, error) { return s.tasks, nil }
func (s staticSource) LogsFor(time.Time) ([]store.LogEntry, error)  { return s.logs, nil }

var sampleDay = staticSource{
	stats: store.DailyStats{CompletedTasks: 2, PendingTasks: 1, FocusSessions: 2, TotalFocusTime: 50, LogEntries: 3},
	tasks: []store.Task{
		{ID: 1, Text: "write report", Completed: true},
		{ID: 2, Text: "fix login bug", Completed: true},
		{ID: 3, Text: "plan sprint"},
	},
	logs: []store.LogEntry{{Entry: "standup"}, {Entry: "pairing"}, {Entry: "deploy"}},
}

// ============================================================
// Prompt
// ============================================================

func TestBuildPrompt(t *testing.T) {
	sum := summary.Build(sampleDay, time.Now(), nil)
	want := "Today's work summary:\n" +
		"- Tasks completed: 2\n" +
		"- Tasks pending: 1\n" +
		"- Focus sessions: 2 (50 minutes total)\n" +
		"- Log entries: 3\n" +
		"\nTasks:\n" +
		"- ✅ write report\n" +
		"- ✅ fix login bug\n" +
		"- ⏳ plan sprint\n" +
		"\nWork log entries:\n" +
		"- standup\n" +
		"- pairing\n" +
		"- deploy\n" +
		"\n\nAnalyze this day. Provide:\n" +
		"1. What went well\n" +
		"2. Areas for improvement\n" +
		"3. Specific suggestions for tomorrow\n" +
		"Keep it concise and actionable."
	assert.Equal(t, want, BuildPrompt(sum))
}

func TestBuildPromptEmptyDay(t *testing.T) {
	p := BuildPrompt(summary.Empty())
	assert.Contains(t, p, "- No tasks recorded today\n")
	assert.NotContains(t, p, "Work log entries")
	assert.Contains(t, p, "- Focus sessions: 0 (0 minutes total)")
}

// ============================================================
// Basic review
// ============================================================

func TestBasicReviewSampleDay(t *testing.T) {
	title, body := BasicReview(summary.Build(sampleDay, time.Now(), nil))
	assert.Equal(t, "📊 Daily Review", title)
	assert.Contains(t, body, "Great job completing 2 task(s)!")
	assert.Contains(t, body, "2 focus session(s) averaging 25.0 minutes")
	assert.Contains(t, body, "You made 3 log entries")
	assert.Contains(t, body, "- Complete 1 pending task(s)")
	assert.NotContains(t, body, "Try longer focus sessions")
	assert.NotContains(t, body, "Consider shorter sessions")
	assert.True(t, strings.HasSuffix(body, "- Start with a focus session\n- Log your progress regularly"))
}

func TestBasicReviewTips(t *testing.T) {
	short := summary.Empty()
	short.Stats.FocusSessions = 3
	short.Stats.TotalFocusTime = 30
	_, body := BasicReview(short)
	assert.Contains(t, body, "averaging 10.0 minutes")
	assert.Contains(t, body, "Try longer focus sessions (25+ minutes)")

	long := summary.Empty()
	long.Stats.FocusSessions = 1
	long.Stats.TotalFocusTime = 90
	_, body = BasicReview(long)
	assert.Contains(t, body, "Consider shorter sessions with breaks")
}

func TestBasicReviewEmptyDay(t *testing.T) {
	_, body := BasicReview(summary.Empty())
	assert.Contains(t, body, "No tasks completed today")
	assert.Contains(t, body, "No focus sessions logged")
	assert.NotContains(t, body, "log entries")
	assert.NotContains(t, body, "pending task")
}

func TestBasicReviewInvalidSummary(t *testing.T) {
	title, body := BasicReview(&summary.Summary{})
	assert.Equal(t, "📊 Basic Daily Review", title)
	assert.Contains(t, body, "Unable to generate detailed review")
}

// ============================================================
// Orchestrator
// ============================================================

func TestRunNoProvidersFallsBack(t *testing.T) {
	openai := newFake(ai.OpenAI, false)
	h := newHarness(t, sampleDay, "", openai)

	res := h.r.Run(context.Background(), Options{})
	assert.Equal(t, ModeBasic, res.Mode)
	assert.Zero(t, openai.calls)
	out := h.out.String()
	assert.Contains(t, out, "No AI providers available")
	assert.Contains(t, out, "Falling back to basic review")
	assert.Contains(t, out, "averaging 25.0 minutes")
}

func TestRunEndToEndWithStore(t *testing.T) {
	s, err := store.NewMemory()
	require.NoError(t, err)
	defer s.Close()

	for _, text := range []string{"a", "b", "c"} {
		_, err := s.AddTask(text)
		require.NoError(t, err)
	}
	require.NoError(t, s.CompleteTask(1))
	require.NoError(t, s.CompleteTask(2))
	for _, m := range []int{20, 30} {
		_, err := s.AddFocusSession(m)
		require.NoError(t, err)
	}
	for _, e := range []string{"x", "y", "z"} {
		_, err := s.AddLog(e)
		require.NoError(t, err)
	}

	h := newHarness(t, s, "")
	h.r.Today = s.Today

	res := h.r.Run(context.Background(), Options{})
	assert.Equal(t, ModeBasic, res.Mode)
	out := h.out.String()
	assert.Contains(t, out, "averaging 25.0 minutes")
	assert.Contains(t, out, "Complete 1 pending task(s)")
	assert.NotContains(t, out, "Try longer focus sessions")
}

func TestRunSuccess(t *testing.T) {
	p := newFake(ai.Anthropic, true)
	h := newHarness(t, sampleDay, "", p)

	res := h.r.Run(context.Background(), Options{})
	require.Equal(t, ModeAI, res.Mode)
	assert.Equal(t, "Solid day.", res.Response.Content)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, BuildPrompt(summary.Build(sampleDay, time.Now(), nil)), p.prompts[0])

	out := h.out.String()
	assert.Contains(t, out, "AI Daily Review (Anthropic - anthropic-default)")
	assert.Contains(t, out, "Tokens used: 99")
	assert.NotContains(t, out, "Falling back")
}

func TestRunRetriesNetworkErrors(t *testing.T) {
	p := newFake(ai.Ollama, true,
		errors.New("Connection timeout"),
		errors.New("connection refused"),
	)
	h := newHarness(t, sampleDay, "", p)

	res := h.r.Run(context.Background(), Options{})
	assert.Equal(t, ModeAI, res.Mode)
	assert.Equal(t, 3, p.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, h.sleeps)
	assert.Contains(t, h.out.String(), "(attempt 1/3)")
	assert.Contains(t, h.out.String(), "(attempt 2/3)")
	assert.NotContains(t, h.out.String(), "Falling back")
}

func TestRunRetriesExhausted(t *testing.T) {
	netErr := errors.New("network unreachable")
	p := newFake(ai.OpenAI, true, netErr, netErr, netErr)
	h := newHarness(t, sampleDay, "", p)

	res := h.r.Run(context.Background(), Options{})
	assert.Equal(t, ModeBasic, res.Mode)
	assert.Equal(t, 3, p.calls)
	assert.Len(t, h.sleeps, 2)
	assert.Equal(t, ai.KindNetwork, ai.KindOf(res.Err))
}

func TestRunAuthErrorNeverRetries(t *testing.T) {
	p := newFake(ai.OpenAI, true, errors.New("Invalid API key (401)"))
	h := newHarness(t, sampleDay, "", p)

	res := h.r.Run(context.Background(), Options{})
	assert.Equal(t, ModeBasic, res.Mode)
	assert.Equal(t, 1, p.calls)
	assert.Empty(t, h.sleeps)
	assert.Equal(t, ai.KindAuth, ai.KindOf(res.Err))
	assert.Contains(t, h.out.String(), "Authentication failed for openai")
}

func TestRunRateLimitHint(t *testing.T) {
	p := newFake(ai.Gemini, true, errors.New("Rate limit exceeded (429)"))
	h := newHarness(t, sampleDay, "", p)

	res := h.r.Run(context.Background(), Options{})
	assert.Equal(t, ModeBasic, res.Mode)
	assert.Equal(t, 1, p.calls)
	assert.Contains(t, h.out.String(), "Try again in a few minutes")
}

func TestRunModelNotFoundHint(t *testing.T) {
	p := newFake(ai.OpenAI, true, errors.New("model gpt-9 not found"))
	h := newHarness(t, sampleDay, "", p)

	h.r.Run(context.Background(), Options{Model: "gpt-9", ModelSet: true})
	assert.Equal(t, "gpt-9", p.model)
	assert.Contains(t, h.out.String(), "Available models depend on your openai account tier")
}

func TestRunInvalidProvider(t *testing.T) {
	p := newFake(ai.OpenAI, true)
	h := newHarness(t, sampleDay, "", p)

	res := h.r.Run(context.Background(), Options{Provider: "bogus"})
	assert.Equal(t, ModeBasic, res.Mode)
	assert.Equal(t, ai.KindInvalidProvider, ai.KindOf(res.Err))
	assert.Zero(t, p.calls)
}

func TestRunUnavailableProvider(t *testing.T) {
	h := newHarness(t, sampleDay, "", newFake(ai.OpenAI, true), newFake(ai.Gemini, false))

	res := h.r.Run(context.Background(), Options{Provider: "gemini"})
	assert.Equal(t, ModeBasic, res.Mode)
	assert.Equal(t, ai.KindProviderUnavailable, ai.KindOf(res.Err))
	assert.Contains(t, h.out.String(), "Provider 'gemini' is not available")
}

func TestRunListsCandidatesWhenSeveralAvailable(t *testing.T) {
	openai := newFake(ai.OpenAI, true)
	ollama := newFake(ai.Ollama, true)
	h := newHarness(t, sampleDay, "ollama", openai, ollama)

	res := h.r.Run(context.Background(), Options{})
	assert.Equal(t, ModeAI, res.Mode)
	out := h.out.String()
	assert.Contains(t, out, "Available AI providers: openai, ollama")
	assert.Contains(t, out, "Using: ollama (default)")
	assert.Equal(t, 1, ollama.calls)
	assert.Zero(t, openai.calls)
}

func TestRunExplicitProviderSkipsCandidateList(t *testing.T) {
	h := newHarness(t, sampleDay, "", newFake(ai.OpenAI, true), newFake(ai.Ollama, true))

	h.r.Run(context.Background(), Options{Provider: "ollama"})
	assert.NotContains(t, h.out.String(), "Available AI providers")
}

func TestRunBlankModelIgnored(t *testing.T) {
	p := newFake(ai.OpenAI, true)
	h := newHarness(t, sampleDay, "", p)

	h.r.Run(context.Background(), Options{Model: "   ", ModelSet: true})
	assert.Equal(t, "openai-default", p.model)
	assert.Contains(t, h.out.String(), "Empty model name provided, using default")
}

func TestRunCancelledDuringRetry(t *testing.T) {
	p := newFake(ai.OpenAI, true, errors.New("Connection timeout"))
	h := newHarness(t, sampleDay, "", p)
	h.r.Sleep = nil

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := h.r.Run(ctx, Options{})
	assert.Equal(t, ModeBasic, res.Mode)
	assert.Equal(t, 1, p.calls)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

// ============================================================
// Provider listing
// ============================================================

func TestListProviders(t *testing.T) {
	builders := []ai.Builder{
		{Name: ai.OpenAI, New: func() (ai.Provider, error) { return newFake(ai.OpenAI, true), nil }},
		{Name: ai.Ollama, New: func() (ai.Provider, error) { return newFake(ai.Ollama, false), nil }},
	}

	var out bytes.Buffer
	ListProviders(&out, ai.NewManager(context.Background(), builders, "ollama", zap.NewNop()))
	s := out.String()
	assert.Contains(t, s, "✅ openai")
	assert.Contains(t, s, "❌ anthropic")
	assert.Contains(t, s, "❌ ollama")
	assert.Contains(t, s, "ollama ❌ (not available)")

	out.Reset()
	ListProviders(&out, ai.NewManager(context.Background(), nil, "", zap.NewNop()))
	assert.Contains(t, out.String(), "No providers configured")
	assert.Contains(t, out.String(), "No default provider set")

	out.Reset()
	ListProviders(&out, ai.NewManager(context.Background(), nil, "mistral", zap.NewNop()))
	assert.Contains(t, out.String(), "Invalid Default Provider: mistral")
}
