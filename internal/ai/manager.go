package ai

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Builder constructs one backend. A constructor error is logged and the
// backend is left out; it never aborts manager construction.
type Builder struct {
	Name string
	New  func() (Provider, error)
}

// Builders returns the four standard backends, in discovery order, configured
// from cfgs keyed by provider name.
func Builders(cfgs map[string]Config) []Builder {
	return []Builder{
		{Name: OpenAI, New: func() (Provider, error) { return NewOpenAI(cfgs[OpenAI]), nil }},
		{Name: Anthropic, New: func() (Provider, error) { return NewAnthropic(cfgs[Anthropic]), nil }},
		{Name: Gemini, New: func() (Provider, error) { return NewGemini(cfgs[Gemini]), nil }},
		{Name: Ollama, New: func() (Provider, error) { return NewOllama(cfgs[Ollama]), nil }},
	}
}

// Known reports whether name is one of the supported provider identifiers.
func Known(name string) bool {
	return slices.Contains(KnownProviders, strings.ToLower(strings.TrimSpace(name)))
}

// Manager holds the backends that passed their availability check.
type Manager struct {
	order       []string
	providers   map[string]Provider
	defaultName string
	log         *zap.Logger
}

// NewManager instantiates every builder in order and keeps the available
// ones. defaultName is the configured default provider, possibly empty.
func NewManager(ctx context.Context, builders []Builder, defaultName string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		providers:   make(map[string]Provider),
		defaultName: strings.ToLower(strings.TrimSpace(defaultName)),
		log:         log,
	}
	for _, b := range builders {
		p, err := b.New()
		if err != nil {
			log.Warn("failed to initialize provider", zap.String("provider", b.Name), zap.Error(err))
			continue
		}
		if p == nil || !p.IsAvailable(ctx) {
			log.Debug("provider not available", zap.String("provider", b.Name))
			continue
		}
		m.order = append(m.order, b.Name)
		m.providers[b.Name] = p
		log.Debug("provider initialized", zap.String("provider", b.Name), zap.String("model", p.Model()))
	}
	return m
}

// Available returns the available provider names in construction order.
func (m *Manager) Available() []string {
	return slices.Clone(m.order)
}

func (m *Manager) IsAvailable(name string) bool {
	_, ok := m.providers[strings.ToLower(name)]
	return ok
}

// DefaultName is the configured default provider name, lowercased.
func (m *Manager) DefaultName() string { return m.defaultName }

// Preferred names the provider Provider("") would return without logging,
// or "" when nothing is available.
func (m *Manager) Preferred() string {
	if m.IsAvailable(m.defaultName) {
		return m.defaultName
	}
	if len(m.order) > 0 {
		return m.order[0]
	}
	return ""
}

// Provider resolves a backend. A requested name must be known and available.
// Without one, the configured default is used when available, otherwise the
// first available backend. A nil Provider with a nil error means no backend
// is available at all.
func (m *Manager) Provider(name string) (Provider, error) {
	if name != "" {
		if key := strings.ToLower(strings.TrimSpace(name)); Known(key) {
			name = key
		} else {
			return nil, &Error{
				Message: fmt.Sprintf("Unsupported provider '%s'. Valid options: %s",
					name, strings.Join(KnownProviders, ", ")),
				Kind:     KindInvalidProvider,
				Provider: name,
			}
		}
		p, ok := m.providers[name]
		if !ok {
			return nil, &Error{
				Message:  fmt.Sprintf("Provider '%s' is not available. Check configuration.", name),
				Kind:     KindProviderUnavailable,
				Provider: name,
			}
		}
		return p, nil
	}

	if d := m.defaultName; d != "" {
		switch {
		case !Known(d):
			m.log.Warn(fmt.Sprintf("Invalid DEFAULT_PROVIDER '%s'. Valid options: %s",
				d, strings.Join(KnownProviders, ", ")))
		case m.IsAvailable(d):
			return m.providers[d], nil
		default:
			m.log.Warn(fmt.Sprintf("DEFAULT_PROVIDER '%s' is not available. Falling back to first available.", d))
		}
	}

	if len(m.order) == 0 {
		return nil, nil
	}
	return m.providers[m.order[0]], nil
}
