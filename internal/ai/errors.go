package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a provider failure.
type Kind string

const (
	KindInvalidProvider     Kind = "invalid_provider"
	KindProviderUnavailable Kind = "provider_unavailable"
	KindRateLimit           Kind = "rate_limit"
	KindQuotaExceeded       Kind = "quota_exceeded"
	KindAuth                Kind = "auth_error"
	KindModelNotFound       Kind = "model_not_found"
	KindNetwork             Kind = "network_error"
	KindGeneric             Kind = "generic"
)

// Error is a classified provider failure.
type Error struct {
	Message  string
	Kind     Kind
	Provider string
	Err      error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindGeneric when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}

type rule struct {
	kind    Kind
	markers []string
	all     bool
	message func(provider, model string) string
}

// Checked in order; the first match wins.
var rules = []rule{
	{
		kind:    KindRateLimit,
		markers: []string{"rate limit", "429"},
		message: func(p, _ string) string {
			return fmt.Sprintf("Rate limit exceeded for %s. Please try again later.", p)
		},
	},
	{
		kind:    KindQuotaExceeded,
		markers: []string{"quota", "billing"},
		message: func(p, _ string) string {
			return fmt.Sprintf("API quota exceeded for %s. Check your billing.", p)
		},
	},
	{
		kind:    KindAuth,
		markers: []string{"authentication", "401", "api key"},
		message: func(p, _ string) string {
			return fmt.Sprintf("Authentication failed for %s. Check your API key.", p)
		},
	},
	{
		kind:    KindModelNotFound,
		markers: []string{"model", "not found"},
		all:     true,
		message: func(p, m string) string {
			return fmt.Sprintf("Model '%s' not found for %s. Check model name.", m, p)
		},
	},
	{
		kind:    KindNetwork,
		markers: []string{"network", "connection", "timeout"},
		message: func(p, _ string) string {
			return fmt.Sprintf("Network error connecting to %s. Check your connection.", p)
		},
	},
}

func (r rule) matches(text string) bool {
	for _, m := range r.markers {
		found := strings.Contains(text, m)
		if r.all && !found {
			return false
		}
		if !r.all && found {
			return true
		}
	}
	return r.all
}

// Classify maps a raw backend failure onto a Kind by looking for marker
// substrings in its text. An *Error is returned unchanged.
func Classify(provider, model string, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	text := strings.ToLower(err.Error())
	for _, r := range rules {
		if r.matches(text) {
			return &Error{
				Message:  r.message(provider, model),
				Kind:     r.kind,
				Provider: provider,
				Err:      err,
			}
		}
	}
	return &Error{
		Message:  fmt.Sprintf("Error with %s: %v", provider, err),
		Kind:     KindGeneric,
		Provider: provider,
		Err:      err,
	}
}
