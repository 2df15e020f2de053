// Package sanitize applies the light input checks used before task and log
// text is stored.
package sanitize

import (
	"strings"
	"unicode/utf8"
)

// MaxLength is the longest accepted task or log text, in characters.
const MaxLength = 1000

var suspicious = []string{"<script", "javascript:", "drop table", "--", ";delete"}

// IsReasonable reports whether text is non-blank, within MaxLength and free of
// obvious injection markers.
func IsReasonable(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	if utf8.RuneCountInString(text) > MaxLength {
		return false
	}
	lower := strings.ToLower(text)
	for _, s := range suspicious {
		if strings.Contains(lower, s) {
			return false
		}
	}
	return true
}

// Clean trims surrounding whitespace and clips text to MaxLength characters.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > MaxLength {
		r := []rune(text)
		text = string(r[:MaxLength]) + "..."
	}
	return text
}
