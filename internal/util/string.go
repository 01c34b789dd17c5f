package util

import (
	"strings"

	"github.com/kapu/content-tagger-go/internal/constants"
)

// NormalizeText flattens newlines to spaces, trims, and cuts the text to
// maxLen runes (maxLen <= 0 means the default field limit). The cut is not
// grapheme aware and can split a multi-rune emoji sequence.
func NormalizeText(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = constants.TextLimits.MaxFieldLength
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if RuneLen(text) <= maxLen {
		return text
	}

	// trim again so a cut landing on whitespace stays a fixed point
	return strings.TrimSpace(Prefix(text, maxLen))
}

// Prefix returns the first n runes of s.
func Prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// RuneLen counts code points, not bytes.
func RuneLen(s string) int {
	return len([]rune(s))
}

// TruncateString truncates a string to maxRunes characters and appends "..." when cut.
func TruncateString(s string, maxRunes int) string {
	if RuneLen(s) <= maxRunes {
		return s
	}
	return Prefix(s, maxRunes) + "..."
}

// Normalize performs basic string normalization (lowercase + trim)
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Contains checks if a string slice contains a specific item
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
