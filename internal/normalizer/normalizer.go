// Package normalizer turns free text into the token sequences compared by the
// similarity index. Base-form reduction lives in the lemma and stem subpackages.
package normalizer

import (
	"strings"
	"unicode"
)

// Tokenize lower-cases text, removes punctuation and symbols, and splits on whitespace.
// Punctuation is dropped rather than replaced, so "what's" becomes "whats".
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, lower)
	return strings.Fields(stripped)
}

// Plain normalizes without base-form reduction.
type Plain struct{}

// NewPlain creates a normalizer that only tokenizes.
func NewPlain() *Plain { return &Plain{} }

// Name returns the identifier of this normalizer implementation.
func (Plain) Name() string { return "plain" }

// Normalize returns the lower-cased, punctuation-free tokens of text.
func (Plain) Normalize(text string) []string { return Tokenize(text) }
