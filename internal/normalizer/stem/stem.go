// Package stem reduces tokens with the Snowball English stemmer.
package stem

import (
	"github.com/kljensen/snowball/english"

	"qabot/internal/normalizer"
)

// Normalizer stems every token produced by normalizer.Tokenize.
type Normalizer struct{}

// New returns a stemming normalizer. It holds no state.
func New() *Normalizer { return &Normalizer{} }

// Name identifies the normalizer in config and logs.
func (n *Normalizer) Name() string { return "stem" }

// Normalize tokenizes text and replaces each token with its Snowball stem.
func (n *Normalizer) Normalize(text string) []string {
	tokens := normalizer.Tokenize(text)
	for i, tok := range tokens {
		tokens[i] = english.Stem(tok, false)
	}
	return tokens
}
