// Package lemma reduces tokens to their dictionary base form with an English lemmatizer.
package lemma

import (
	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"qabot/internal/normalizer"
)

// Normalizer lemmatizes every token produced by normalizer.Tokenize.
// Words missing from the dictionary pass through unchanged.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
}

// New loads the English dictionary and returns a lemmatizing normalizer.
func New() (*Normalizer, error) {
	l, err := golem.New(en.New())
	if err != nil {
		return nil, err
	}
	return &Normalizer{lemmatizer: l}, nil
}

// Name returns the identifier of this normalizer implementation.
func (n *Normalizer) Name() string { return "lemma" }

// Normalize tokenizes text and lemmatizes each token.
func (n *Normalizer) Normalize(text string) []string {
	tokens := normalizer.Tokenize(text)
	for i, tok := range tokens {
		tokens[i] = n.lemmatizer.Lemma(tok)
	}
	return tokens
}
