package chat

import (
	"math/rand"
	"strings"
	"unicode"
)

// Greeter recognizes greeting keywords and picks a canned greeting reply.
type Greeter struct {
	inputs    map[string]struct{}
	responses []string
	pick      func(n int) int
}

// NewGreeter builds a greeter. pick returns an index in [0, n); nil uses math/rand.
func NewGreeter(inputs, responses []string, pick func(n int) int) *Greeter {
	if pick == nil {
		pick = rand.Intn
	}
	return &Greeter{inputs: phraseSet(inputs), responses: responses, pick: pick}
}

// IsGreeting reports whether word is one of the greeting keywords.
func (g *Greeter) IsGreeting(word string) bool {
	_, ok := g.inputs[canonical(word)]
	return ok
}

// Detect reports whether the utterance is, or contains, a greeting keyword.
func (g *Greeter) Detect(utterance string) bool {
	if g.IsGreeting(utterance) {
		return true
	}
	for _, w := range strings.Fields(utterance) {
		if g.IsGreeting(strings.TrimFunc(w, unicode.IsPunct)) {
			return true
		}
	}
	return false
}

// PickReply returns one of the greeting responses.
func (g *Greeter) PickReply() string {
	if len(g.responses) == 0 {
		return ""
	}
	return g.responses[g.pick(len(g.responses))]
}

// canonical lower-cases s and trims surrounding space and trailing sentence punctuation.
func canonical(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.TrimRightFunc(s, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || unicode.IsSpace(r)
	})
}

func phraseSet(phrases []string) map[string]struct{} {
	m := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		if c := canonical(p); c != "" {
			m[c] = struct{}{}
		}
	}
	return m
}
