package domain

import "errors"

var (
	// ErrCorpusUnavailable is returned when the corpus source cannot be opened.
	ErrCorpusUnavailable = errors.New("corpus unavailable")
	// ErrPersistenceFailed is returned when a taught entry could not be written durably.
	ErrPersistenceFailed = errors.New("persistence failed")
)

// NoMatch is the Match.Index reported when no corpus question shares a term with the query.
const NoMatch = -1

// QAEntry is a single known question and its stored answer.
// Answer keeps line breaks encoded as the two-character escape `\n`.
type QAEntry struct {
	Question string
	Answer   string
}

// Document is one text indexed by the similarity search, addressed by its corpus position.
type Document struct {
	Index int
	Text  string
}

// SearchResult represents a matching document with a relevance score.
type SearchResult struct {
	Document Document
	Score    float64
}

// Match is the single best corpus question for a query.
type Match struct {
	Index int
	Score float64
}

// Found reports whether the match points at a corpus question.
func (m Match) Found() bool { return m.Index != NoMatch }

// Normalizer turns raw text into a canonical token sequence.
// The same normalizer must be applied to documents and queries.
type Normalizer interface {
	Name() string
	Normalize(text string) []string
}

// CorpusStore owns the ordered question/answer collection and its durable storage.
// Questions is always index-aligned with the insertion order of the entries.
type CorpusStore interface {
	Questions() []string
	Answer(question string) (string, bool)
	Entries() []QAEntry
	Len() int
	Append(question, answer string) error
	Reload() error
	Close() error
}

// SimilarityIndex finds the best matching corpus question for a candidate.
type SimilarityIndex interface {
	Query(questions []string, candidate string) (Match, error)
}
