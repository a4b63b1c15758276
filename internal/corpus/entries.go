// Package corpus holds the ordered question/answer collection shared by the
// storage backends, and the line-oriented text format they read and write.
package corpus

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"qabot/internal/domain"
)

// Entries is an insertion-ordered question to answer mapping.
// Setting an existing question replaces its answer without moving it.
type Entries struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewEntries returns an empty collection.
func NewEntries() *Entries {
	return &Entries{m: orderedmap.New[string, string]()}
}

// Undo reverts a single Set.
type Undo func()

// Set inserts or overwrites question and returns a function that reverts the change.
func (e *Entries) Set(question, answer string) Undo {
	prev, existed := e.m.Set(question, answer)
	if existed {
		return func() { e.m.Set(question, prev) }
	}
	return func() { e.m.Delete(question) }
}

// Get returns the answer stored for question.
func (e *Entries) Get(question string) (string, bool) { return e.m.Get(question) }

// Len returns the number of distinct questions.
func (e *Entries) Len() int { return e.m.Len() }

// Questions returns the questions in insertion order.
func (e *Entries) Questions() []string {
	out := make([]string, 0, e.m.Len())
	for p := e.m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// List returns the entries in insertion order.
func (e *Entries) List() []domain.QAEntry {
	out := make([]domain.QAEntry, 0, e.m.Len())
	for p := e.m.Oldest(); p != nil; p = p.Next() {
		out = append(out, domain.QAEntry{Question: p.Key, Answer: p.Value})
	}
	return out
}

// FromList builds a collection, later duplicates overwriting earlier answers in place.
func FromList(list []domain.QAEntry) *Entries {
	e := NewEntries()
	for _, qa := range list {
		e.Set(qa.Question, qa.Answer)
	}
	return e
}
