package memory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"qabot/internal/domain"
	"qabot/internal/vectorstore"
)

var (
	ErrInvalidDimension  = errors.New("invalid vector dimension")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Storage keeps document vectors in memory and ranks them by dot product.
// Vectors are expected to be L2-normalized, so the score is the cosine.
// Results with equal scores keep insertion order.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	entries   []entry
}

type entry struct {
	doc domain.Document
	vec []float64
}

var _ vectorstore.Storage = (*Storage)(nil)

func NewStorage() *Storage { return &Storage{} }

// Init fixes the vector dimension and drops anything stored before.
func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDimension, dimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.entries = nil
	return nil
}

// Upsert appends docs with their vectors. Nothing is stored if any vector
// has the wrong dimension.
func (s *Storage) Upsert(docs []domain.Document, vectors [][]float64) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("upsert: %d documents but %d vectors", len(docs), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range vectors {
		if len(v) != s.dimension {
			return fmt.Errorf("%w: document %d has %d, want %d", ErrDimensionMismatch, docs[i].Index, len(v), s.dimension)
		}
	}
	for i := range docs {
		s.entries = append(s.entries, entry{doc: docs[i], vec: vectors[i]})
	}
	return nil
}

// Search returns up to topK documents ordered by descending score.
// A non-positive topK returns every document.
func (s *Storage) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) > 0 && len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query has %d, want %d", ErrDimensionMismatch, len(vector), s.dimension)
	}
	results := make([]domain.SearchResult, len(s.entries))
	for i, e := range s.entries {
		results[i] = domain.SearchResult{Document: e.doc, Score: dot(e.vec, vector)}
	}
	sort.SliceStable(results, func(a, b int) bool { return results[a].Score > results[b].Score })
	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// Len reports how many documents are stored.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
