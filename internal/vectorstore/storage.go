package vectorstore

import "qabot/internal/domain"

// Storage holds document vectors and supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(docs []domain.Document, vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.SearchResult, error)
	Clear() error
}
