// Package embedding defines how question text becomes a vector.
package embedding

// Embedder maps question text into a vector space fitted over a set of
// questions. Prepare must be called before Dimension or Embed.
type Embedder interface {
	Name() string
	Prepare(questions []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}
