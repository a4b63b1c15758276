package tfidf

import (
	"errors"
	"math"
	"sort"

	"qabot/internal/domain"
	"qabot/internal/embedding"
)

var (
	// ErrEmptyCorpus is returned by Prepare when no documents are given.
	ErrEmptyCorpus = errors.New("empty corpus for TF-IDF prepare")
	// ErrEmptyVocabulary is returned by Prepare when every token is a stop word.
	ErrEmptyVocabulary = errors.New("no terms found in corpus")
)

// Embedder implements a TF-IDF vectorizer over normalized terms.
// It builds a vocabulary from the corpus and computes smoothed IDF values.
type Embedder struct {
	normalizer domain.Normalizer
	stopwords  map[string]struct{}
	vocabulary map[string]int
	idf        []float64
	dimension  int
	prepared   bool
}

var _ embedding.Embedder = (*Embedder)(nil)

// NewEmbedder creates an unprepared TF-IDF embedder. A nil stopwords map disables filtering.
func NewEmbedder(n domain.Normalizer, stopwords map[string]struct{}) *Embedder {
	return &Embedder{
		normalizer: n,
		stopwords:  stopwords,
		vocabulary: make(map[string]int),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "tfidf" }

// Prepare builds the vocabulary and IDF values from the provided corpus.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}
	// Build vocabulary and document frequencies
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range e.terms(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return ErrEmptyVocabulary
	}
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	N := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// Smoothed IDF
		e.idf[i] = math.Log((1+N)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.prepared = true
	return nil
}

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed computes the L2-normalized TF-IDF vector for text.
// Text without any vocabulary term yields the zero vector.
func (e *Embedder) Embed(text string) ([]float64, error) {
	if !e.prepared {
		return nil, errors.New("tfidf embedder not prepared")
	}
	vec := make([]float64, e.dimension)
	tf := make(map[int]int)
	for _, tok := range e.terms(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		vec[idx] = float64(count) * e.idf[idx]
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

func (e *Embedder) terms(text string) []string {
	tokens := e.normalizer.Normalize(text)
	if len(e.stopwords) == 0 {
		return tokens
	}
	out := tokens[:0]
	for _, t := range tokens {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}
