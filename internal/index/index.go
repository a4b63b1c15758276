// Package index finds the corpus question most similar to an utterance.
//
// The TF-IDF space is rebuilt from scratch on every query, over the corpus
// questions plus the candidate, so the cost of a query grows with the corpus
// vocabulary and size. For larger corpora the space could be cached and
// extended by one document per taught entry, invalidating the IDF weights on
// each change; that is an optimization only and would not change results.
package index

import (
	"errors"
	"fmt"
	"log"

	"qabot/internal/domain"
	"qabot/internal/embedding"
	"qabot/internal/embedding/tfidf"
	"qabot/internal/vectorstore"
	"qabot/internal/vectorstore/memory"
)

// TFIDF is a SimilarityIndex backed by a per-query TF-IDF vector space.
type TFIDF struct {
	normalizer domain.Normalizer
	stopwords  map[string]struct{}
	debug      bool
}

var _ domain.SimilarityIndex = (*TFIDF)(nil)

// NewTFIDF creates an index that normalizes with n and drops the given stop words.
func NewTFIDF(n domain.Normalizer, stopwords map[string]struct{}) *TFIDF {
	return &TFIDF{normalizer: n, stopwords: stopwords}
}

// SetDebug enables per-query match logging.
func (x *TFIDF) SetDebug(on bool) { x.debug = on }

// Query returns the index and cosine score of the question closest to candidate.
// Ties go to the earliest question. A best score of zero reports domain.NoMatch.
func (x *TFIDF) Query(questions []string, candidate string) (domain.Match, error) {
	noMatch := domain.Match{Index: domain.NoMatch}
	if len(questions) == 0 {
		return noMatch, nil
	}

	var emb embedding.Embedder = tfidf.NewEmbedder(x.normalizer, x.stopwords)
	space := make([]string, 0, len(questions)+1)
	space = append(space, questions...)
	space = append(space, candidate)
	if err := emb.Prepare(space); err != nil {
		if errors.Is(err, tfidf.ErrEmptyVocabulary) {
			return noMatch, nil
		}
		return noMatch, fmt.Errorf("prepare index: %w", err)
	}

	var store vectorstore.Storage = memory.NewStorage()
	if err := store.Init(emb.Dimension()); err != nil {
		return noMatch, err
	}
	docs := make([]domain.Document, len(questions))
	vectors := make([][]float64, len(questions))
	for i, q := range questions {
		vec, err := emb.Embed(q)
		if err != nil {
			return noMatch, err
		}
		docs[i] = domain.Document{Index: i, Text: q}
		vectors[i] = vec
	}
	if err := store.Upsert(docs, vectors); err != nil {
		return noMatch, err
	}

	qvec, err := emb.Embed(candidate)
	if err != nil {
		return noMatch, err
	}
	res, err := store.Search(qvec, 1)
	if err != nil {
		return noMatch, err
	}
	if len(res) == 0 || res[0].Score <= 0 {
		if x.debug {
			log.Printf("[DEBUG] no match for %q over %d questions", candidate, len(questions))
		}
		return noMatch, nil
	}
	best := res[0]
	if x.debug {
		log.Printf("[DEBUG] %q matched #%d %q score=%.3f", candidate, best.Document.Index, best.Document.Text, best.Score)
	}
	return domain.Match{Index: best.Document.Index, Score: best.Score}, nil
}
