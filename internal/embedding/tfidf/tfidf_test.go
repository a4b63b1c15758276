package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qabot/internal/normalizer"
)

func TestEmbedder_PrepareErrors(t *testing.T) {
	e := NewEmbedder(normalizer.NewPlain(), EnglishStopwords())
	assert.ErrorIs(t, e.Prepare(nil), ErrEmptyCorpus)
	assert.ErrorIs(t, e.Prepare([]string{"the", "is it"}), ErrEmptyVocabulary)

	_, err := e.Embed("anything")
	assert.Error(t, err)
}

func TestEmbedder_VectorsAreUnitLength(t *testing.T) {
	e := NewEmbedder(normalizer.NewPlain(), EnglishStopwords())
	require.NoError(t, e.Prepare([]string{"open hours library", "library card", "weather today"}))
	assert.Equal(t, 6, e.Dimension())

	v, err := e.Embed("Library hours?")
	require.NoError(t, err)
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-12)
}

func TestEmbedder_UnknownTermsGiveZeroVector(t *testing.T) {
	e := NewEmbedder(normalizer.NewPlain(), nil)
	require.NoError(t, e.Prepare([]string{"alpha beta"}))

	v, err := e.Embed("gamma")
	require.NoError(t, err)
	for _, x := range v {
		assert.Zero(t, x)
	}
}

func TestEmbedder_RareTermsWeighMore(t *testing.T) {
	e := NewEmbedder(normalizer.NewPlain(), nil)
	require.NoError(t, e.Prepare([]string{"common rare", "common", "common"}))

	v, err := e.Embed("common rare")
	require.NoError(t, err)
	assert.Greater(t, v[e.vocabulary["rare"]], v[e.vocabulary["common"]])
}
