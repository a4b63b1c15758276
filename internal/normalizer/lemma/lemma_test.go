package lemma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_Plurals(t *testing.T) {
	n, err := New()
	require.NoError(t, err)

	assert.Equal(t, n.Normalize("cat"), n.Normalize("Cats!"))
	assert.Equal(t, n.Normalize("book"), n.Normalize("books"))
}

func TestNormalizer_Deterministic(t *testing.T) {
	n, err := New()
	require.NoError(t, err)

	in := "What are the library opening hours?"
	assert.Equal(t, n.Normalize(in), n.Normalize(in))
	assert.Equal(t, n.Normalize("hello"), n.Normalize("Hello!"))
}

func TestNormalizer_UnknownWordPassesThrough(t *testing.T) {
	n, err := New()
	require.NoError(t, err)

	assert.Equal(t, []string{"nexora"}, n.Normalize("Nexora"))
}
