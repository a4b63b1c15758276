package file

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qabot/internal/corpus"
	"qabot/internal/domain"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "mychat.txt")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestOpen_Missing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nope.txt")
	_, err := Open(p, Options{})
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestOpen_CreateMissing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "new.txt")
	s, err := Open(p, Options{Create: true})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, p, s.Path())
	assert.FileExists(t, p)
}

func TestOpen_LoadsInOrder(t *testing.T) {
	p := writeCorpus(t, "Q: what is your name\nA: I am Nexora\nQ: hours\nA: nine\nto five\n")
	s, err := Open(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"what is your name", "hours"}, s.Questions())
	ans, ok := s.Answer("hours")
	require.True(t, ok)
	assert.Equal(t, "nine to five", ans)
}

func TestAppend_RoundTrip(t *testing.T) {
	p := writeCorpus(t, "Q: a\nA: 1\n")
	s, err := Open(p, Options{})
	require.NoError(t, err)

	require.NoError(t, s.Append("weather today", "it is sunny\nand warm"))
	assert.Equal(t, []string{"a", "weather today"}, s.Questions())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "Q: a\nA: 1\nQ: weather today\nA: it is sunny\\nand warm\n", string(data))

	reloaded, err := Open(p, Options{})
	require.NoError(t, err)
	ans, ok := reloaded.Answer("weather today")
	require.True(t, ok)
	assert.Equal(t, "it is sunny\nand warm", corpus.DecodeAnswer(ans))
}

func TestAppend_MissingTrailingNewline(t *testing.T) {
	p := writeCorpus(t, "Q: a\nA: 1")
	s, err := Open(p, Options{})
	require.NoError(t, err)
	require.NoError(t, s.Append("b", "2"))

	reloaded, err := Open(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, []domain.QAEntry{{Question: "a", Answer: "1"}, {Question: "b", Answer: "2"}}, reloaded.Entries())
}

func TestAppend_DuplicateOverwritesInPlace(t *testing.T) {
	p := writeCorpus(t, "Q: a\nA: 1\nQ: b\nA: 2\n")
	s, err := Open(p, Options{})
	require.NoError(t, err)
	require.NoError(t, s.Append("a", "3"))
	assert.Equal(t, []string{"a", "b"}, s.Questions())

	reloaded, err := Open(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, []domain.QAEntry{{Question: "a", Answer: "3"}, {Question: "b", Answer: "2"}}, reloaded.Entries())
}

func TestAppend_FailureRollsBack(t *testing.T) {
	p := writeCorpus(t, "Q: a\nA: 1\n")
	s, err := Open(p, Options{})
	require.NoError(t, err)

	openFile = func(string, int, os.FileMode) (*os.File, error) { return nil, errors.New("disk full") }
	t.Cleanup(func() { openFile = os.OpenFile })

	err = s.Append("b", "2")
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
	assert.Equal(t, []string{"a"}, s.Questions())

	err = s.Append("a", "changed")
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
	ans, _ := s.Answer("a")
	assert.Equal(t, "1", ans)
}

func TestAppend_RejectsEmpty(t *testing.T) {
	p := writeCorpus(t, "")
	s, err := Open(p, Options{})
	require.NoError(t, err)
	assert.Error(t, s.Append("  ", "x"))
	assert.Error(t, s.Append("q", " \n "))
	assert.Equal(t, 0, s.Len())
}

func TestReload_TornAppendIsRecoverable(t *testing.T) {
	p := writeCorpus(t, "Q: a\nA: 1\nQ: half written")
	s, err := Open(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, s.Questions())

	require.NoError(t, s.Append("b", "2"))
	require.NoError(t, s.Reload())
	assert.Equal(t, []string{"a", "b"}, s.Questions())
}
