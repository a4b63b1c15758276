package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qabot/internal/domain"
)

func TestEntries_OverwriteKeepsPosition(t *testing.T) {
	e := FromList([]domain.QAEntry{
		{Question: "a", Answer: "1"},
		{Question: "b", Answer: "2"},
		{Question: "a", Answer: "3"},
	})
	assert.Equal(t, []string{"a", "b"}, e.Questions())
	ans, ok := e.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "3", ans)
}

func TestEntries_Undo(t *testing.T) {
	e := NewEntries()
	e.Set("a", "1")
	undoNew := e.Set("b", "2")
	undoOverwrite := e.Set("a", "9")

	undoOverwrite()
	ans, _ := e.Get("a")
	assert.Equal(t, "1", ans)

	undoNew()
	assert.Equal(t, []string{"a"}, e.Questions())
	assert.Equal(t, 1, e.Len())
}

func TestEntries_ListMatchesQuestions(t *testing.T) {
	e := NewEntries()
	e.Set("x", "1")
	e.Set("y", "2")
	list := e.List()
	for i, q := range e.Questions() {
		assert.Equal(t, q, list[i].Question)
	}
}
