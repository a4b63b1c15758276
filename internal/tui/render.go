package tui

import (
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns a reply into display text.
type Renderer interface {
	Render(text string) string
}

// WidthSetter is implemented by renderers that wrap to the transcript width.
type WidthSetter interface {
	SetWidth(width int)
}

// PlainRenderer shows replies as they are.
type PlainRenderer struct{}

func (PlainRenderer) Render(text string) string { return text }

// MarkdownRenderer renders replies as markdown, keeping every line break of a
// multi-line answer as a hard break.
type MarkdownRenderer struct {
	r     *glamour.TermRenderer
	width int
}

const minWrapWidth = 20

// NewMarkdownRenderer creates a renderer wrapping at width columns.
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	m := &MarkdownRenderer{}
	if err := m.rebuild(width); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MarkdownRenderer) rebuild(width int) error {
	width = max(minWrapWidth, width)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	m.r, m.width = r, width
	return nil
}

// SetWidth re-creates the renderer for a new wrap width. On failure the
// previous width stays in effect.
func (m *MarkdownRenderer) SetWidth(width int) {
	if max(minWrapWidth, width) == m.width {
		return
	}
	if err := m.rebuild(width); err != nil {
		log.Printf("[ERROR] markdown renderer width %d: %v", width, err)
	}
}

// Width returns the current wrap width.
func (m *MarkdownRenderer) Width() int { return m.width }

func (m *MarkdownRenderer) Render(text string) string {
	out, err := m.r.Render(hardBreaks(text))
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// hardBreaks marks each newline as a markdown hard line break.
func hardBreaks(s string) string {
	return strings.ReplaceAll(s, "\n", "  \n")
}
