package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qabot/internal/chat"
	"qabot/internal/watch"
)

// ChatPort is the TUI-facing subset of the conversation engine.
type ChatPort interface {
	Process(utterance string) (chat.Reply, error)
	State() chat.State
}

// Reloader re-reads the corpus after an outside edit.
type Reloader interface {
	Reload() error
	Len() int
	Path() string
}

type corpusChangedMsg struct{}

type line struct {
	speaker string
	text    string
	bot     bool
}

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	engine   ChatPort
	botName  string
	renderer Renderer
	input    textinput.Model
	viewport viewport.Model
	lines    []line
	status   string
	ready    bool

	changes  <-chan watch.Event
	reloader Reloader
}

// Option customizes a Model.
type Option func(*Model)

// WithRenderer sets how bot replies are displayed.
func WithRenderer(r Renderer) Option {
	return func(m *Model) { m.renderer = r }
}

// WithReload reloads the corpus whenever an event arrives on changes.
func WithReload(changes <-chan watch.Event, r Reloader) Option {
	return func(m *Model) {
		m.changes = changes
		m.reloader = r
	}
}

// New creates a new TUI model instance.
func New(engine ChatPort, botName string, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask me something and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{
		engine:   engine,
		botName:  botName,
		renderer: PlainRenderer{},
		input:    ti,
		viewport: vp,
		status:   "Type bye to exit.",
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.lines = []line{{speaker: botName, bot: true, text: fmt.Sprintf("My name is %s. I will answer your queries. If you want to exit, type Bye!", botName)}}
	return m
}

// Init starts the cursor blink and, if configured, waits for corpus changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return corpusChangedMsg{}
	}
}

// Update handles key, window and reload events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input box, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		if r, ok := m.renderer.(WidthSetter); ok {
			r.SetWidth(m.viewport.Width - replyIndent(m.botName))
		}
		m.refresh()
		return m, nil
	case corpusChangedMsg:
		if m.reloader != nil {
			if err := m.reloader.Reload(); err != nil {
				m.status = "Reload failed: " + err.Error()
			} else {
				m.status = fmt.Sprintf("Reloaded %s (%d entries).", m.reloader.Path(), m.reloader.Len())
			}
		}
		return m, m.waitForChange()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()
	m.lines = append(m.lines, line{speaker: "You", text: text})

	reply, err := m.engine.Process(text)
	if reply.Text != "" {
		m.lines = append(m.lines, line{speaker: m.botName, bot: true, text: reply.Text})
	}
	switch {
	case err != nil:
		m.status = "Error: " + err.Error()
	case m.engine.State() == chat.AwaitingTeachAnswer:
		m.status = `Teaching: type the answer, or "no" to skip.`
	default:
		m.status = "Type bye to exit."
	}
	m.refresh()
	if reply.Exit {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the transcript, input box and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render(m.botName)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

// replyIndent is the width taken by the speaker label in front of a reply.
func replyIndent(botName string) int {
	return lipgloss.Width(botLabelStyle.Render(botName+":")) + 1
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for i, l := range m.lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if l.bot {
			b.WriteString(botLabelStyle.Render(l.speaker + ":"))
			b.WriteString(" ")
			b.WriteString(m.renderer.Render(l.text))
		} else {
			b.WriteString(userLabelStyle.Render(l.speaker + ":"))
			b.WriteString(" ")
			b.WriteString(l.text)
		}
	}
	return b.String()
}

var (
	headerStyle        = lipgloss.NewStyle().Bold(true)
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	botLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)
