// Package chat turns utterances into replies: fixed phrases first, then the
// best corpus match, falling back to asking the user to teach a new answer.
package chat

import (
	"fmt"
	"log"
	"strings"

	"qabot/internal/corpus"
	"qabot/internal/domain"
)

// State is the conversation state between turns.
type State int

const (
	// Idle interprets the next utterance as a query.
	Idle State = iota
	// AwaitingTeachAnswer interprets the next utterance as a decline or as the answer to learn.
	AwaitingTeachAnswer
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingTeachAnswer:
		return "awaiting-teach-answer"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Phrases are the fixed utterances recognized before any corpus lookup.
type Phrases struct {
	Exit    []string
	Thanks  []string
	Decline []string
}

// Messages are the fixed reply texts.
type Messages struct {
	Farewell   string
	Thanks     string
	NoMatch    string
	Declined   string
	Learned    string
	SaveFailed string
}

func DefaultPhrases() Phrases {
	return Phrases{
		Exit:    []string{"bye"},
		Thanks:  []string{"thanks", "thank you"},
		Decline: []string{"no"},
	}
}

func DefaultMessages() Messages {
	return Messages{
		Farewell:   "Bye! Take care.",
		Thanks:     "You are welcome.",
		NoMatch:    `I am sorry! I don't understand you. Would you like to teach me? Type the answer, or "no" to skip.`,
		Declined:   "Okay, skipping this for now.",
		Learned:    "Thank you for teaching me!",
		SaveFailed: "Sorry, I could not save that answer.",
	}
}

// Reply is the outcome of one turn.
type Reply struct {
	Text string
	// Exit asks the shell to stop its input loop.
	Exit bool
}

// Engine is the conversation state machine. It is not safe for concurrent use;
// shells feed it one utterance at a time.
type Engine struct {
	store   domain.CorpusStore
	index   domain.SimilarityIndex
	greeter *Greeter
	exit    map[string]struct{}
	thanks  map[string]struct{}
	decline map[string]struct{}
	msgs    Messages

	state   State
	pending string
}

// NewEngine creates an engine in the Idle state.
func NewEngine(store domain.CorpusStore, index domain.SimilarityIndex, greeter *Greeter, phrases Phrases, msgs Messages) *Engine {
	return &Engine{
		store:   store,
		index:   index,
		greeter: greeter,
		exit:    phraseSet(phrases.Exit),
		thanks:  phraseSet(phrases.Thanks),
		decline: phraseSet(phrases.Decline),
		msgs:    msgs,
	}
}

// State returns the current conversation state.
func (e *Engine) State() State { return e.state }

// Pending returns the question waiting for a taught answer, if any.
func (e *Engine) Pending() (string, bool) {
	return e.pending, e.state == AwaitingTeachAnswer
}

// Process handles one utterance. A blank utterance yields an empty reply and
// leaves the state untouched. A failed teach returns an error wrapping
// domain.ErrPersistenceFailed together with an apology reply.
func (e *Engine) Process(raw string) (Reply, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Reply{}, nil
	}
	key := canonical(text)

	if e.state == AwaitingTeachAnswer {
		return e.learn(key, text)
	}

	switch {
	case contains(e.exit, key):
		return Reply{Text: e.msgs.Farewell, Exit: true}, nil
	case contains(e.thanks, key):
		return Reply{Text: e.msgs.Thanks}, nil
	case e.greeter != nil && e.greeter.Detect(text):
		return Reply{Text: e.greeter.PickReply()}, nil
	}
	return e.answer(text)
}

func (e *Engine) learn(key, text string) (Reply, error) {
	question := e.pending
	e.state, e.pending = Idle, ""
	if contains(e.decline, key) {
		return Reply{Text: e.msgs.Declined}, nil
	}
	if err := e.store.Append(question, text); err != nil {
		return Reply{Text: e.msgs.SaveFailed}, fmt.Errorf("learn %q: %w", question, err)
	}
	log.Printf("[INFO] learned answer for %q", question)
	return Reply{Text: e.msgs.Learned}, nil
}

func (e *Engine) answer(text string) (Reply, error) {
	questions := e.store.Questions()
	m, err := e.index.Query(questions, text)
	if err != nil {
		return Reply{}, fmt.Errorf("query: %w", err)
	}
	if !m.Found() {
		e.state, e.pending = AwaitingTeachAnswer, text
		return Reply{Text: e.msgs.NoMatch}, nil
	}
	ans, ok := e.store.Answer(questions[m.Index])
	if !ok {
		return Reply{}, fmt.Errorf("query: question %q vanished from corpus", questions[m.Index])
	}
	return Reply{Text: corpus.DecodeAnswer(ans)}, nil
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
