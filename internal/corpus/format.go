package corpus

import (
	"bufio"
	"io"
	"strings"

	"qabot/internal/domain"
)

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	// NewlineEscape is the two-character sequence standing for a line break inside a stored answer.
	NewlineEscape = `\n`
)

// EncodeAnswer replaces real line breaks with NewlineEscape.
func EncodeAnswer(answer string) string {
	answer = strings.ReplaceAll(answer, "\r\n", "\n")
	return strings.ReplaceAll(answer, "\n", NewlineEscape)
}

// DecodeAnswer expands NewlineEscape back into real line breaks.
func DecodeAnswer(answer string) string {
	return strings.ReplaceAll(answer, NewlineEscape, "\n")
}

// CleanQuestion trims a question and folds any line breaks into spaces so it fits on one line.
func CleanQuestion(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

// Parse reads records in the "Q: ... / A: ..." line format.
//
// A "Q:" line starts a record. "A:" lines and unprefixed lines that follow are
// answer text, joined with single spaces; blank lines are skipped. Lines before
// the first question are ignored. A record whose "A:" line is present but empty
// is kept with an empty answer. A record with no answer text at the end of the
// input, or with no "A:" line at all, is what an interrupted append leaves
// behind and is dropped.
func Parse(r io.Reader) ([]domain.QAEntry, error) {
	var (
		out       []domain.QAEntry
		question  string
		answer    []string
		active    bool
		sawAnswer bool
	)
	flush := func(atEOF bool) {
		keep := len(answer) > 0 || (sawAnswer && !atEOF)
		if active && question != "" && keep {
			out = append(out, domain.QAEntry{Question: question, Answer: strings.Join(answer, " ")})
		}
		answer, sawAnswer = nil, false
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, questionPrefix):
			flush(false)
			question = CleanQuestion(line[len(questionPrefix):])
			active = true
		case !active:
			continue
		case strings.HasPrefix(line, answerPrefix):
			sawAnswer = true
			if text := strings.TrimSpace(line[len(answerPrefix):]); text != "" {
				answer = append(answer, text)
			}
		case line != "":
			answer = append(answer, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush(true)
	return out, nil
}

// FormatRecord renders a single record exactly as it is appended to a corpus file.
// answer must already be encoded.
func FormatRecord(question, answer string) string {
	return questionPrefix + " " + question + "\n" + answerPrefix + " " + answer + "\n"
}
