// Package file stores the corpus in a line-oriented text file that only ever grows.
package file

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"qabot/internal/corpus"
	"qabot/internal/domain"
)

// openFile is a package-level var to allow test injection.
var openFile = os.OpenFile

// Options configures how the corpus file is opened.
type Options struct {
	// Create makes a missing corpus file be created empty instead of failing.
	Create bool
}

// Store is a CorpusStore backed by a "Q: / A:" text file.
type Store struct {
	mu      sync.Mutex
	path    string
	entries *corpus.Entries
}

var _ domain.CorpusStore = (*Store)(nil)

// Open loads the corpus at path. It fails with domain.ErrCorpusUnavailable when
// the file cannot be read.
func Open(path string, opts Options) (*Store, error) {
	if opts.Create {
		if err := ensureFile(path); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
		}
	}
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	log.Printf("[INFO] loaded %d entries from %s", s.entries.Len(), path)
	return s, nil
}

func ensureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// Path returns the corpus file location.
func (s *Store) Path() string { return s.path }

// Reload re-reads the corpus file, replacing the in-memory entries.
func (s *Store) Reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	defer f.Close()
	list, err := corpus.Parse(f)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	s.mu.Lock()
	s.entries = corpus.FromList(list)
	s.mu.Unlock()
	return nil
}

func (s *Store) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Questions()
}

func (s *Store) Answer(question string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Get(question)
}

func (s *Store) Entries() []domain.QAEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.List()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Len()
}

// Append adds or overwrites an entry and appends its record to the file.
// If the write fails the in-memory change is reverted and the error wraps
// domain.ErrPersistenceFailed.
func (s *Store) Append(question, answer string) error {
	q := corpus.CleanQuestion(question)
	a := corpus.EncodeAnswer(strings.TrimSpace(answer))
	if q == "" || a == "" {
		return errors.New("question and answer must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	undo := s.entries.Set(q, a)
	if err := s.writeRecord(corpus.FormatRecord(q, a)); err != nil {
		undo()
		log.Printf("[ERROR] append to %s: %v", s.path, err)
		return fmt.Errorf("%w: %w", domain.ErrPersistenceFailed, err)
	}
	return nil
}

// writeRecord appends rec with a single write and syncs it, so a reader never
// sees half of a previous line merged into the new record.
func (s *Store) writeRecord(rec string) error {
	f, err := openFile(s.path, os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, size-1); err != nil && err != io.EOF {
			return err
		}
		if last[0] != '\n' {
			rec = "\n" + rec
		}
	}
	if _, err := f.Write([]byte(rec)); err != nil {
		return err
	}
	return f.Sync()
}

func (s *Store) Close() error { return nil }
