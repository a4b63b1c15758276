// Package sqlite stores the corpus in a SQLite table using the pure-Go driver.
// Rows are read in insertion order and an upsert keeps the first-seen position
// of a re-taught question.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver

	"qabot/internal/corpus"
	"qabot/internal/domain"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `CREATE TABLE IF NOT EXISTS qa (
    seq      INTEGER PRIMARY KEY AUTOINCREMENT,
    question TEXT NOT NULL UNIQUE,
    answer   TEXT NOT NULL
);`

const upsert = `INSERT INTO qa(question, answer) VALUES(?, ?)
ON CONFLICT(question) DO UPDATE SET answer = excluded.answer`

// Store is a CorpusStore backed by a SQLite database.
type Store struct {
	mu      sync.Mutex
	db      *sql.DB
	entries *corpus.Entries
}

var _ domain.CorpusStore = (*Store)(nil)

// Open opens (creating if needed) the database at dsn and loads its entries.
// For an in-memory database pass ":memory:".
func Open(dsn string) (*Store, error) {
	db, err := openDB("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	s := &Store{db: db}
	if err := s.Reload(); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Printf("[INFO] loaded %d entries from sqlite %s", s.entries.Len(), dsn)
	return s, nil
}

// Reload re-reads every row ordered by insertion sequence.
func (s *Store) Reload() error {
	rows, err := s.db.Query(`SELECT question, answer FROM qa ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	defer rows.Close()

	var list []domain.QAEntry
	for rows.Next() {
		var qa domain.QAEntry
		if err := rows.Scan(&qa.Question, &qa.Answer); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
		}
		list = append(list, qa)
	}
	if err := rows.Err(); err != nil {
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

// Append upserts the entry in a transaction. On failure the in-memory change is
// reverted and the error wraps domain.ErrPersistenceFailed.
func (s *Store) Append(question, answer string) error {
	q := corpus.CleanQuestion(question)
	a := corpus.EncodeAnswer(strings.TrimSpace(answer))
	if q == "" || a == "" {
		return errors.New("question and answer must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	undo := s.entries.Set(q, a)
	if err := s.insert(context.Background(), []domain.QAEntry{{Question: q, Answer: a}}); err != nil {
		undo()
		log.Printf("[ERROR] sqlite append: %v", err)
		return fmt.Errorf("%w: %w", domain.ErrPersistenceFailed, err)
	}
	return nil
}

// Import seeds the table from a text corpus in the "Q: / A:" format and
// returns the number of records read.
func (s *Store) Import(r io.Reader) (int, error) {
	list, err := corpus.Parse(r)
	if err != nil {
		return 0, err
	}
	if err := s.insert(context.Background(), list); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrPersistenceFailed, err)
	}
	return len(list), s.Reload()
}

func (s *Store) insert(ctx context.Context, list []domain.QAEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, qa := range list {
		if _, err := stmt.ExecContext(ctx, qa.Question, qa.Answer); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) Close() error { return s.db.Close() }
