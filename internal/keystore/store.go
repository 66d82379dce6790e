// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keystore archives extracted answer keys in a SQLite database so
// keys from earlier runs can be listed and printed without the source
// document.
package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/answerkey/pkg/types"
)

const (
	dbFile     = "answerkeys.db"
	defaultDir = "answerkeys"
)

// ErrExamNotFound is returned by Load when no key is stored for the exam.
var ErrExamNotFound = errors.New("exam not found")

// ExamRecord describes one archived answer key.
type ExamRecord struct {
	ID          string
	SourcePath  string
	ExtractedAt time.Time
	Total       int
}

// Store manages the answer-key SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// Open opens or creates the database at cfg.Dir/answerkeys.db and creates
// the schema if it does not exist.
func Open(cfg types.KeyStoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating key store directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, dbFile)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS exams (
			id TEXT PRIMARY KEY,
			source_path TEXT,
			extracted_at TEXT,
			total INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			exam_id TEXT NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
			question INTEGER NOT NULL,
			answer TEXT NOT NULL,
			kind TEXT NOT NULL,
			PRIMARY KEY (exam_id, question)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores the answers for exam, replacing any key previously stored
// under the same ID. ExtractedAt defaults to the current time.
func (s *Store) Save(ctx context.Context, exam ExamRecord, answers []types.Answer) error {
	if exam.ID == "" {
		return fmt.Errorf("exam ID required")
	}
	if exam.ExtractedAt.IsZero() {
		exam.ExtractedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM answers WHERE exam_id = ?`, exam.ID); err != nil {
		return fmt.Errorf("clearing answers for %s: %w", exam.ID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO exams (id, source_path, extracted_at, total) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_path = excluded.source_path,
			extracted_at = excluded.extracted_at,
			total = excluded.total`,
		exam.ID, exam.SourcePath, exam.ExtractedAt.UTC().Format(time.RFC3339Nano), len(answers),
	); err != nil {
		return fmt.Errorf("saving exam %s: %w", exam.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO answers (exam_id, question, answer, kind) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range answers {
		if _, err := stmt.ExecContext(ctx, exam.ID, a.QuestionNumber, a.Answer, string(a.Kind())); err != nil {
			return fmt.Errorf("saving q%d for %s: %w", a.QuestionNumber, exam.ID, err)
		}
	}

	return tx.Commit()
}

// Load returns the stored answers for examID ordered by question number.
func (s *Store) Load(ctx context.Context, examID string) ([]types.Answer, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM exams WHERE id = ?`, examID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("looking up exam %s: %w", examID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%s: %w", examID, ErrExamNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT question, answer FROM answers WHERE exam_id = ? ORDER BY question`, examID)
	if err != nil {
		return nil, fmt.Errorf("querying answers for %s: %w", examID, err)
	}
	defer rows.Close()

	var answers []types.Answer
	for rows.Next() {
		var a types.Answer
		if err := rows.Scan(&a.QuestionNumber, &a.Answer); err != nil {
			return nil, fmt.Errorf("scanning answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// List returns every archived exam ordered by ID.
func (s *Store) List(ctx context.Context) ([]ExamRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_path, extracted_at, total FROM exams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing exams: %w", err)
	}
	defer rows.Close()

	var exams []ExamRecord
	for rows.Next() {
		var (
			rec ExamRecord
			ts  string
		)
		if err := rows.Scan(&rec.ID, &rec.SourcePath, &ts, &rec.Total); err != nil {
			return nil, fmt.Errorf("scanning exam: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.ExtractedAt = t
		}
		exams = append(exams, rec)
	}
	return exams, rows.Err()
}
