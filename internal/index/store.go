// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index maintains a SQLite catalog of documents written across
// conversion runs. The catalog lets a user answer "which export produced
// this file, and when" without keeping every manifest around.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/transcript-export/internal/manifest"
	"github.com/pdiddy/transcript-export/pkg/types"
)

// DefaultDBFile is the catalog filename used when no path is configured.
const DefaultDBFile = "index.db"

// Store manages the catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog at cfg.DBPath (DefaultDBFile when
// unset), creating parent directories and the schema as needed.
func Open(cfg types.CatalogConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = DefaultDBFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			input TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			title TEXT NOT NULL,
			filename TEXT,
			turns INTEGER NOT NULL,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_title ON documents(title)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Document is one catalog row joined with its run metadata.
type Document struct {
	RunID     string
	Title     string
	Filename  string
	Turns     int
	Status    types.DocumentStatus
	WrittenAt time.Time
}

// RecordRun inserts a run and all its document records in one transaction.
func (s *Store) RecordRun(ctx context.Context, m manifest.Manifest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, input, output_dir, created_at) VALUES (?, ?, ?, ?)`,
		m.RunID, m.Input, m.OutputDir, m.Timestamp.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", m.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (run_id, title, filename, turns, status, error) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range m.Documents {
		if _, err := stmt.ExecContext(ctx, m.RunID, d.Title, d.Filename, d.Turns, string(d.Status), d.Error); err != nil {
			return fmt.Errorf("inserting document %s: %w", d.Filename, err)
		}
	}

	return tx.Commit()
}

// List returns all cataloged documents, newest run first.
func (s *Store) List(ctx context.Context) ([]Document, error) {
	return s.query(ctx, `
		SELECT d.run_id, d.title, d.filename, d.turns, d.status, r.created_at
		FROM documents d JOIN runs r ON r.id = d.run_id
		ORDER BY r.created_at DESC, d.rowid`)
}

// Search returns cataloged documents whose title contains term,
// case-insensitively, newest run first.
func (s *Store) Search(ctx context.Context, term string) ([]Document, error) {
	return s.query(ctx, `
		SELECT d.run_id, d.title, d.filename, d.turns, d.status, r.created_at
		FROM documents d JOIN runs r ON r.id = d.run_id
		WHERE d.title LIKE ? ESCAPE '\'
		ORDER BY r.created_at DESC, d.rowid`,
		"%"+escapeLike(term)+"%")
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var status, createdAt string
		if err := rows.Scan(&d.RunID, &d.Title, &d.Filename, &d.Turns, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		d.Status = types.DocumentStatus(status)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			d.WrittenAt = t
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// escapeLike escapes LIKE wildcards in a user-supplied search term.
func escapeLike(term string) string {
	r := ""
	for _, c := range term {
		switch c {
		case '%', '_', '\\':
			r += `\` + string(c)
		default:
			r += string(c)
		}
	}
	return r
}
