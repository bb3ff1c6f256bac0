package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS prompt_cache (
	prompt_hash TEXT PRIMARY KEY,
	prompt      TEXT NOT NULL,
	response    TEXT NOT NULL,
	created_at  INTEGER NOT NULL
)`

// SQLite persists entries in a single-table database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the cache at path. ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	connStr := path
	if path == ":memory:" {
		connStr = "file::memory:?cache=shared"
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite cache: %w", err)
	}
	// One writer; SQLite serializes anyway and this avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, prompt string) (string, bool, error) {
	var stored, response string
	err := s.db.QueryRowContext(ctx,
		`SELECT prompt, response FROM prompt_cache WHERE prompt_hash = ?`, hashPrompt(prompt),
	).Scan(&stored, &response)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	// Hash collision guard
	if stored != prompt {
		return "", false, nil
	}
	return response, true, nil
}

func (s *SQLite) Set(ctx context.Context, prompt, response string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prompt_cache (prompt_hash, prompt, response, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(prompt_hash) DO UPDATE SET prompt = excluded.prompt, response = excluded.response, created_at = excluded.created_at`,
		hashPrompt(prompt), prompt, response, time.Now().Unix(),
	)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
