// apps/go-term/internal/daily/store.go
//
// Solution cache.
// Responsibilities:
//   - Remember the remote solution per day so later sessions skip the network.
//   - Open SQLite with a busy timeout and WAL journaling.
//   - Apply embedded migrations from sql/*.sql, recorded in _migrations.
//
// Only the day's solution is stored; nothing about play is kept.

package daily

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Cache stores one solution per date key (see DateKey).
type Cache interface {
	// Get returns the solution for date and whether one was stored.
	Get(ctx context.Context, date string) (string, bool, error)
	// Put stores the solution for date, replacing any previous value.
	Put(ctx context.Context, date, solution string) error
}

//go:embed sql/*.sql
var migrations embed.FS

// SQLiteCache is a Cache backed by a SQLite file.
type SQLiteCache struct{ db *sql.DB }

// OpenSQLiteCache opens (and creates if missing) the cache at dsn and applies
// migrations.
func OpenSQLiteCache(dsn string) (*SQLiteCache, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteCache{db: db}, nil
}

func (s *SQLiteCache) Get(ctx context.Context, date string) (string, bool, error) {
	var word string
	err := s.db.QueryRowContext(ctx,
		`SELECT solution FROM daily_solutions WHERE date=?`, date,
	).Scan(&word)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return word, true, nil
}

func (s *SQLiteCache) Put(ctx context.Context, date, solution string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO daily_solutions (date, solution, fetched_at)
        VALUES (?, ?, ?)
        ON CONFLICT(date) DO UPDATE SET solution=excluded.solution, fetched_at=excluded.fetched_at`,
		date, solution, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Close releases the database handle.
func (s *SQLiteCache) Close() error { return s.db.Close() }

/**
 * openDB opens the cache file, creating it and its parent directory.
 *
 * - One connection: a game reads and writes the cache once each.
 * - Busy timeout and WAL, so two games started together wait on each other.
 * - Pinged before returning, since sql.Open does not touch the file.
 *
 * @param path SQLite file path.
 * @returns *sql.DB ready for migrations.
 */
func openDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}

/**
 * migrate applies the embedded SQL migrations.
 *
 * - Each *.sql file in fsys runs once, in lexical order.
 * - A file and its _migrations row commit in one transaction.
 */
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Debug().Str("migration", f).Msg("applied")
	}
	return nil
}
