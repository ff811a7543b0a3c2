// Package store handles SQLite persistence of the comma catalog.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/edotune/internal/comma"
	"github.com/verte-zerg/edotune/internal/ratio"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SourceBuiltin marks commas seeded from the shipped catalog.
const SourceBuiltin = "builtin"

// Store wraps SQLite access for the comma catalog.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS commas (
			id INTEGER PRIMARY KEY,
			ratio TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			limit_prime INTEGER NOT NULL,
			monzo TEXT NOT NULL,
			source TEXT NOT NULL,
			added_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_commas_limit ON commas(limit_prime);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of stored commas.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM commas`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Seed stores the shipped catalog when the table is empty. It returns the
// number of commas written.
func (s *Store) Seed(ctx context.Context) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	records, err := comma.DefaultRecords()
	if err != nil {
		return 0, err
	}
	return s.InsertCommas(ctx, records, SourceBuiltin)
}

// InsertCommas validates records and upserts them by ratio. Validation
// happens before anything is written.
func (s *Store) InsertCommas(ctx context.Context, records []comma.Record, source string) (n int, err error) {
	commas := make([]comma.Comma, 0, len(records))
	for i, rec := range records {
		c, err := comma.FromRecord(rec)
		if err != nil {
			return 0, fmt.Errorf("entry %d: %w", i+1, err)
		}
		commas = append(commas, c)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO commas (ratio, name, limit_prime, monzo, source, added_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(ratio) DO UPDATE SET
			name = excluded.name,
			limit_prime = excluded.limit_prime,
			monzo = excluded.monzo,
			source = excluded.source`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	addedAt := s.now().UTC().Format(time.RFC3339Nano)
	for _, c := range commas {
		if _, err = stmt.ExecContext(ctx, c.Ratio.String(), c.Name, c.Limit, c.Monzo.String(), source, addedAt); err != nil {
			return 0, err
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return len(commas), nil
}

// DeleteComma removes the comma with the given ratio. It reports whether a
// row was deleted.
func (s *Store) DeleteComma(ctx context.Context, r ratio.Ratio) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM commas WHERE ratio = ?`, r.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListCommas returns stored commas up to maxLimit (0 for all), by limit and
// insertion order.
func (s *Store) ListCommas(ctx context.Context, maxLimit int) ([]comma.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ratio, name, limit_prime, monzo FROM commas
		 WHERE (? = 0 OR limit_prime <= ?)
		 ORDER BY limit_prime ASC, id ASC`, maxLimit, maxLimit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []comma.Record
	for rows.Next() {
		var rec comma.Record
		var monzo string
		if err := rows.Scan(&rec.Ratio, &rec.Name, &rec.Limit, &monzo); err != nil {
			return nil, err
		}
		m, err := ratio.ParseMonzo(monzo)
		if err != nil {
			return nil, fmt.Errorf("comma %s: %w", rec.Ratio, err)
		}
		rec.Monzo = m
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Catalog loads every stored comma into a catalog. An empty store is seeded
// first, so removing every comma restores the shipped list.
func (s *Store) Catalog(ctx context.Context) (*comma.Catalog, error) {
	if _, err := s.Seed(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	records, err := s.ListCommas(ctx, 0)
	if err != nil {
		return nil, err
	}
	return comma.NewCatalog(records)
}
