// Package store keeps submitted job requests so their posters can be
// rebuilt later.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/novotemporh/cartaz/poster"
)

// ErrNotFound is returned for unknown request IDs.
var ErrNotFound = errors.New("request not found")

// SQLiteStore persists request records in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the requests table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS requests (
		id            TEXT PRIMARY KEY,
		code          TEXT NOT NULL DEFAULT '',
		title         TEXT NOT NULL DEFAULT '',
		contract      TEXT NOT NULL DEFAULT '',
		location      TEXT NOT NULL DEFAULT '',
		requirements  TEXT NOT NULL DEFAULT '',
		accessibility INTEGER NOT NULL DEFAULT 0,
		contact_kind  TEXT NOT NULL DEFAULT '',
		contact_value TEXT NOT NULL DEFAULT '',
		variant       TEXT NOT NULL DEFAULT '',
		image_uri     TEXT NOT NULL DEFAULT '',
		created_at    INTEGER NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating requests table: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Save inserts r, or replaces the row with the same ID. A missing ID or
// creation time is filled in; the stored record is returned.
func (s *SQLiteStore) Save(ctx context.Context, r poster.RequestRecord) (poster.RequestRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Millisecond)

	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO requests
		(id, code, title, contract, location, requirements, accessibility,
		 contact_kind, contact_value, variant, image_uri, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Code, r.Title, r.ContractLabel, r.Location, r.Requirements, r.Accessibility,
		r.ContactKind, r.ContactValue, r.Variant, r.ImageURI, r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return r, fmt.Errorf("saving request %s: %w", r.ID, err)
	}
	return r, nil
}

const selectColumns = `SELECT id, code, title, contract, location, requirements, accessibility,
	contact_kind, contact_value, variant, image_uri, created_at FROM requests`

// Get returns the request with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (poster.RequestRecord, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("request %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return r, fmt.Errorf("loading request %s: %w", id, err)
	}
	return r, nil
}

// List returns up to limit requests, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]poster.RequestRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY created_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	defer rows.Close()

	var out []poster.RequestRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("listing requests: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	return out, nil
}

// Delete removes a request. Deleting an unknown ID returns ErrNotFound.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM requests WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting request %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("request %s: %w", id, ErrNotFound)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (poster.RequestRecord, error) {
	var (
		r       poster.RequestRecord
		created int64
	)
	err := sc.Scan(&r.ID, &r.Code, &r.Title, &r.ContractLabel, &r.Location, &r.Requirements, &r.Accessibility,
		&r.ContactKind, &r.ContactValue, &r.Variant, &r.ImageURI, &created)
	if err != nil {
		return r, err
	}
	r.CreatedAt = time.UnixMilli(created).UTC()
	return r, nil
}
