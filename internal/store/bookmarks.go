package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"roster-cli/internal/query"

	_ "modernc.org/sqlite"
)

const bookmarksFileName = "bookmarks.sqlite"

var ErrBookmarkNotFound = errors.New("bookmark not found")

type Bookmark struct {
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Bookmarks is a handle on bookmarks.sqlite. Close it when done.
type Bookmarks struct {
	db *sql.DB
}

func (s Store) OpenBookmarks(ctx context.Context) (*Bookmarks, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.Path(bookmarksFileName))
	if err != nil {
		return nil, err
	}
	// WAL lets the CLI read while a TUI session writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateBookmarks(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Bookmarks{db: db}, nil
}

func migrateBookmarks(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bookmarks (
			name TEXT PRIMARY KEY,
			location TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate bookmarks: %w", err)
		}
	}
	return nil
}

func (b *Bookmarks) Close() error { return b.db.Close() }

func normalizeBookmarkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("bookmark name is empty")
	}
	return name, nil
}

// Add saves location under name, replacing any bookmark with the same name. List
// locations are stored in canonical form.
func (b *Bookmarks) Add(ctx context.Context, name, location string) (Bookmark, error) {
	name, err := normalizeBookmarkName(name)
	if err != nil {
		return Bookmark{}, err
	}
	loc, err := query.Canonical(location)
	if err != nil {
		return Bookmark{}, err
	}
	now := time.Now().UTC()
	_, err = b.db.ExecContext(ctx, `
		INSERT INTO bookmarks (name, location, created_at_unixms, updated_at_unixms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET location = excluded.location, updated_at_unixms = excluded.updated_at_unixms
	`, name, loc, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return Bookmark{}, err
	}
	return b.Get(ctx, name)
}

func (b *Bookmarks) Get(ctx context.Context, name string) (Bookmark, error) {
	name, err := normalizeBookmarkName(name)
	if err != nil {
		return Bookmark{}, err
	}
	row := b.db.QueryRowContext(ctx, `SELECT name, location, created_at_unixms, updated_at_unixms FROM bookmarks WHERE name = ?`, name)
	bm, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Bookmark{}, fmt.Errorf("%w: %s", ErrBookmarkNotFound, name)
	}
	return bm, err
}

// List returns all bookmarks ordered by name.
func (b *Bookmarks) List(ctx context.Context) ([]Bookmark, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT name, location, created_at_unixms, updated_at_unixms FROM bookmarks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Bookmark{}
	for rows.Next() {
		bm, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, bm)
	}
	return out, rows.Err()
}

func (b *Bookmarks) Remove(ctx context.Context, name string) error {
	name, err := normalizeBookmarkName(name)
	if err != nil {
		return err
	}
	res, err := b.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrBookmarkNotFound, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookmark(r rowScanner) (Bookmark, error) {
	var (
		bm               Bookmark
		created, updated int64
	)
	if err := r.Scan(&bm.Name, &bm.Location, &created, &updated); err != nil {
		return Bookmark{}, err
	}
	bm.CreatedAt = time.UnixMilli(created).UTC()
	bm.UpdatedAt = time.UnixMilli(updated).UTC()
	return bm, nil
}
