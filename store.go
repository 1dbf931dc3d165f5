package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

var ErrNotFound = errors.New("drawing not found")

const gallerySchema = `
CREATE TABLE IF NOT EXISTS drawings (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    document   TEXT NOT NULL,
    ops        INTEGER NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS drawings_created ON drawings(created_at);
`

// createdFormat is fixed width so created_at sorts as text.
const createdFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Gallery keeps named drawings, each stored as its encoded document.
type Gallery struct {
	db *sql.DB
}

type GalleryEntry struct {
	ID        string
	Name      string
	Ops       int
	CreatedAt time.Time
}

// OpenGallery opens (creating if needed) the sqlite gallery at path.
func OpenGallery(ctx context.Context, path string) (*Gallery, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir gallery dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, gallerySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Gallery{db: db}, nil
}

func (g *Gallery) Close() error { return g.db.Close() }

// Save stores doc under name and returns the new entry's id.
func (g *Gallery) Save(ctx context.Context, name string, doc Document) (string, error) {
	data, err := MarshalDocument(doc)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = g.db.ExecContext(ctx, `
        INSERT INTO drawings (id, name, document, ops, created_at)
        VALUES (?, ?, ?, ?, ?)
    `, id, name, string(data), len(doc.Ops), time.Now().UTC().Format(createdFormat))
	if err != nil {
		return "", fmt.Errorf("insert drawing: %w", err)
	}
	return id, nil
}

// List returns every entry, newest first.
func (g *Gallery) List(ctx context.Context) ([]GalleryEntry, error) {
	rows, err := g.db.QueryContext(ctx, `
        SELECT id, name, ops, created_at
        FROM drawings
        ORDER BY created_at DESC, rowid DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []GalleryEntry
	for rows.Next() {
		var e GalleryEntry
		var created string
		if err := rows.Scan(&e.ID, &e.Name, &e.Ops, &created); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(createdFormat, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (g *Gallery) Load(ctx context.Context, id string) (Document, error) {
	var data string
	row := g.db.QueryRowContext(ctx, `SELECT document FROM drawings WHERE id = ?`, id)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Document{}, err
	}
	return UnmarshalDocument([]byte(data))
}

func (g *Gallery) Delete(ctx context.Context, id string) error {
	res, err := g.db.ExecContext(ctx, `DELETE FROM drawings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
