package bhi

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Catalog is a SQLite database of images that have been encoded, keyed by
// the SHA-1 of the source file.
type Catalog struct {
	db *sql.DB
}

// Entry describes a single encoded image.
type Entry struct {
	SHA1   string
	Source string
	Output string
	Width  int
	Height int
	Colors int
}

// NewCatalog opens the catalog in file, creating it if necessary.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, source TEXT NOT NULL, output TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, colors INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record adds e to the catalog, replacing any existing entry for the same
// source checksum.
func (c *Catalog) Record(e Entry) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO conversion (sha1, source, output, width, height, colors) VALUES (?, ?, ?, ?, ?, ?)", e.SHA1, e.Source, e.Output, e.Width, e.Height, e.Colors); err != nil {
		return err
	}
	return nil
}

// Lookup returns the entry for the source checksum sha, or nil if there
// isn't one.
func (c *Catalog) Lookup(sha string) (*Entry, error) {
	e := Entry{SHA1: sha}
	switch err := c.db.QueryRow("SELECT source, output, width, height, colors FROM conversion WHERE sha1 = ?", sha).Scan(&e.Source, &e.Output, &e.Width, &e.Height, &e.Colors); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &e, nil
	default:
		return nil, err
	}
}
