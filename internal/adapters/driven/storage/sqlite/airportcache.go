// Package sqlite provides the SQLite-backed airport lookup cache.
// Airport reference data changes rarely, so cached keyword lookups let
// repeated find-airports calls skip the upstream API entirely.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
)

// Ensure AirportCache implements the interface.
var _ driven.AirportCache = (*AirportCache)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS airport_lookups (
	keyword   TEXT NOT NULL,
	position  INTEGER NOT NULL,
	iata      TEXT NOT NULL,
	name      TEXT NOT NULL,
	city      TEXT NOT NULL,
	country   TEXT NOT NULL,
	PRIMARY KEY (keyword, position)
);
`

// AirportCache is a SQLite-backed cache of airport keyword lookups.
type AirportCache struct {
	db   *sql.DB
	path string
}

// NewAirportCache opens (or creates) the cache database. If dataDir is empty,
// defaults to ~/.tripscout/data.
func NewAirportCache(dataDir string) (*AirportCache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tripscout", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "airports.db")

	// WAL mode for concurrent readers
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &AirportCache{db: db, path: dbPath}, nil
}

// Get returns the cached airports for a keyword, or domain.ErrNotFound.
func (c *AirportCache) Get(ctx context.Context, keyword string) ([]domain.Airport, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT iata, name, city, country FROM airport_lookups WHERE keyword = ? ORDER BY position`,
		keyword)
	if err != nil {
		return nil, fmt.Errorf("query airport cache: %w", err)
	}
	defer rows.Close()

	var airports []domain.Airport
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.IATA, &a.Name, &a.City, &a.Country); err != nil {
			return nil, fmt.Errorf("scan airport row: %w", err)
		}
		airports = append(airports, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate airport rows: %w", err)
	}
	if len(airports) == 0 {
		return nil, domain.ErrNotFound
	}
	return airports, nil
}

// Put stores the airports for a keyword, replacing any previous entry.
func (c *AirportCache) Put(ctx context.Context, keyword string, airports []domain.Airport) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM airport_lookups WHERE keyword = ?`, keyword); err != nil {
		return fmt.Errorf("clear previous entry: %w", err)
	}
	for i, a := range airports {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO airport_lookups (keyword, position, iata, name, city, country) VALUES (?, ?, ?, ?, ?, ?)`,
			keyword, i, a.IATA, a.Name, a.City, a.Country); err != nil {
			return fmt.Errorf("insert airport row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (c *AirportCache) Path() string {
	return c.path
}

// Close closes the database connection.
func (c *AirportCache) Close() error {
	return c.db.Close()
}
