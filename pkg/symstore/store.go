// Package symstore persists scanned symbol tables to SQLite, so the
// identifiers discovered across source files can be inspected after the
// fact with ordinary SQL tooling.
package symstore

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/portugol-lang/portulex/pkg/portugol/lexer"
)

// Store wraps a SQLite database holding identifier occurrences.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path. Use ":memory:" for an
// in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open symbol store: %w", err)
	}

	st := &Store{db: db}
	if err := st.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return st, nil
}

// NewWithDB wraps an existing database connection. The caller keeps
// ownership of the connection.
func NewWithDB(db *sql.DB) (*Store, error) {
	st := &Store{db: db}
	if err := st.createTables(); err != nil {
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database.
func (st *Store) Close() error {
	return st.db.Close()
}

// createTables creates the occurrence table
func (st *Store) createTables() error {
	schema := `
		CREATE TABLE IF NOT EXISTS occurrences (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			name TEXT NOT NULL,
			line INTEGER NOT NULL,
			col INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_occurrences_name ON occurrences(name);
		CREATE INDEX IF NOT EXISTS idx_occurrences_source ON occurrences(source)
	`

	if _, err := st.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create symbol tables: %w", err)
	}

	return nil
}

// Save replaces the stored occurrences for source with the contents of the
// symbol table. Re-scanning the same source therefore never duplicates
// rows.
func (st *Store) Save(source string, table *lexer.SymbolTable) error {
	tx, err := st.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM occurrences WHERE source = ?`, source); err != nil {
		return fmt.Errorf("failed to clear old occurrences: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO occurrences (source, name, line, col) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, name := range table.Names() {
		for _, tok := range table.Occurrences(name) {
			if _, err := stmt.Exec(source, name, tok.Line, tok.Column); err != nil {
				return fmt.Errorf("failed to insert occurrence of %q: %w", name, err)
			}
		}
	}

	return tx.Commit()
}

// Symbols returns the distinct identifiers in the store, alphabetically.
func (st *Store) Symbols() ([]string, error) {
	rows, err := st.db.Query(`SELECT DISTINCT name FROM occurrences ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Occurrence is one stored identifier position.
type Occurrence struct {
	Source string
	Name   string
	Line   int
	Column int
}

// Occurrences returns every stored position of an identifier, in insert
// order.
func (st *Store) Occurrences(name string) ([]Occurrence, error) {
	rows, err := st.db.Query(
		`SELECT source, name, line, col FROM occurrences WHERE name = ? ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query occurrences: %w", err)
	}
	defer rows.Close()

	var occ []Occurrence
	for rows.Next() {
		var o Occurrence
		if err := rows.Scan(&o.Source, &o.Name, &o.Line, &o.Column); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		occ = append(occ, o)
	}

	return occ, rows.Err()
}
