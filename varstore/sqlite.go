package varstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a variable store kept in an SQLite database. Lookups that fail
// because of a database error report the name as unbound; use Get to see
// the error.
type SQLite struct {
	db *sql.DB
}

// Open opens or creates the database at path and creates the variables table
// if it does not exist.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open variable database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("couldn't connect to variable database: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate creates the variables table.
func (s *SQLite) Migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS variables (
		name TEXT PRIMARY KEY,
		value REAL NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("couldn't create variables table: %w", err)
	}
	return nil
}

func (s *SQLite) put(name string, value float64) error {
	_, err := s.db.Exec(
		`INSERT INTO variables (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("couldn't store %s: %w", name, err)
	}
	return nil
}

// Define binds name to value, replacing any previous binding.
func (s *SQLite) Define(name string, value float64) error {
	if err := checkDefine(name, value); err != nil {
		return err
	}
	return s.put(name, value)
}

// Delete unbinds name.
func (s *SQLite) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM variables WHERE name = ?", name); err != nil {
		return fmt.Errorf("couldn't delete %s: %w", name, err)
	}
	return nil
}

// Clear unbinds all variables. The constants and the answer remain.
func (s *SQLite) Clear() error {
	if _, err := s.db.Exec("DELETE FROM variables WHERE name != ?", Answer); err != nil {
		return fmt.Errorf("couldn't clear variables: %w", err)
	}
	return nil
}

// SetAnswer sets the answer slot.
func (s *SQLite) SetAnswer(value float64) error {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return fmt.Errorf("%w: %s = %v", ErrInvalidValue, Answer, value)
	}
	return s.put(Answer, value)
}

// Get returns the value bound to name.
func (s *SQLite) Get(ctx context.Context, name string) (float64, bool, error) {
	if v, ok := constants[name]; ok {
		return v, true, nil
	}
	var v float64
	err := s.db.QueryRowContext(ctx, "SELECT value FROM variables WHERE name = ?", name).Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("couldn't look up %s: %w", name, err)
	}
	return v, true, nil
}

// Lookup returns the value bound to name.
func (s *SQLite) Lookup(name string) (float64, bool) {
	v, ok, err := s.Get(context.Background(), name)
	if err != nil {
		return 0, false
	}
	return v, ok
}

// Names returns every bound name in sorted order, including the constants.
// If the database cannot be read, only the constants are listed.
func (s *SQLite) Names() []string {
	all := Constants()
	rows, err := s.db.Query("SELECT name, value FROM variables")
	if err != nil {
		return sorted(all)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var v float64
		if err := rows.Scan(&name, &v); err != nil {
			break
		}
		all[name] = v
	}
	return sorted(all)
}

var _ Store = (*SQLite)(nil)
