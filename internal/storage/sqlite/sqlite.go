// Package sqlite provides a SQLite-backed implementation of the
// storage.StudentStore interface using Go's standard database/sql package.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded: we never call anything from it directly.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/students-service/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete SQLite store.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at storagePath, creates the students
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(storagePath string) (*SQLite, error) {
	if dir := filepath.Dir(storagePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	// sql.Open does NOT open a real connection yet: it just validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent: safe to run on every
	// startup. If the table already exists nothing happens.
	//
	// Schema:
	//   id        : integer primary key, assigned by SQLite
	//   name      : student's full name
	//   birth_date: calendar date as YYYY-MM-DD text
	//   dni       : national identity document number, opaque
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			birth_date TEXT NOT NULL,
			dni        TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Save inserts one row and returns the record with its new ID.
// Values are bound through ? placeholders, never concatenated into SQL.
func (s *SQLite) Save(ctx context.Context, student types.Student) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO students (name, birth_date, dni) VALUES (?, ?, ?)",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("Save: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, student.Name, student.BirthDate, student.DNI)
	if err != nil {
		return types.Student{}, fmt.Errorf("Save: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, fmt.Errorf("Save: last insert id: %w", err)
	}

	student.ID = lastID
	return student, nil
}

// FindAll returns all student rows ordered by ID.
func (s *SQLite) FindAll(ctx context.Context) ([]types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, name, birth_date, dni FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("FindAll: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindAll: query: %w", err)
	}
	defer rows.Close()

	// Returning [] instead of null in JSON is better API behaviour.
	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student

		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.BirthDate,
			&student.DNI,
		); err != nil {
			return nil, fmt.Errorf("FindAll: scan row: %w", err)
		}

		students = append(students, student)
	}

	// rows.Err() captures any error that occurred during iteration.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FindAll: rows iteration: %w", err)
	}

	return students, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
