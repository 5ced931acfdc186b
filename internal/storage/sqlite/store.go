// Package sqlite stores the task table in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/tiwariParth/tasklist/internal/models"
	"github.com/tiwariParth/tasklist/internal/storage"
)

const schema = `CREATE TABLE IF NOT EXISTS tasks (
	position    INTEGER NOT NULL,
	description TEXT    NOT NULL,
	priority    TEXT    NOT NULL
)`

// Store implements storage.Backend over a single SQLite file. Row order is
// kept in the position column.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and ensures the
// tasks table exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrStorageConnection, err)
	}
	// One writer, one process.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", storage.ErrStorageConnection, err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

// Load returns the rows ordered by position.
func (s *Store) Load(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT description, priority FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var desc, label string
		if err := rows.Scan(&desc, &label); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		priority, err := models.ParsePriority(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrMalformed, err)
		}
		tasks = append(tasks, models.Task{Description: desc, Priority: priority})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// Save replaces every row inside one transaction.
func (s *Store) Save(ctx context.Context, tasks []models.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks (position, description, priority) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, task := range tasks {
		if _, err := stmt.ExecContext(ctx, i, task.Description, task.Priority.String()); err != nil {
			return fmt.Errorf("insert task %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
