package storage

import (
	"context"
	"errors"

	"github.com/tiwariParth/tasklist/internal/models"
)

// Common errors that can be returned by any storage implementation
var (
	ErrMalformed         = errors.New("malformed task table")
	ErrStorageConnection = errors.New("storage connection error")
)

// Columns is the persisted column order. The header row is written first.
var Columns = []string{"description", "priority"}

// Backend persists the full ordered task table. Save always replaces the
// whole table; there are no partial updates.
type Backend interface {
	// Load returns the persisted rows in order. A store that has never
	// been written returns an empty slice and no error.
	Load(ctx context.Context) ([]models.Task, error)

	// Save overwrites the persisted table with tasks.
	Save(ctx context.Context, tasks []models.Task) error

	// Close releases any held resources.
	Close() error
}
