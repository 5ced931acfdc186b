package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/tiwariParth/tasklist/internal/models"
	"github.com/tiwariParth/tasklist/internal/storage"
)

// MemoryStore implements the storage.Backend interface using in-memory storage
type MemoryStore struct {
	tasks    []models.Task
	saves    int
	mu       sync.RWMutex
	isActive bool

	// SaveErr, when set, is returned by Save instead of storing.
	SaveErr error
}

// NewMemoryStore creates a new instance of MemoryStore seeded with tasks
func NewMemoryStore(tasks ...models.Task) *MemoryStore {
	return &MemoryStore{
		tasks:    slices.Clone(tasks),
		isActive: true,
	}
}

// Load returns a copy of the stored table
func (m *MemoryStore) Load(ctx context.Context) ([]models.Task, error) {
	if err := m.checkActive(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tasks == nil {
		return []models.Task{}, nil
	}
	return slices.Clone(m.tasks), nil
}

// Save replaces the stored table
func (m *MemoryStore) Save(ctx context.Context, tasks []models.Task) error {
	if err := m.checkActive(); err != nil {
		return err
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = slices.Clone(tasks)
	m.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Close cleans up resources
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isActive = false
	return nil
}

func (m *MemoryStore) checkActive() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.isActive {
		return storage.ErrStorageConnection
	}
	return nil
}
