package task

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/tiwariParth/tasklist/internal/models"
	"github.com/tiwariParth/tasklist/internal/storage"
)

// SortOrder selects how SortByPriority orders rows.
type SortOrder string

const (
	// SortLexical orders by the priority label as a plain string:
	// High, Low, Medium.
	SortLexical SortOrder = "lexical"
	// SortSeverity orders by severity: High, Medium, Low.
	SortSeverity SortOrder = "severity"
)

// ParseSortOrder validates a configured sort order. Empty means lexical.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", SortLexical:
		return SortLexical, nil
	case SortSeverity:
		return SortSeverity, nil
	}
	return "", fmt.Errorf("unknown sort order %q (want %s or %s)", s, SortLexical, SortSeverity)
}

// TaskStore holds the ordered task table in memory and mirrors it to a
// storage.Backend.
type TaskStore struct {
	backend storage.Backend
	tasks   []models.Task
	mu      sync.Mutex // Mutex to ensure thread safety
}

// NewTaskStore initializes an empty TaskStore over backend.
func NewTaskStore(backend storage.Backend) *TaskStore {
	return &TaskStore{
		backend: backend,
		tasks:   []models.Task{},
	}
}

// Load replaces the in-memory table with the persisted one.
func (ts *TaskStore) Load(ctx context.Context) error {
	tasks, err := ts.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tasks = tasks
	return nil
}

// Save overwrites the persisted table with the in-memory one.
func (ts *TaskStore) Save(ctx context.Context) error {
	ts.mu.Lock()
	snapshot := slices.Clone(ts.tasks)
	ts.mu.Unlock()

	if err := ts.backend.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// Add appends a task after validating it. Duplicates are allowed.
func (ts *TaskStore) Add(task models.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tasks = append(ts.tasks, task)
	return nil
}

// Remove deletes every task whose description equals description exactly
// and returns how many were removed.
func (ts *TaskStore) Remove(description string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	before := len(ts.tasks)
	ts.tasks = slices.DeleteFunc(ts.tasks, func(t models.Task) bool {
		return t.Description == description
	})
	return before - len(ts.tasks)
}

// SortByPriority reorders the table in place. The sort is stable, so
// tasks with equal priority keep their relative order.
func (ts *TaskStore) SortByPriority(order SortOrder) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	switch order {
	case SortSeverity:
		slices.SortStableFunc(ts.tasks, func(a, b models.Task) int {
			return cmp.Compare(b.Priority, a.Priority)
		})
	default:
		slices.SortStableFunc(ts.tasks, func(a, b models.Task) int {
			return strings.Compare(a.Priority.String(), b.Priority.String())
		})
	}
}

// Tasks returns a copy of the table in its current order.
func (ts *TaskStore) Tasks() []models.Task {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return slices.Clone(ts.tasks)
}

// Len returns the number of tasks.
func (ts *TaskStore) Len() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.tasks)
}
