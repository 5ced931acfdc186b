package models

import (
	"errors"
	"fmt"
)

// ErrInvalidPriority is returned when a priority is not Low, Medium or High.
var ErrInvalidPriority = errors.New("priority must be Low, Medium, or High")

// Priority represents the importance level of a task
type Priority int

const (
	Low Priority = iota + 1
	Medium
	High
)

// Priorities lists every valid priority in ascending severity.
var Priorities = []Priority{Low, Medium, High}

// String returns the string representation of Priority
func (p Priority) String() string {
	switch p {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	return p >= Low && p <= High
}

// ParsePriority maps an exact label ("Low", "Medium", "High") to a Priority.
// Matching is case-sensitive; callers normalise user input first.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Task is a single unit of work. Two tasks with the same description and
// priority are indistinguishable.
type Task struct {
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// NewTask creates a task after validating its priority.
func NewTask(description string, priority Priority) (Task, error) {
	t := Task{Description: description, Priority: priority}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Validate checks if the task has valid data
func (t *Task) Validate() error {
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidPriority, int(t.Priority))
	}
	return nil
}

// MarshalText encodes the priority as its label so JSON and YAML carry
// "High" rather than an integer.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPriority, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a priority label.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
