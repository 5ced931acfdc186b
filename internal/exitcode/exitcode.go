// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"github.com/tiwariParth/tasklist/internal/classifier"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad flags, an unknown command, or invalid config.
	UserError = 1

	// StorageError indicates the task table could not be read or written.
	StorageError = 2

	// ModelError indicates the classifier could not be trained.
	ModelError = 3

	// Interrupted indicates the session was ended by SIGINT or SIGTERM.
	Interrupted = 130
)

// For maps an operation error to an exit code.
func For(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, classifier.ErrNoSamples), errors.Is(err, classifier.ErrEmptyVocabulary):
		return ModelError
	default:
		return StorageError
	}
}
