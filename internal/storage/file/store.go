package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tiwariParth/tasklist/internal/models"
	"github.com/tiwariParth/tasklist/internal/storage"
)

// DefaultPath is the table file used when no path is configured.
const DefaultPath = "tasks.csv"

// FileStore implements the storage.Backend interface over a CSV file
type FileStore struct {
	filePath string
}

// NewFileStore creates a new instance of FileStore
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		filePath = DefaultPath
	}

	// Ensure directory exists
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &FileStore{filePath: filePath}, nil
}

// Path returns the file backing the store.
func (f *FileStore) Path() string { return f.filePath }

// Load reads the table. A missing file yields an empty table.
func (f *FileStore) Load(ctx context.Context) ([]models.Task, error) {
	file, err := os.Open(f.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Task{}, nil
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tasks, err := decodeCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.filePath, err)
	}
	return tasks, nil
}

// Save overwrites the file with the header row and every task. The write
// is not atomic.
func (f *FileStore) Save(ctx context.Context, tasks []models.Task) error {
	file, err := os.Create(f.filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := encodeCSV(file, tasks); err != nil {
		file.Close()
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	return file.Close()
}

// Close is a no-op; the file is only open during Load and Save.
func (f *FileStore) Close() error { return nil }

func encodeCSV(w io.Writer, tasks []models.Task) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(storage.Columns); err != nil {
		return err
	}
	for _, task := range tasks {
		if err := writer.Write([]string{task.Description, task.Priority.String()}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// decodeCSV locates the description and priority columns by header name,
// so a file with reordered or extra columns still loads. Extra columns are
// dropped on the next save.
func decodeCSV(r io.Reader) ([]models.Task, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", storage.ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", storage.ErrMalformed, err)
	}

	// Spreadsheet exports often start with a UTF-8 byte order mark.
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")

	descCol, prioCol := -1, -1
	for i, name := range header {
		switch name {
		case "description":
			descCol = i
		case "priority":
			prioCol = i
		}
	}
	if descCol < 0 || prioCol < 0 {
		return nil, fmt.Errorf("%w: header must contain description and priority, got %v", storage.ErrMalformed, header)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrMalformed, err)
	}

	tasks := make([]models.Task, 0, len(records))
	for i, record := range records {
		priority, err := models.ParsePriority(record[prioCol])
		if err != nil {
			// Row numbers are 1-based and count the header.
			return nil, fmt.Errorf("%w: row %d: %v", storage.ErrMalformed, i+2, err)
		}
		tasks = append(tasks, models.Task{
			Description: record[descCol],
			Priority:    priority,
		})
	}
	return tasks, nil
}
