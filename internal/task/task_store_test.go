package task

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiwariParth/tasklist/internal/models"
	"github.com/tiwariParth/tasklist/internal/storage/file"
	"github.com/tiwariParth/tasklist/internal/storage/memory"
)

func descriptions(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Description
	}
	return out
}

func TestTaskStore_AddPreservesInsertionOrder(t *testing.T) {
	ts := NewTaskStore(memory.NewMemoryStore())

	require.NoError(t, ts.Add(models.Task{Description: "b", Priority: models.Low}))
	require.NoError(t, ts.Add(models.Task{Description: "a", Priority: models.High}))
	require.NoError(t, ts.Add(models.Task{Description: "b", Priority: models.Low}))

	assert.Equal(t, []string{"b", "a", "b"}, descriptions(ts.Tasks()))
	assert.Equal(t, 3, ts.Len())
}

func TestTaskStore_AddRejectsInvalidPriority(t *testing.T) {
	ts := NewTaskStore(memory.NewMemoryStore())

	err := ts.Add(models.Task{Description: "x"})
	require.ErrorIs(t, err, models.ErrInvalidPriority)
	assert.Zero(t, ts.Len())
}

func TestTaskStore_RemoveDeletesAllExactMatches(t *testing.T) {
	ts := NewTaskStore(memory.NewMemoryStore())
	for _, task := range []models.Task{
		{Description: "buy milk", Priority: models.Low},
		{Description: "Buy milk", Priority: models.Low},
		{Description: "buy milk", Priority: models.High},
		{Description: "buy milk ", Priority: models.Low},
	} {
		require.NoError(t, ts.Add(task))
	}

	removed := ts.Remove("buy milk")

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"Buy milk", "buy milk "}, descriptions(ts.Tasks()))
	assert.Zero(t, ts.Remove("not there"))
}

func TestTaskStore_SortByPriority(t *testing.T) {
	seed := []models.Task{
		{Description: "write report", Priority: models.High},
		{Description: "buy milk", Priority: models.Low},
		{Description: "email team", Priority: models.Medium},
		{Description: "call bank", Priority: models.Low},
		{Description: "fix prod", Priority: models.High},
	}
	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortLexical, []string{"write report", "fix prod", "buy milk", "call bank", "email team"}},
		{SortSeverity, []string{"write report", "fix prod", "email team", "buy milk", "call bank"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			ts := NewTaskStore(memory.NewMemoryStore())
			for _, task := range seed {
				require.NoError(t, ts.Add(task))
			}
			ts.SortByPriority(tt.order)
			assert.Equal(t, tt.want, descriptions(ts.Tasks()))
		})
	}
}

func TestTaskStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, err := file.NewFileStore(filepath.Join(t.TempDir(), "tasks.csv"))
	require.NoError(t, err)

	ts := NewTaskStore(backend)
	require.NoError(t, ts.Add(models.Task{Description: "write report", Priority: models.High}))
	require.NoError(t, ts.Add(models.Task{Description: "buy milk", Priority: models.Low}))
	require.NoError(t, ts.Save(ctx))

	reloaded := NewTaskStore(backend)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, ts.Tasks(), reloaded.Tasks())
}

func TestTaskStore_SaveError(t *testing.T) {
	backend := memory.NewMemoryStore()
	backend.SaveErr = errors.New("disk full")
	ts := NewTaskStore(backend)

	err := ts.Save(context.Background())
	require.ErrorIs(t, err, backend.SaveErr)
}

func TestParseSortOrder(t *testing.T) {
	order, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortLexical, order)

	order, err = ParseSortOrder("severity")
	require.NoError(t, err)
	assert.Equal(t, SortSeverity, order)

	_, err = ParseSortOrder("random")
	assert.Error(t, err)
}
