package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiwariParth/tasklist/internal/models"
	"github.com/tiwariParth/tasklist/internal/storage"
)

func TestMemoryStore_SaveIsolatesCallerSlice(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	tasks := []models.Task{{Description: "a", Priority: models.Low}}
	require.NoError(t, m.Save(ctx, tasks))
	tasks[0].Description = "mutated"

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].Description)
	assert.Equal(t, 1, m.Saves())
}

func TestMemoryStore_Closed(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.Close())

	_, err := m.Load(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageConnection)
	assert.ErrorIs(t, m.Save(context.Background(), nil), storage.ErrStorageConnection)
}
