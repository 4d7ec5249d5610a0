package main

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsssgooo/onirico/internal/config"
	"github.com/letsssgooo/onirico/internal/storage"
)

func TestInterrupted(t *testing.T) {
	assert.True(t, interrupted(context.Canceled))
	assert.True(t, interrupted(fmt.Errorf("bot: %w", context.Canceled)))
	assert.False(t, interrupted(nil))
	assert.False(t, interrupted(storage.ErrQuotaExceeded))
}

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	st, err := openStorage(ctx, config.Config{StorageDriver: config.StorageMemory})
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStorage{}, st)

	st, err = openStorage(ctx, config.Config{
		StorageDriver: config.StorageFile,
		DiaryPath:     filepath.Join(t.TempDir(), "dreams.json"),
	})
	require.NoError(t, err)
	assert.IsType(t, &storage.FileStorage{}, st)

	_, err = openStorage(ctx, config.Config{StorageDriver: config.StoragePostgres})
	assert.Error(t, err)

	_, err = openStorage(ctx, config.Config{StorageDriver: "redis"})
	assert.Error(t, err)
}

func TestLoadRegistry(t *testing.T) {
	registry, err := loadRegistry("")
	require.NoError(t, err)
	assert.NotEmpty(t, registry.Title())

	_, err = loadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
