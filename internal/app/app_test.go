package app

import (
	"context"
	"testing"
	"time"

	"pool-market-client/internal/config"
	"pool-market-client/internal/models"
	"pool-market-client/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver, path string) *config.Config {
	return &config.Config{
		API:           config.APIConfig{BaseURL: "http://127.0.0.1:1"},
		Storage:       config.StorageConfig{Driver: driver, Path: path, RedisAddr: "127.0.0.1:1"},
		Notifications: config.NotificationsConfig{Duration: time.Minute},
	}
}

func TestNew_MemoryStorage(t *testing.T) {
	a := New(context.Background(), testConfig("memory", ""), zerolog.Nop())
	t.Cleanup(func() { _ = a.Close() })

	assert.True(t, a.Storage.Supported())
	assert.False(t, a.Users.IsAuthenticated())
	assert.Empty(t, a.Favorites.List())
	assert.Empty(t, a.Pools.List())
	assert.Empty(t, a.Tokens.Get())
}

func TestNew_RestoresPersistedState(t *testing.T) {
	dir := t.TempDir()

	first := New(context.Background(), testConfig("badger", dir), zerolog.Nop())
	require.True(t, first.Storage.Set(storage.UserKey, models.User{ID: "u1", Email: "ana@bazeni.ba"}))
	first.Tokens.Set("tok-1")
	first.Favorites.Toggle(models.Pool{ID: "p1", Title: "Vila Sunce"})
	require.NoError(t, first.Close())

	second := New(context.Background(), testConfig("badger", dir), zerolog.Nop())
	t.Cleanup(func() { _ = second.Close() })

	require.True(t, second.Users.IsAuthenticated())
	assert.Equal(t, "u1", second.Users.User().ID)
	assert.Equal(t, "tok-1", second.Tokens.Get())
	require.Len(t, second.Favorites.List(), 1)
	assert.Equal(t, "p1", second.Favorites.List()[0].ID)
}

func TestNew_UnreachableRedisDisablesPersistence(t *testing.T) {
	a := New(context.Background(), testConfig("redis", ""), zerolog.Nop())
	t.Cleanup(func() { _ = a.Close() })

	assert.False(t, a.Storage.Supported())

	a.Favorites.Toggle(models.Pool{ID: "p1"})
	assert.Len(t, a.Favorites.List(), 1, "in-memory state still works")
}
