package services

import (
	"testing"

	"pool-market-client/internal/models"
	"pool-market-client/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites_ToggleAlternates(t *testing.T) {
	store := newTestStorage(t)
	notifications, _ := newTestNotifications(nil)
	svc := NewFavoritesService(store, notifications, nil)

	pool := models.Pool{ID: "p1", Title: "Vila Sunce"}
	for i := 0; i < 5; i++ {
		want := i%2 == 0
		assert.Equal(t, want, svc.Toggle(pool))
		assert.Equal(t, want, svc.IsFavorite(pool))

		var persisted []models.Pool
		require.True(t, store.Get(storage.FavoritesKey, &persisted))
		assert.Equal(t, svc.List(), persisted)
	}
}

func TestFavorites_EqualityById(t *testing.T) {
	notifications, _ := newTestNotifications(nil)
	svc := NewFavoritesService(newTestStorage(t), notifications, nil)

	svc.Toggle(models.Pool{ID: "p1", Title: "Vila Sunce", Capacity: 8})

	renamed := models.Pool{ID: "p1", Title: "Vila Sunce Mostar"}
	assert.True(t, svc.IsFavorite(renamed))

	svc.Toggle(models.Pool{ID: "p2", Title: "Bazen Oaza"})
	assert.False(t, svc.Toggle(renamed))

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].ID)
}

func TestFavorites_KeepsSnapshot(t *testing.T) {
	notifications, _ := newTestNotifications(nil)
	svc := NewFavoritesService(newTestStorage(t), notifications, nil)

	svc.Toggle(models.Pool{ID: "p1", Title: "Vila Sunce", Capacity: 8})

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, 8, list[0].Capacity)
	assert.Equal(t, "Vila Sunce", list[0].Title)
}

func TestFavorites_Notifications(t *testing.T) {
	notifications, _ := newTestNotifications(nil)
	svc := NewFavoritesService(newTestStorage(t), notifications, nil)
	pool := models.Pool{ID: "p1", Title: "Vila Sunce"}

	svc.Toggle(pool)
	svc.Toggle(pool)

	list := notifications.List()
	require.Len(t, list, 2)
	assert.Equal(t, []string{`"Vila Sunce" added to favorites.`}, list[0].Text)
	assert.Equal(t, []string{`"Vila Sunce" removed from favorites.`}, list[1].Text)
}

func TestFavorites_LoadsPersistedList(t *testing.T) {
	store := newTestStorage(t)
	require.True(t, store.Set(storage.FavoritesKey, []models.Pool{{ID: "p9", Title: "Kuća na Uni"}}))
	notifications, _ := newTestNotifications(nil)

	svc := NewFavoritesService(store, notifications, nil)

	assert.True(t, svc.IsFavorite(models.Pool{ID: "p9"}))
	assert.Len(t, svc.List(), 1)
}

func TestFavorites_EmptyWithoutStorage(t *testing.T) {
	notifications, _ := newTestNotifications(nil)
	svc := NewFavoritesService(newTestStorage(t), notifications, nil)

	assert.NotNil(t, svc.List())
	assert.Empty(t, svc.List())
}
