package services

import (
	"fmt"
	"slices"
	"sync"

	"pool-market-client/internal/models"
	"pool-market-client/internal/storage"
)

// FavoritesService keeps the locally starred pools. Entries are snapshots
// taken when the pool was starred and are never refreshed from the server.
type FavoritesService struct {
	mu            sync.RWMutex
	pools         []models.Pool
	storage       *storage.Adapter
	notifications *NotificationService
	hub           *Hub
}

// NewFavoritesService creates the favorites store and loads the persisted list
func NewFavoritesService(storage *storage.Adapter, notifications *NotificationService, hub *Hub) *FavoritesService {
	s := &FavoritesService{
		storage:       storage,
		notifications: notifications,
		hub:           hub,
	}
	s.pools = s.load()
	return s
}

func (s *FavoritesService) load() []models.Pool {
	var pools []models.Pool
	if !s.storage.Get(storage.FavoritesKey, &pools) {
		return []models.Pool{}
	}
	return pools
}

// List returns a copy of the favorite pools in the order they were added
func (s *FavoritesService) List() []models.Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.pools)
}

// IsFavorite reports whether a pool with the same id is starred
func (s *FavoritesService) IsFavorite(pool models.Pool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(pool.ID) != -1
}

// Toggle removes the pool if it is starred, otherwise appends a snapshot of
// it. It returns whether the pool is a favorite afterwards.
func (s *FavoritesService) Toggle(pool models.Pool) bool {
	s.mu.Lock()
	wasFavorite := s.indexLocked(pool.ID) != -1
	if wasFavorite {
		s.pools = slices.DeleteFunc(slices.Clone(s.pools), func(p models.Pool) bool {
			return p.ID == pool.ID
		})
	} else {
		s.pools = append(slices.Clone(s.pools), pool)
	}
	s.storage.Set(storage.FavoritesKey, s.pools)
	snapshot := slices.Clone(s.pools)
	s.mu.Unlock()

	s.hub.Publish(Event{Type: EventFavorites, Data: snapshot})

	if wasFavorite {
		s.notifications.Add(fmt.Sprintf("%q removed from favorites.", pool.Title), models.NotificationSuccess)
	} else {
		s.notifications.Add(fmt.Sprintf("%q added to favorites.", pool.Title), models.NotificationSuccess)
	}
	return !wasFavorite
}

func (s *FavoritesService) indexLocked(id string) int {
	return slices.IndexFunc(s.pools, func(p models.Pool) bool {
		return p.ID == id
	})
}
