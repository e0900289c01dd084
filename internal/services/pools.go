package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"pool-market-client/internal/models"
	"pool-market-client/internal/validation"

	"github.com/rs/zerolog"
)

// User-facing pool messages.
const (
	msgPoolsLoadFailed = "Failed to load pools."
	msgPoolLoadFailed  = "Failed to load the pool."
	msgPoolCreated     = "Pool published."
	msgPoolCreateFail  = "Failed to publish the pool."
	msgPoolUpdated     = "Pool updated."
	msgPoolUpdateFail  = "Failed to update the pool."
	msgPoolDeleted     = "Pool deleted."
	msgPoolDeleteFail  = "Failed to delete the pool."
)

// PoolsAPI is the part of the API client used for pools
type PoolsAPI interface {
	ListPools(ctx context.Context, userID string) ([]models.Pool, error)
	GetPool(ctx context.Context, id string) (*models.Pool, error)
	CreatePool(ctx context.Context, input models.PoolInput) (*models.Pool, error)
	UpdatePool(ctx context.Context, id string, input models.PoolInput) (*models.Pool, error)
	DeletePool(ctx context.Context, id string) error
}

// PoolService caches the last loaded pool list. The cache is only ever
// replaced as a whole.
type PoolService struct {
	mu            sync.RWMutex
	pools         []models.Pool
	api           PoolsAPI
	session       *UserService
	notifications *NotificationService
	validator     *validation.Validator
	hub           *Hub
	logger        zerolog.Logger
}

// NewPoolService creates the pools store
func NewPoolService(
	poolsAPI PoolsAPI,
	session *UserService,
	notifications *NotificationService,
	validator *validation.Validator,
	hub *Hub,
	logger zerolog.Logger,
) *PoolService {
	return &PoolService{
		pools:         []models.Pool{},
		api:           poolsAPI,
		session:       session,
		notifications: notifications,
		validator:     validator,
		hub:           hub,
		logger:        logger,
	}
}

// Set replaces the cached pool list
func (s *PoolService) Set(pools []models.Pool) {
	s.mu.Lock()
	s.pools = slices.Clone(pools)
	snapshot := slices.Clone(s.pools)
	s.mu.Unlock()

	s.hub.Publish(Event{Type: EventPools, Data: snapshot})
}

// List returns a copy of the cached pools
func (s *PoolService) List() []models.Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.pools)
}

// FindByID looks a pool up in the cache
func (s *PoolService) FindByID(id string) (*models.Pool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.pools {
		if s.pools[i].ID == id {
			p := s.pools[i]
			return &p, true
		}
	}
	return nil, false
}

// Load fetches pools, optionally of one owner, and replaces the cache
func (s *PoolService) Load(ctx context.Context, userID string) Result {
	pools, err := s.api.ListPools(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load pools")
		s.notifications.Add(failureMessage(err, msgPoolsLoadFailed), models.NotificationError)
		return ResultError
	}

	s.Set(pools)
	return ResultSuccess
}

// Get returns a pool from the cache, falling back to the API
func (s *PoolService) Get(ctx context.Context, id string) (*models.Pool, Result) {
	if p, ok := s.FindByID(id); ok {
		return p, ResultSuccess
	}

	pool, err := s.api.GetPool(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("pool_id", id).Msg("Failed to get pool")
		s.notifications.Add(failureMessage(err, msgPoolLoadFailed), models.NotificationError)
		return nil, ResultError
	}
	return pool, ResultSuccess
}

// Create publishes a new pool for the current host
func (s *PoolService) Create(ctx context.Context, input models.PoolInput) (*models.Pool, Result) {
	if !validateInput(s.validator, s.notifications, input) {
		return nil, ResultError
	}

	pool, err := s.api.CreatePool(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("Failed to create pool")
		s.notifications.Add(failureMessage(err, msgPoolCreateFail), models.NotificationError)
		return nil, ResultError
	}

	s.session.IncrementPublishedPoolsCount()
	s.logger.Info().Str("pool_id", pool.ID).Msg("Pool created")
	s.notifications.Add(msgPoolCreated, models.NotificationSuccess)
	return pool, ResultSuccess
}

// Update changes an existing pool
func (s *PoolService) Update(ctx context.Context, id string, input models.PoolInput) (*models.Pool, Result) {
	if !validateInput(s.validator, s.notifications, input) {
		return nil, ResultError
	}

	pool, err := s.api.UpdatePool(ctx, id, input)
	if err != nil {
		s.logger.Error().Err(err).Str("pool_id", id).Msg("Failed to update pool")
		s.notifications.Add(failureMessage(err, msgPoolUpdateFail), models.NotificationError)
		return nil, ResultError
	}

	s.notifications.Add(msgPoolUpdated, models.NotificationSuccess)
	return pool, ResultSuccess
}

// Delete removes a pool of the current host
func (s *PoolService) Delete(ctx context.Context, id string) Result {
	if err := s.api.DeletePool(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("pool_id", id).Msg("Failed to delete pool")
		s.notifications.Add(failureMessage(err, msgPoolDeleteFail), models.NotificationError)
		return ResultError
	}

	s.session.DecrementPublishedPoolsCount()
	s.logger.Info().Str("pool_id", id).Msg("Pool deleted")
	s.notifications.Add(msgPoolDeleted, models.NotificationSuccess)
	return ResultSuccess
}

// PoolSearch is a client-side filter over a pool list. Zero values match everything.
type PoolSearch struct {
	City      string
	MinGuests int
	MaxPrice  float64
	Amenities models.PoolFilters
}

// FilterPools returns the pools matching q, keeping their order
func FilterPools(pools []models.Pool, q PoolSearch) []models.Pool {
	out := make([]models.Pool, 0, len(pools))
	for _, p := range pools {
		if q.City != "" && !strings.Contains(strings.ToLower(p.City), strings.ToLower(strings.TrimSpace(q.City))) {
			continue
		}
		if p.Capacity < q.MinGuests {
			continue
		}
		if q.MaxPrice > 0 && (p.PricePerDay == nil || *p.PricePerDay > q.MaxPrice) {
			continue
		}
		if !hasAmenities(p.Filters, q.Amenities) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasAmenities(have *models.PoolFilters, want models.PoolFilters) bool {
	if want == (models.PoolFilters{}) {
		return true
	}
	if have == nil {
		return false
	}
	return (!want.Heated || have.Heated) &&
		(!want.PetsAllowed || have.PetsAllowed) &&
		(!want.PartyAllowed || have.PartyAllowed) &&
		(!want.Wifi || have.Wifi) &&
		(!want.BBQ || have.BBQ) &&
		(!want.Parking || have.Parking) &&
		(!want.SummerKitchen || have.SummerKitchen)
}
