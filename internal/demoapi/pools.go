package demoapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pool-market-client/internal/middleware"
	"pool-market-client/internal/models"
	"pool-market-client/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type poolRequest struct {
	Pool models.PoolInput `json:"pool"`
}

// withOwners fills in the owner summary of each pool
func (s *Server) withOwners(ctx context.Context, pools []models.Pool) error {
	owners := make(map[string]*models.PoolOwner)
	for i := range pools {
		owner, ok := owners[pools[i].UserID]
		if !ok {
			u, err := s.users.GetByID(ctx, pools[i].UserID)
			switch {
			case err == nil:
				owner = &models.PoolOwner{
					FirstName:    u.FirstName,
					LastName:     u.LastName,
					AvatarURL:    u.AvatarURL,
					MobileNumber: u.MobileNumber,
				}
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}
			owners[pools[i].UserID] = owner
		}
		pools[i].Owner = owner
	}
	return nil
}

// ListPools handles GET /pools. Without userId only listed pools are returned.
func (s *Server) ListPools(w http.ResponseWriter, r *http.Request) {
	q := repository.PoolQuery{
		UserID: r.URL.Query().Get("userId"),
		City:   r.URL.Query().Get("city"),
		Now:    s.now(),
	}
	q.VisibleOnly = q.UserID == ""

	pools, err := s.pools.List(r.Context(), q)
	if err != nil {
		s.respondInternal(w, err, "Failed to list pools")
		return
	}
	if err := s.withOwners(r.Context(), pools); err != nil {
		s.respondInternal(w, err, "Failed to load pool owners")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"pools": pools})
}

// GetPool handles GET /pool?id= and counts the view
func (s *Server) GetPool(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, CodeBadRequest, "id is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	pool, ok := s.loadPool(ctx, w, id)
	if !ok {
		return
	}

	views := 1
	if pool.Views != nil {
		views = *pool.Views + 1
	}
	pool.Views = &views
	if err := s.pools.Update(ctx, pool); err != nil {
		s.respondInternal(w, err, "Failed to count view")
		return
	}

	s.respondPool(ctx, w, pool, http.StatusOK)
}

// CreatePool handles POST /pools. New pools stay hidden until an admin lists them.
func (s *Server) CreatePool(w http.ResponseWriter, r *http.Request) {
	var req poolRequest
	if !decodeBody(w, r, &req) || !s.validate(w, req.Pool) {
		return
	}

	ctx := r.Context()
	now := s.now().UTC()
	pool := &models.Pool{
		ID:        uuid.New().String(),
		UserID:    middleware.GetUserID(ctx),
		CreatedAt: now,
	}
	applyInput(pool, req.Pool, now)

	if err := s.pools.Create(ctx, pool); err != nil {
		s.respondInternal(w, err, "Failed to create pool")
		return
	}

	s.logger.Info().Str("pool_id", pool.ID).Str("user_id", pool.UserID).Msg("Pool created")
	s.respondPool(ctx, w, pool, http.StatusCreated)
}

// UpdatePool handles PUT /pools/{id}
func (s *Server) UpdatePool(w http.ResponseWriter, r *http.Request) {
	var req poolRequest
	if !decodeBody(w, r, &req) || !s.validate(w, req.Pool) {
		return
	}

	ctx := r.Context()
	pool, ok := s.loadOwnPool(ctx, w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	applyInput(pool, req.Pool, s.now().UTC())

	if err := s.pools.Update(ctx, pool); err != nil {
		s.respondInternal(w, err, "Failed to update pool")
		return
	}
	s.respondPool(ctx, w, pool, http.StatusOK)
}

// DeletePool handles DELETE /pools/{id}
func (s *Server) DeletePool(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pool, ok := s.loadOwnPool(ctx, w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := s.pools.Delete(ctx, pool.ID); err != nil {
		s.respondInternal(w, err, "Failed to delete pool")
		return
	}

	s.logger.Info().Str("pool_id", pool.ID).Msg("Pool deleted")
	respondJSON(w, http.StatusOK, map[string]string{"message": "Pool deleted"})
}

func (s *Server) loadPool(ctx context.Context, w http.ResponseWriter, id string) (*models.Pool, bool) {
	pool, err := s.pools.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, CodeNotFound, "Pool not found", http.StatusNotFound)
			return nil, false
		}
		s.respondInternal(w, err, "Failed to get pool")
		return nil, false
	}
	return pool, true
}

func (s *Server) loadOwnPool(ctx context.Context, w http.ResponseWriter, id string) (*models.Pool, bool) {
	pool, ok := s.loadPool(ctx, w, id)
	if !ok {
		return nil, false
	}
	if pool.UserID != middleware.GetUserID(ctx) {
		respondError(w, CodeForbidden, "You can only change your own pools", http.StatusForbidden)
		return nil, false
	}
	return pool, true
}

func (s *Server) respondPool(ctx context.Context, w http.ResponseWriter, pool *models.Pool, status int) {
	pools := []models.Pool{*pool}
	if err := s.withOwners(ctx, pools); err != nil {
		s.respondInternal(w, err, "Failed to load pool owner")
		return
	}
	respondJSON(w, status, map[string]any{"pool": pools[0]})
}

func applyInput(pool *models.Pool, in models.PoolInput, now time.Time) {
	pool.Title = in.Title
	pool.City = in.City
	pool.Capacity = in.Capacity
	pool.Images = in.Images
	pool.PricePerDay = in.PricePerDay
	pool.Description = in.Description
	pool.BusyDays = in.BusyDays
	pool.Filters = in.Filters
	pool.CheckIn = in.CheckIn
	pool.CheckOut = in.CheckOut
	pool.Rules = in.Rules
	pool.UpdatedAt = now
}
