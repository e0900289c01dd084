package demoapi

import (
	"net/http"

	"pool-market-client/internal/models"
	"pool-market-client/internal/repository"

	"github.com/go-chi/chi/v5"
)

// SetVisibility handles PUT /pools/{id}/visibility
func (s *Server) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req models.VisibilityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := r.Context()
	pool, ok := s.loadPool(ctx, w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	pool.IsVisible = req.IsVisible
	pool.VisibleUntil = req.VisibleUntil
	pool.UpdatedAt = s.now().UTC()

	if err := s.pools.Update(ctx, pool); err != nil {
		s.respondInternal(w, err, "Failed to update visibility")
		return
	}

	s.logger.Info().
		Str("pool_id", pool.ID).
		Bool("is_visible", pool.IsVisible).
		Msg("Pool visibility changed")
	s.respondPool(ctx, w, pool, http.StatusOK)
}

// AdminListPools handles GET /admin/pools
func (s *Server) AdminListPools(w http.ResponseWriter, r *http.Request) {
	pools, err := s.pools.List(r.Context(), repository.PoolQuery{})
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

// AdminListUsers handles GET /admin/users
func (s *Server) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users, err := s.users.List(ctx)
	if err != nil {
		s.respondInternal(w, err, "Failed to list users")
		return
	}

	for i := range users {
		count, err := s.pools.CountByUser(ctx, users[i].ID)
		if err != nil {
			s.respondInternal(w, err, "Failed to count pools")
			return
		}
		users[i].PublishedPoolsCount = &count
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}
