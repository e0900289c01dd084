package handlers

import (
	"net/http"

	"pool-market-client/internal/models"
	"pool-market-client/internal/services"
)

// FavoritesHandler exposes the favorites store
type FavoritesHandler struct {
	favorites     *services.FavoritesService
	poolService   *services.PoolService
	notifications *services.NotificationService
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(
	favorites *services.FavoritesService,
	poolService *services.PoolService,
	notifications *services.NotificationService,
) *FavoritesHandler {
	return &FavoritesHandler{
		favorites:     favorites,
		poolService:   poolService,
		notifications: notifications,
	}
}

// ToggleRequest names the pool to star or unstar. A full pool snapshot
// takes precedence over an id.
type ToggleRequest struct {
	ID   string       `json:"id"`
	Pool *models.Pool `json:"pool"`
}

// ToggleResponse reports membership after a toggle
type ToggleResponse struct {
	Favorite bool          `json:"favorite"`
	Pools    []models.Pool `json:"pools"`
}

// ListFavorites handles GET /api/v1/favorites
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.favorites.List())
}

// Toggle handles POST /api/v1/favorites/toggle
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pool := req.Pool
	if pool == nil {
		if req.ID == "" {
			respondError(w, CodeBadRequest, "id or pool is required", http.StatusBadRequest)
			return
		}
		var result services.Result
		pool, result = h.poolService.Get(r.Context(), req.ID)
		if result != services.ResultSuccess {
			respondResult(w, result, nil, h.notifications)
			return
		}
	}

	favorite := h.favorites.Toggle(*pool)
	respondResult(w, services.ResultSuccess, ToggleResponse{
		Favorite: favorite,
		Pools:    h.favorites.List(),
	}, h.notifications)
}
