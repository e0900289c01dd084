package handlers

import (
	"net/http"

	"pool-market-client/internal/models"
	"pool-market-client/internal/services"

	"github.com/go-chi/chi/v5"
)

// PoolHandler exposes the pools store
type PoolHandler struct {
	poolService   *services.PoolService
	userService   *services.UserService
	notifications *services.NotificationService
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(
	poolService *services.PoolService,
	userService *services.UserService,
	notifications *services.NotificationService,
) *PoolHandler {
	return &PoolHandler{
		poolService:   poolService,
		userService:   userService,
		notifications: notifications,
	}
}

// ListPools handles GET /api/v1/pools.
// reload=true refreshes the cache from the API first; mine=true loads only
// the pools of the signed-in host. city, guests, maxPrice and amenity flags
// filter the cached list.
func (h *PoolHandler) ListPools(w http.ResponseWriter, r *http.Request) {
	if queryBool(r, "reload") || queryBool(r, "mine") {
		userID := ""
		if queryBool(r, "mine") {
			user := h.userService.User()
			if user == nil {
				respondResult(w, services.ResultError, nil, h.notifications)
				return
			}
			userID = user.ID
		}
		if result := h.poolService.Load(r.Context(), userID); result != services.ResultSuccess {
			respondResult(w, result, nil, h.notifications)
			return
		}
	}

	q := r.URL.Query()
	search := services.PoolSearch{
		City:      q.Get("city"),
		MinGuests: queryInt(r, "guests"),
		MaxPrice:  queryFloat(r, "maxPrice"),
		Amenities: models.PoolFilters{
			Heated:        queryBool(r, "heated"),
			PetsAllowed:   queryBool(r, "petsAllowed"),
			PartyAllowed:  queryBool(r, "partyAllowed"),
			Wifi:          queryBool(r, "wifi"),
			BBQ:           queryBool(r, "bbq"),
			Parking:       queryBool(r, "parking"),
			SummerKitchen: queryBool(r, "summerKitchen"),
		},
	}
	respondResult(w, services.ResultSuccess, services.FilterPools(h.poolService.List(), search), h.notifications)
}

// GetPool handles GET /api/v1/pools/{id}
func (h *PoolHandler) GetPool(w http.ResponseWriter, r *http.Request) {
	pool, result := h.poolService.Get(r.Context(), chi.URLParam(r, "id"))
	respondResult(w, result, pool, h.notifications)
}

// CreatePool handles POST /api/v1/pools
func (h *PoolHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	var input models.PoolInput
	if !decodeBody(w, r, &input) {
		return
	}

	pool, result := h.poolService.Create(r.Context(), input)
	respondResult(w, result, pool, h.notifications)
}

// UpdatePool handles PUT /api/v1/pools/{id}
func (h *PoolHandler) UpdatePool(w http.ResponseWriter, r *http.Request) {
	var input models.PoolInput
	if !decodeBody(w, r, &input) {
		return
	}

	pool, result := h.poolService.Update(r.Context(), chi.URLParam(r, "id"), input)
	respondResult(w, result, pool, h.notifications)
}

// DeletePool handles DELETE /api/v1/pools/{id}
func (h *PoolHandler) DeletePool(w http.ResponseWriter, r *http.Request) {
	result := h.poolService.Delete(r.Context(), chi.URLParam(r, "id"))
	respondResult(w, result, nil, h.notifications)
}
