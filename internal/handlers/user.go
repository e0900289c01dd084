package handlers

import (
	"net/http"

	"pool-market-client/internal/models"
	"pool-market-client/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler exposes the session store
type UserHandler struct {
	userService   *services.UserService
	notifications *services.NotificationService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, notifications *services.NotificationService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		notifications: notifications,
	}
}

// SessionResponse describes the current session
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user"`
}

// GetSession handles GET /api/v1/session
func (h *UserHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	user := h.userService.User()
	respondJSON(w, http.StatusOK, SessionResponse{Authenticated: user != nil, User: user})
}

// Login handles POST /api/v1/session/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.userService.Login(r.Context(), req.Email, req.Password)
	respondResult(w, result, h.userService.User(), h.notifications)
}

// Register handles POST /api/v1/session/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.userService.Register(r.Context(), req)
	respondResult(w, result, h.userService.User(), h.notifications)
}

// UpdateProfile handles PUT /api/v1/session/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.userService.UpdateProfile(r.Context(), req)
	respondResult(w, result, h.userService.User(), h.notifications)
}

// Logout handles DELETE /api/v1/session
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.userService.Logout()
	log.Info().Msg("Session cleared")
	respondResult(w, services.ResultSuccess, nil, h.notifications)
}

// ForgotPassword handles POST /api/v1/session/forgot-password
func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.userService.RequestForgotPassword(r.Context(), req.Email)
	respondResult(w, result, nil, h.notifications)
}

// ResetPassword handles POST /api/v1/session/reset-password
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.userService.RequestResetPassword(r.Context(), req.Token, req.Password)
	respondResult(w, result, nil, h.notifications)
}
