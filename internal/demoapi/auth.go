package demoapi

import (
	"errors"
	"net/http"
	"strings"

	"pool-market-client/internal/middleware"
	"pool-market-client/internal/models"
	"pool-market-client/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Login handles POST /auth/login
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) || !s.validate(w, req) {
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.respondInternal(w, err, "Failed to get user")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	s.respondAuth(w, r, user, http.StatusOK)
}

// Register handles POST /auth/register
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) || !s.validate(w, req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.respondInternal(w, err, "Failed to hash password")
		return
	}

	now := s.now().UTC()
	user := &repository.UserRecord{
		User: models.User{
			ID:           uuid.New().String(),
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        strings.TrimSpace(req.Email),
			MobileNumber: req.MobileNumber,
			Role:         models.RoleHost,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		PasswordHash: string(hash),
	}

	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			respondError(w, CodeEmailTaken, "Email is already registered", http.StatusConflict)
			return
		}
		s.respondInternal(w, err, "Failed to create user")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Msg("User registered")
	s.respondAuth(w, r, user, http.StatusCreated)
}

func (s *Server) respondAuth(w http.ResponseWriter, r *http.Request, user *repository.UserRecord, status int) {
	token, err := s.tokens.GenerateJWT(user.ID)
	if err != nil {
		s.respondInternal(w, err, "Failed to generate token")
		return
	}
	out, err := s.publicUser(r.Context(), user)
	if err != nil {
		s.respondInternal(w, err, "Failed to count pools")
		return
	}
	respondJSON(w, status, models.AuthResponse{AccessToken: token, User: out})
}

// UpdateUser handles PUT /user
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if !decodeBody(w, r, &req) || !s.validate(w, req) {
		return
	}

	ctx := r.Context()
	user, err := s.users.GetByID(ctx, middleware.GetUserID(ctx))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, middleware.CodeTokenInvalid, "User no longer exists", http.StatusUnauthorized)
			return
		}
		s.respondInternal(w, err, "Failed to get user")
		return
	}

	if pc := req.PasswordChange; pc != nil {
		if !s.validate(w, pc) {
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(pc.CurrentPassword)) != nil {
			respondError(w, CodeInvalidPassword, "Current password is incorrect", http.StatusBadRequest)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pc.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			s.respondInternal(w, err, "Failed to hash password")
			return
		}
		user.PasswordHash = string(hash)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = strings.TrimSpace(req.Email)
	user.MobileNumber = req.MobileNumber
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			respondError(w, CodeEmailTaken, "Email is already registered", http.StatusConflict)
			return
		}
		s.respondInternal(w, err, "Failed to update user")
		return
	}

	out, err := s.publicUser(ctx, user)
	if err != nil {
		s.respondInternal(w, err, "Failed to count pools")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": out})
}

// ForgotPassword handles POST /auth/forgot-password. The response does not
// reveal whether the email is registered.
func (s *Server) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if !decodeBody(w, r, &req) || !s.validate(w, req) {
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	switch {
	case err == nil:
		token, err := s.tokens.GenerateResetToken(user.ID)
		if err != nil {
			s.respondInternal(w, err, "Failed to generate reset token")
			return
		}
		// No mail transport in the demo server
		s.logger.Info().Str("email", user.Email).Str("reset_token", token).Msg("Password reset requested")
	case !errors.Is(err, repository.ErrNotFound):
		s.respondInternal(w, err, "Failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "If the email is registered, a reset link was sent"})
}

// ResetPassword handles POST /auth/reset-password
func (s *Server) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}
	if !decodeBody(w, r, &req) || !s.validate(w, req) {
		return
	}

	userID, err := s.tokens.ValidateResetToken(req.Token)
	if err != nil {
		respondError(w, middleware.CodeTokenInvalid, "Reset link is invalid or expired", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, middleware.CodeTokenInvalid, "Reset link is invalid or expired", http.StatusBadRequest)
			return
		}
		s.respondInternal(w, err, "Failed to get user")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.respondInternal(w, err, "Failed to hash password")
		return
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		s.respondInternal(w, err, "Failed to update user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
