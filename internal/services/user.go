package services

import (
	"context"
	"sync"

	"pool-market-client/internal/api"
	"pool-market-client/internal/models"
	"pool-market-client/internal/storage"
	"pool-market-client/internal/validation"

	"github.com/rs/zerolog"
)

// Result is the outcome of a store operation
type Result string

const (
	ResultSuccess Result = "success"
	ResultError   Result = "error"
)

// legacyEmailTakenMessage is what older servers send instead of CodeEmailTaken
const legacyEmailTakenMessage = "Email"

// User-facing session messages.
const (
	msgLoginSuccess    = "Logged in successfully."
	msgLoginFailed     = "Invalid credentials."
	msgRegisterSuccess = "Registered successfully."
	msgRegisterFailed  = "Registration failed."
	msgEmailTaken      = "This email is already in use."
	msgProfileUpdated  = "Profile updated."
	msgProfileFailed   = "Profile update failed."
	msgLogoutSuccess   = "Logged out successfully."
)

// UserAPI is the part of the API client used by the session
type UserAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	UpdateUser(ctx context.Context, req models.UpdateUserRequest) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, password string) error
}

// UserService holds the current session: a user or nobody
type UserService struct {
	mu            sync.RWMutex
	user          *models.User
	api           UserAPI
	storage       *storage.Adapter
	tokens        api.TokenStore
	notifications *NotificationService
	validator     *validation.Validator
	hub           *Hub
	logger        zerolog.Logger
}

// NewUserService creates the session store and restores the persisted user
// without asking the server whether it is still valid
func NewUserService(
	userAPI UserAPI,
	storage *storage.Adapter,
	tokens api.TokenStore,
	notifications *NotificationService,
	validator *validation.Validator,
	hub *Hub,
	logger zerolog.Logger,
) *UserService {
	s := &UserService{
		api:           userAPI,
		storage:       storage,
		tokens:        tokens,
		notifications: notifications,
		validator:     validator,
		hub:           hub,
		logger:        logger,
	}
	s.user = s.load()
	return s
}

func (s *UserService) load() *models.User {
	var u models.User
	if !s.storage.Get(storage.UserKey, &u) || u.ID == "" {
		return nil
	}
	return &u
}

// User returns a copy of the current user, or nil when anonymous
func (s *UserService) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user is held
func (s *UserService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *UserService) setUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	if u != nil {
		s.storage.Set(storage.UserKey, u)
	} else {
		s.storage.Remove(storage.UserKey)
	}
	s.mu.Unlock()

	s.hub.Publish(Event{Type: EventSession, Data: s.User()})
}

// Login authenticates with email and password
func (s *UserService) Login(ctx context.Context, email, password string) Result {
	req := models.LoginRequest{Email: email, Password: password}
	if !validateInput(s.validator, s.notifications, req) {
		return ResultError
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("Login failed")
		s.notifications.Add(failureMessage(err, msgLoginFailed), models.NotificationError)
		return ResultError
	}

	user := resp.User
	s.setUser(&user)
	s.logger.Info().Str("user_id", user.ID).Msg("User logged in")
	s.notifications.Add(msgLoginSuccess, models.NotificationSuccess)
	return ResultSuccess
}

// Register creates an account and signs it in
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) Result {
	if !validateInput(s.validator, s.notifications, req) {
		return ResultError
	}

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		if isEmailTaken(err) {
			s.notifications.Add(msgEmailTaken, models.NotificationError)
		} else {
			s.notifications.Add(failureMessage(err, msgRegisterFailed), models.NotificationError)
		}
		return ResultError
	}

	user := resp.User
	s.setUser(&user)
	s.logger.Info().Str("user_id", user.ID).Msg("User registered")
	s.notifications.Add(msgRegisterSuccess, models.NotificationSuccess)
	return ResultSuccess
}

// UpdateProfile updates the current user. It fails without a call when anonymous.
func (s *UserService) UpdateProfile(ctx context.Context, req models.UpdateUserRequest) Result {
	if !s.IsAuthenticated() {
		return ResultError
	}
	if !validateInput(s.validator, s.notifications, req) {
		return ResultError
	}

	user, err := s.api.UpdateUser(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Profile update failed")
		s.notifications.Add(msgProfileFailed, models.NotificationError)
		return ResultError
	}

	s.setUser(user)
	s.notifications.Add(msgProfileUpdated, models.NotificationSuccess)
	return ResultSuccess
}

// RequestForgotPassword asks the server to send a password reset email
func (s *UserService) RequestForgotPassword(ctx context.Context, email string) Result {
	if err := s.api.ForgotPassword(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("Forgot password request failed")
		return ResultError
	}
	return ResultSuccess
}

// RequestResetPassword sets a new password using a reset token
func (s *UserService) RequestResetPassword(ctx context.Context, resetToken, newPassword string) Result {
	if err := s.api.ResetPassword(ctx, resetToken, newPassword); err != nil {
		s.logger.Warn().Err(err).Msg("Password reset failed")
		return ResultError
	}
	return ResultSuccess
}

// Logout clears the user and the access token. It never fails.
func (s *UserService) Logout() {
	s.setUser(nil)
	s.tokens.Set("")
	s.notifications.Add(msgLogoutSuccess, models.NotificationSuccess)
}

// IncrementPublishedPoolsCount bumps the local published pools counter
func (s *UserService) IncrementPublishedPoolsCount() {
	s.adjustPublishedPools(1)
}

// DecrementPublishedPoolsCount lowers the local published pools counter, never below zero
func (s *UserService) DecrementPublishedPoolsCount() {
	s.adjustPublishedPools(-1)
}

func (s *UserService) adjustPublishedPools(delta int) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	current := 0
	if s.user.PublishedPoolsCount != nil {
		current = *s.user.PublishedPoolsCount
	}
	next := max(0, current+delta)
	s.user.PublishedPoolsCount = &next
	s.storage.Set(storage.UserKey, s.user)
	s.mu.Unlock()

	s.hub.Publish(Event{Type: EventSession, Data: s.User()})
}

// failureMessage picks the server or network message for err, else fallback
func failureMessage(err error, fallback string) string {
	apiErr, ok := api.AsError(err)
	if !ok {
		return fallback
	}
	switch apiErr.Kind {
	case api.KindDomain, api.KindNetwork:
		return apiErr.Message
	}
	return fallback
}

func isEmailTaken(err error) bool {
	apiErr, ok := api.AsError(err)
	if !ok {
		return false
	}
	return apiErr.Code == api.CodeEmailTaken || apiErr.Message == legacyEmailTakenMessage
}
