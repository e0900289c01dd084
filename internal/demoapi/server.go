// Package demoapi is a self-contained implementation of the marketplace HTTP
// API, used for local development and end-to-end tests of the client.
package demoapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pool-market-client/internal/imagestore"
	"pool-market-client/internal/middleware"
	"pool-market-client/internal/models"
	"pool-market-client/internal/repository"
	"pool-market-client/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Error codes of the API besides the auth codes written by the middleware.
const (
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeInternal           = "INTERNAL"
)

// Users stores accounts
type Users interface {
	Create(ctx context.Context, user *repository.UserRecord) error
	GetByID(ctx context.Context, id string) (*repository.UserRecord, error)
	GetByEmail(ctx context.Context, email string) (*repository.UserRecord, error)
	Update(ctx context.Context, user *repository.UserRecord) error
	List(ctx context.Context) ([]models.User, error)
}

// Pools stores listings
type Pools interface {
	Create(ctx context.Context, pool *models.Pool) error
	GetByID(ctx context.Context, id string) (*models.Pool, error)
	List(ctx context.Context, q repository.PoolQuery) ([]models.Pool, error)
	Update(ctx context.Context, pool *models.Pool) error
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int, error)
}

// Options configures a Server
type Options struct {
	Users       Users
	Pools       Pools
	Images      imagestore.Store
	Tokens      *TokenIssuer
	AdminSecret string
	Logger      zerolog.Logger
	Now         func() time.Time
}

// Server serves the marketplace API
type Server struct {
	users       Users
	pools       Pools
	images      imagestore.Store
	tokens      *TokenIssuer
	adminSecret string
	validator   *validation.Validator
	logger      zerolog.Logger
	now         func() time.Time
}

// New creates a demo API server
func New(opts Options) *Server {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Server{
		users:       opts.Users,
		pools:       opts.Pools,
		images:      opts.Images,
		tokens:      opts.Tokens,
		adminSecret: opts.AdminSecret,
		validator:   validation.New(),
		logger:      opts.Logger,
		now:         now,
	}
}

// Routes returns the HTTP handler of the API
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chiMiddleware.Recoverer)

	// Public routes
	r.Post("/auth/login", s.Login)
	r.Post("/auth/register", s.Register)
	r.Post("/auth/forgot-password", s.ForgotPassword)
	r.Post("/auth/reset-password", s.ResetPassword)
	r.Get("/pools", s.ListPools)
	r.Get("/pool", s.GetPool)
	r.Get("/images/*", s.ServeImage)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(s.tokens))
		r.Put("/user", s.UpdateUser)
		r.Post("/pools", s.CreatePool)
		r.Put("/pools/{id}", s.UpdatePool)
		r.Delete("/pools/{id}", s.DeletePool)
		r.Post("/upload/image", s.UploadImage)
		r.Post("/upload/images", s.UploadImages)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminSecret(s.adminSecret))
		r.Put("/pools/{id}/visibility", s.SetVisibility)
		r.Get("/admin/pools", s.AdminListPools)
		r.Get("/admin/users", s.AdminListUsers)
	})

	return r
}

// Seed creates a host account owning the demo listings unless it exists
func (s *Server) Seed(ctx context.Context, email, password string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to look up demo host: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	host := &repository.UserRecord{
		User: models.User{
			ID:           uuid.New().String(),
			FirstName:    "Demo",
			LastName:     "Host",
			Email:        email,
			MobileNumber: "+38761000000",
			Role:         models.RoleHost,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, host); err != nil {
		return fmt.Errorf("failed to create demo host: %w", err)
	}

	for _, p := range repository.DemoPools(host.ID, now) {
		if err := s.pools.Create(ctx, &p); err != nil {
			return fmt.Errorf("failed to create demo pool: %w", err)
		}
	}

	s.logger.Info().Str("email", email).Msg("Demo data seeded")
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", chiMiddleware.GetReqID(r.Context())).
			Msg("Request handled")
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, code, message string, status int) {
	middleware.RespondError(w, code, message, status)
}

func (s *Server) respondInternal(w http.ResponseWriter, err error, msg string) {
	s.logger.Error().Err(err).Msg(msg)
	respondError(w, CodeInternal, "Internal server error", http.StatusInternalServerError)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, CodeBadRequest, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) validate(w http.ResponseWriter, v any) bool {
	if err := s.validator.Validate(v); err != nil {
		respondError(w, CodeValidationFailed, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// publicUser returns the user as sent to clients, with its pool count
func (s *Server) publicUser(ctx context.Context, u *repository.UserRecord) (models.User, error) {
	count, err := s.pools.CountByUser(ctx, u.ID)
	if err != nil {
		return models.User{}, err
	}
	out := u.User
	out.PublishedPoolsCount = &count
	return out, nil
}
