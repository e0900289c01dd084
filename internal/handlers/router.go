package handlers

import (
	"net/http"
	"slices"
	"time"

	"pool-market-client/internal/middleware"
	"pool-market-client/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// ContactInfo is the marketplace administrator contact shown to users
type ContactInfo struct {
	MobileNumber string `json:"mobileNumber,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// RouterOptions holds the stores served by the bridge
type RouterOptions struct {
	Users          *services.UserService
	Pools          *services.PoolService
	Favorites      *services.FavoritesService
	Notifications  *services.NotificationService
	WSHub          *services.WSHub
	Contact        ContactInfo
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter builds the bridge HTTP handler
func NewRouter(opts RouterOptions) http.Handler {
	userHandler := NewUserHandler(opts.Users, opts.Notifications)
	poolHandler := NewPoolHandler(opts.Pools, opts.Users, opts.Notifications)
	favoritesHandler := NewFavoritesHandler(opts.Favorites, opts.Pools, opts.Notifications)
	notificationHandler := NewNotificationHandler(opts.Notifications)
	wsHandler := NewWebSocketHandler(opts.WSHub, opts.Users, opts.Favorites, opts.Notifications, originChecker(opts.AllowedOrigins))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger(opts.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/contact", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, opts.Contact)
		})

		r.Get("/session", userHandler.GetSession)
		r.Post("/session/login", userHandler.Login)
		r.Post("/session/register", userHandler.Register)
		r.Delete("/session", userHandler.Logout)
		r.Post("/session/forgot-password", userHandler.ForgotPassword)
		r.Post("/session/reset-password", userHandler.ResetPassword)

		r.Get("/pools", poolHandler.ListPools)
		r.Get("/pools/{id}", poolHandler.GetPool)

		r.Get("/favorites", favoritesHandler.ListFavorites)
		r.Post("/favorites/toggle", favoritesHandler.Toggle)

		r.Get("/notifications", notificationHandler.ListNotifications)
		r.Delete("/notifications/{index}", notificationHandler.RemoveNotification)

		// Host routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(opts.Users))
			r.Put("/session/profile", userHandler.UpdateProfile)
			r.Post("/pools", poolHandler.CreatePool)
			r.Put("/pools/{id}", poolHandler.UpdatePool)
			r.Delete("/pools/{id}", poolHandler.DeletePool)
		})
	})

	r.Get("/ws", wsHandler.HandleWebSocket)

	return r
}

// originChecker accepts WebSocket upgrades from the allowed origins.
// A "*" entry or an empty list accepts everything.
func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Debug().
				Str("request_id", chiMiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("Bridge request")
		})
	}
}
