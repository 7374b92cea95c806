package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/ecolearn/internal/api/handlers"
	"github.com/isdelr/ecolearn/internal/config"
	"github.com/isdelr/ecolearn/internal/fixtures"
	"github.com/isdelr/ecolearn/internal/metrics"
	ws "github.com/isdelr/ecolearn/internal/websocket"
)

// NewRouter creates and configures the fixture backend's Chi router.
func NewRouter(cfg *config.Config, store *fixtures.Store, issuer *fixtures.Issuer, hub *ws.Hub, limiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Rate-Limit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler(time.Now()))
	r.Handle("/metrics", metrics.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(store, issuer, cfg.TokenTTL, cfg.IsProduction)
	carbonHandler := handlers.NewCarbonHandler(store, hub)
	learningHandler := handlers.NewLearningHandler(store)
	eventsHandler := handlers.NewEventsHandler(hub)

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)

		// Public routes
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(JWTMiddleware(issuer))

			r.Get("/auth/me", authHandler.Me)
			r.Get("/events", eventsHandler.Serve)

			r.Route("/carbon", func(r chi.Router) {
				r.Post("/calculate", carbonHandler.Calculate)
				r.Post("/offset", carbonHandler.Offset)
				r.Get("/metrics", carbonHandler.Metrics)
				r.Get("/history", carbonHandler.History)
				r.Get("/timeline", carbonHandler.Timeline)
			})

			r.Route("/learning", func(r chi.Router) {
				r.Post("/generate", learningHandler.Generate)
				r.Post("/personalize/{id}", learningHandler.Personalize)
				r.Get("/paths", learningHandler.List)
				r.Get("/paths/{id}", learningHandler.Get)
			})
		})
	})

	return r
}
