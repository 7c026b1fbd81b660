package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/taskloom/taskloom-api/internal/api"
	apiMiddleware "github.com/taskloom/taskloom-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.userService,
		app.jwtService,
		app.passwordHasher,
		app.tokenLifetime(),
	)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	categoryHandler := api.NewCategoryHandler(app.categoryStore, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)
	ownershipMiddleware := apiMiddleware.NewOwnershipMiddleware(app.taskStore)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.With(httprate.LimitByIP(app.config.Auth.LoginRateLimit, time.Minute)).
			Post("/auth/login", authHandler.Login)

		// Categories are globally readable
		r.Get("/categories", categoryHandler.List)

		// Public task feed needs no identity
		r.Get("/tasks/public", taskHandler.ListPublic)

		// Task detail: reads resolve an identity when one is offered so the
		// ownership check can admit owners of private tasks, but anonymous
		// reads of public tasks still pass.
		r.Route("/tasks/{taskID}", func(r chi.Router) {
			r.With(authMiddleware.AuthenticateOptional, ownershipMiddleware.RequireTaskAccess).
				Get("/", taskHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Use(ownershipMiddleware.RequireTaskAccess)
				r.Put("/", taskHandler.Update)
				r.Delete("/", taskHandler.Delete)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Task endpoints
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks", taskHandler.List)

			// Category management endpoints
			r.Post("/categories", categoryHandler.Create)
			r.Put("/categories/{categoryID}", categoryHandler.Update)
			r.Delete("/categories/{categoryID}", categoryHandler.Delete)

			// Profile endpoints
			r.Get("/users/me", userHandler.GetProfile)
			r.Put("/users/me", userHandler.UpdateProfile)
			r.Put("/users/me/password", userHandler.ChangePassword)
			r.Post("/users/me/deactivate", userHandler.Deactivate)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
