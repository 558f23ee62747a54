package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/smartsite/task-api/internal/api"
	apiMiddleware "github.com/smartsite/task-api/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	if app.jwtService != nil {
		r.Use(apiMiddleware.NewActorMiddleware(app.jwtService).IdentifyActor)
	}

	healthHandler := api.NewHealthHandler(app.db)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", taskHandler.CreateTask)
		r.Get("/", taskHandler.ListTasks)
		r.Get("/{id}", taskHandler.GetTask)
		r.Patch("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
		r.Get("/{id}/history", taskHandler.GetTaskHistory)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return c.Handler(r)
}
