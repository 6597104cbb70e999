package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/notewell/notewell-api/internal/api"
	apiMiddleware "github.com/notewell/notewell-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	noteHandler := api.NewNoteHandler(app.noteService, app.logger)
	quizHandler := api.NewQuizHandler(app.quizService, app.logger)
	refDataHandler := api.NewRefDataHandler(app.countries, app.frameworks, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Reference data (public, served from the expiring cache)
		r.Get("/reference/countries", refDataHandler.ListCountries)
		r.Get("/reference/frameworks/{code}", refDataHandler.GetFramework)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Note endpoints
			r.Post("/notes", noteHandler.CreateNote)
			r.Get("/notes", noteHandler.ListNotes)
			r.Get("/notes/{id}", noteHandler.GetNote)
			r.Put("/notes/{id}", noteHandler.UpdateNote)
			r.Delete("/notes/{id}", noteHandler.DeleteNote)

			// Quiz endpoints
			r.Post("/notes/{id}/quizzes", quizHandler.GenerateQuiz)
			r.Get("/notes/{id}/quizzes", quizHandler.ListQuizzes)
			r.Get("/quizzes/{id}", quizHandler.GetQuiz)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
