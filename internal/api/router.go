package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
		r.Post("/login", apiHandler.LoginHandler)

		r.Post("/sessions", apiHandler.CreateSessionHandler)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", apiHandler.GetSessionHandler)
			r.Delete("/", apiHandler.DeleteSessionHandler)
			r.Post("/events", apiHandler.EventHandler)
			r.Post("/tabs/{tabID}", apiHandler.NavigateHandler)
			r.Post("/keys/{key}", apiHandler.KeyHandler)
			r.Post("/training/start", apiHandler.StartTrainingHandler)
			r.Post("/training/reset", apiHandler.ResetTrainingHandler)
			r.Post("/generate", apiHandler.GenerateHandler)
			r.Post("/chat", apiHandler.ChatHandler)
			r.Post("/apps/{section}", apiHandler.AppSectionHandler)
		})

		r.Get("/responses", apiHandler.ListResponsesHandler)

		// Customization routes, token-protected when auth is configured
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)
			r.Post("/responses/{table}", apiHandler.AddResponseHandler)
		})
	})

	return r
}
