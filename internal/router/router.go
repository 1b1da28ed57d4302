package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"branches-api/internal/config"
	"branches-api/internal/handler"
	"branches-api/internal/middleware"
	"branches-api/internal/model"
)

type Handlers struct {
	Auth  *handler.AuthHandler
	Board *handler.BoardHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(model.HealthResponse{Status: "ok"})
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "Branches API running",
			"try":     "/health",
		})
	})

	r.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", handlers.Auth.Register)
		auth.Post("/login", handlers.Auth.Login)
		auth.With(authMiddleware.RequireAuth).Get("/me", handlers.Auth.Me)
	})

	r.Route("/boards", func(boards chi.Router) {
		boards.Use(authMiddleware.OptionalAuth)

		boards.Get("/", handlers.Board.List)
		boards.Post("/", handlers.Board.Create)
		boards.Delete("/{id}", handlers.Board.Delete)
		boards.Get("/{id}/columns", handlers.Board.ListColumns)
		boards.Post("/{id}/columns", handlers.Board.CreateColumn)
		boards.Put("/{id}/columns/{cid}", handlers.Board.UpdateColumn)
		boards.Delete("/{id}/columns/{cid}", handlers.Board.DeleteColumn)
	})

	return r
}
