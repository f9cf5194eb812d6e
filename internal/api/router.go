package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/api/handlers"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/api/middleware"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/service"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth)
	seriesHandler := handlers.NewSeriesHandler(services.Series)
	championHandler := handlers.NewChampionHandler(services.Champion, logger)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth, logger)

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
			})
		})

		// Champion catalog (public)
		r.Route("/champions", func(r chi.Router) {
			r.Get("/", championHandler.GetAll)
			r.Get("/{id}", championHandler.Get)
			r.Post("/sync", championHandler.Sync) // Should be admin-only in production
		})

		// Series routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/series", func(r chi.Router) {
				r.Post("/", seriesHandler.Create)
				r.Get("/{idOrCode}", seriesHandler.Get)
				r.Post("/{idOrCode}/join", seriesHandler.Join)
				r.Get("/{idOrCode}/games", seriesHandler.GetGames)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
