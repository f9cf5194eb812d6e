package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/api"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/config"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/logging"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/repository/postgres"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/service"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}

	repos := postgres.NewRepositories(db)
	services := service.NewServices(repos, cfg)

	hub := websocket.NewHub(services.Series, services.Draft, logger)
	go hub.Run()

	router := api.NewRouter(services, hub, logger)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Stop accepting connections, then stop the rooms.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	hub.Stop()

	logger.Info("server stopped")
}
