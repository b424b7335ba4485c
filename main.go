package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sitca-league/sitca-backend/config"
	_ "github.com/sitca-league/sitca-backend/docs"
	"github.com/sitca-league/sitca-backend/internal/player"
	"github.com/sitca-league/sitca-backend/internal/user"
	"github.com/sitca-league/sitca-backend/pkg/uploads"
	"github.com/sitca-league/sitca-backend/routes"
)

// @title SITCA League REST API
// @version 1.0
// @description Player registration and approval backend for the SITCA cricket league.
// @host localhost:5000
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{},
		&player.Player{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	if err := uploads.EnsureDir(cfg.App.UploadDir); err != nil {
		log.Fatalf("Failed to create upload directory %s: %v", cfg.App.UploadDir, err)
	}

	r := routes.SetupRoutes(config.DB, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := config.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	log.Println("Server stopped")
}
