package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pool-occupancy-backend/config"
	"pool-occupancy-backend/internal/api"
	"pool-occupancy-backend/internal/db"
	"pool-occupancy-backend/internal/scheduler"
	"pool-occupancy-backend/internal/scraper"
	"pool-occupancy-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "poold ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	sched := scheduler.New(cfg, scraper.NewService(cfg, appStore), appStore)
	if cfg.Scraper.Enabled {
		if err := sched.Start(); err != nil {
			logger.Fatalf("failed to start scheduler: %v", err)
		}
		logger.Printf("scheduler started, scraping every %s", cfg.Scraper.Interval)
	} else {
		logger.Println("scraper is disabled; serving stored data only")
	}

	router := api.NewRouter(appStore, api.RouterOptions{
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		CacheTTL:        time.Duration(cfg.Server.CacheTTLSeconds) * time.Second,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
