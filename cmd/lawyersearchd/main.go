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

	"github.com/SherClockHolmes/webpush-go"

	"lawyer-search-backend/config"
	"lawyer-search-backend/internal/api"
	"lawyer-search-backend/internal/db"
	"lawyer-search-backend/internal/errorstore"
	"lawyer-search-backend/internal/i18n"
	"lawyer-search-backend/internal/lawyerapi"
	"lawyer-search-backend/internal/localstorage"
	"lawyer-search-backend/internal/notification"
	"lawyer-search-backend/internal/search"
)

func main() {
	logger := log.New(os.Stdout, "lawyer-search ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded from %s (page size %d)", configPath, cfg.Search.ResultsPerPage)

	if cfg.API.BaseURL == "" {
		logger.Fatalf("api.base_url must be configured")
	}

	bundle, err := i18n.Load(cfg.I18n.FallbackLocale)
	if err != nil {
		logger.Fatalf("failed to load message tables: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := api.Deps{Locales: bundle}

	var notifier errorstore.Notifier
	if cfg.Database.DSN != "" {
		gormDB, err := db.Init(&cfg.Database)
		if err != nil {
			logger.Fatalf("failed to initialize database: %v", err)
		}
		logger.Println("database initialized successfully")
		deps.DB = gormDB
		deps.Storage = localstorage.NewGormStorage(gormDB)

		if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
			deps.WebPush = &webpush.Options{
				VAPIDPublicKey:  cfg.Push.PublicKey,
				VAPIDPrivateKey: cfg.Push.PrivateKey,
				Subscriber:      cfg.Push.Subject,
				TTL:             cfg.Push.TTL,
			}
			pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, deps.WebPush, bundle)
			pool.Start(ctx)
			notifier = pool
		} else {
			logger.Println("VAPID keys not configured, errors will not be pushed")
		}
	} else {
		logger.Println("no database configured, using in-memory local storage")
		deps.Storage = localstorage.NewMemoryStorage()
	}

	deps.Errors = errorstore.New(notifier)
	deps.Search = search.NewStore(
		lawyerapi.NewClient(&cfg.API),
		deps.Storage,
		deps.Errors,
		cfg.Search.ResultsPerPage,
	)

	router := api.NewRouter(&cfg.Server, deps)
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
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
