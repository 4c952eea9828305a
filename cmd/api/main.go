package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-posting-workflow/config"
	v1 "go-posting-workflow/internal/delivery/http/v1"
	"go-posting-workflow/internal/repository/file"
	"go-posting-workflow/internal/repository/postgres"
	"go-posting-workflow/internal/usecase"
	"go-posting-workflow/pkg/database"
	"go-posting-workflow/pkg/logger"
	"go-posting-workflow/pkg/redis"
	"go-posting-workflow/pkg/validation"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting posting workflow service", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting falls back to in-memory when unavailable)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting runs in-memory", "error", err)
	}

	// 5. Setup Repositories
	draftRepo := postgres.NewDraftRepository(dbPool)
	postingRepo := postgres.NewPostingRepository(dbPool)
	capacityRepo := postgres.NewCapacityRepository(dbPool)
	templateRepo := postgres.NewTemplateRepository(dbPool)

	legacyStore, err := file.NewLegacyStore(cfg.LegacyDraftDir)
	if err != nil {
		logger.Log.Error("Failed to prepare legacy draft directory", "error", err)
		os.Exit(1)
	}

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	stepValidator := usecase.NewStepValidator(validate)
	gate := usecase.NewSubmissionGate(stepValidator, capacityRepo, postingRepo)
	templateUC := usecase.NewTemplateUsecase(templateRepo, validate)
	sessions := usecase.NewSessionManager(draftRepo, legacyStore, cfg.AutosaveInterval, logger.Log)
	defer sessions.Close()

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		Sessions:      sessions,
		StepValidator: stepValidator,
		Gate:          gate,
		Templates:     templateUC,
		Postings:      postingRepo,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
