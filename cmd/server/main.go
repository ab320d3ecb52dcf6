package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/recipe-box/config"
	"github.com/ikkim/recipe-box/internal/app/controller"
	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/internal/app/service"
	"github.com/ikkim/recipe-box/internal/flash"
	"github.com/ikkim/recipe-box/internal/middleware"
	"github.com/ikkim/recipe-box/internal/router"
	"github.com/ikkim/recipe-box/internal/storage"
	"github.com/ikkim/recipe-box/pkg/importer"
	"github.com/ikkim/recipe-box/pkg/logger"
	"github.com/ikkim/recipe-box/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "console"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	if cfg.Server.IsProduction() {
		logFormat = "json"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: !cfg.Server.IsProduction(),
	})

	logger.Info("Starting Recipe Box", map[string]interface{}{
		"environment":    cfg.Server.Environment,
		"port":           cfg.Server.Port,
		"log_level":      logLevel,
		"recipes_dir":    cfg.Storage.RecipesDir,
		"upload_backend": cfg.Storage.UploadBackend,
		"flash_backend":  cfg.Flash.Backend,
	})

	// Photo storage
	photoStorage := newPhotoStorage(cfg)

	// Flash messages
	var flashStore flash.Store = flash.NewCookieStore(cfg.Flash.TTL, cfg.Security.CookieSecure)
	if cfg.Flash.Backend == "redis" {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		flashStore = flash.NewRedisStore(cfg.Flash.TTL)
	}

	// Initialize repositories
	recipeRepo, err := repository.NewRecipeRepository(cfg.Storage.RecipesDir, photoStorage)
	if err != nil {
		logger.Fatal("Failed to open recipe directory", err)
	}
	targetRepo := repository.NewTargetRepository(cfg.Monitoring.TargetsFile)

	importClient, err := importer.NewClient(importer.Config{
		WebhookURL: cfg.Import.WebhookURL,
		Timeout:    cfg.Import.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to create import client", err)
	}

	// Initialize services
	recipeService := service.NewRecipeService(recipeRepo)
	reviewService := service.NewReviewService(recipeRepo, service.NewUploadService(photoStorage))
	importService := service.NewImportService(importClient)
	targetService := service.NewTargetService(targetRepo, cfg.Monitoring.ReloadURL, cfg.Monitoring.ReloadTimeout)

	// Initialize controllers
	access := middleware.NewAccessControl(cfg.Security)
	recipeController := controller.NewRecipeController(recipeService, reviewService, access, flashStore)
	editController := controller.NewEditController(recipeService, access, flashStore)
	createController := controller.NewCreateController(recipeService, importService, access, flashStore)
	targetController := controller.NewTargetController(targetService)

	// Setup router
	r := router.NewRouter(
		recipeController,
		editController,
		createController,
		targetController,
		cfg,
	)
	engine, err := r.Setup()
	if err != nil {
		logger.Fatal("Failed to set up router", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}

func newPhotoStorage(cfg *config.Config) storage.PhotoStorage {
	if cfg.Storage.UploadBackend == "s3" {
		return storage.NewS3Storage(
			context.Background(),
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
			cfg.S3.Prefix,
		)
	}
	return storage.NewLocalStorage(cfg.Storage.UploadsDir, router.UploadsURLPrefix)
}
