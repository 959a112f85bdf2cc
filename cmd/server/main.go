package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"promptbox/internal/config"
	"promptbox/internal/handler"
	"promptbox/internal/middleware"
	"promptbox/internal/repository/postgres"
	"promptbox/internal/seed"
	"promptbox/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
	}
	categoryRepo := postgres.NewCategoryRepository(repoConfig)
	promptRepo := postgres.NewPromptRepository(repoConfig)
	versionRepo := postgres.NewVersionRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Seed default categories on first run
	if err := seed.EnsureDefaultCategories(ctx, categoryRepo, logger); err != nil {
		logger.Warn("default category seeding failed", "error", err)
	}

	// Create services
	categoryService := service.NewCategoryService(categoryRepo, promptRepo, txManager, logger)
	promptService := service.NewPromptService(promptRepo, categoryRepo, logger)
	versionService := service.NewVersionService(versionRepo, promptRepo, txManager, logger)

	// Create handlers
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	promptHandler := handler.NewPromptHandler(promptService, logger)
	versionHandler := handler.NewVersionHandler(versionService, logger)
	previewHandler := handler.NewPreviewHandler(logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Category routes; reorder must come before {id}
	mux.HandleFunc("GET /api/categories", categoryHandler.ListCategories)
	mux.HandleFunc("POST /api/categories", categoryHandler.CreateCategory)
	mux.HandleFunc("PUT /api/categories/reorder", categoryHandler.ReorderCategories)
	mux.HandleFunc("PUT /api/categories/{id}", categoryHandler.UpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", categoryHandler.DeleteCategory)

	// Prompt routes (the frontend calls them projects)
	mux.HandleFunc("GET /api/projects", promptHandler.ListPrompts)
	mux.HandleFunc("POST /api/projects", promptHandler.CreatePrompt)
	mux.HandleFunc("GET /api/projects/{id}", promptHandler.GetPrompt)
	mux.HandleFunc("PUT /api/projects/{id}", promptHandler.UpdatePrompt)
	mux.HandleFunc("DELETE /api/projects/{id}", promptHandler.DeletePrompt)
	mux.HandleFunc("POST /api/projects/{id}/favorite", promptHandler.ToggleFavorite)

	// Version routes
	mux.HandleFunc("GET /api/projects/{id}/versions", versionHandler.ListVersions)
	mux.HandleFunc("POST /api/projects/{id}/versions", versionHandler.CreateVersion)
	mux.HandleFunc("GET /api/versions/{id}/content", versionHandler.RestoreVersion)

	// Template preview
	mux.HandleFunc("POST /api/render/preview", previewHandler.RenderPreview)

	// Build middleware chain
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)

	// CORS - before everything else so OPTIONS pre-flight is handled
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
