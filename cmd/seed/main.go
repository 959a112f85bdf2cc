package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"promptbox/internal/config"
	"promptbox/internal/repository/postgres"
	"promptbox/internal/seed"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed default categories")
	clearData := flag.Bool("clear-data", false, "Clear all prompts, versions and categories (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Exit early if clear-data mode (just clear and exit)
	if *clearData {
		log.Println("🧹 Clearing existing prompts, versions and categories...")
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	// Seed default categories through the repository layer
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
	}
	categoryRepo := postgres.NewCategoryRepository(repoConfig)

	log.Println("📁 Seeding default categories...")
	if err := seed.EnsureDefaultCategories(ctx, categoryRepo, logger); err != nil {
		log.Fatalf("Failed to seed default categories: %v", err)
	}

	log.Println("🎉 Seeding complete!")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Create categories table
	createCategories := `
		CREATE TABLE IF NOT EXISTS ` + tables.Categories + ` (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT,
			icon TEXT NOT NULL DEFAULT 'folder',
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(name)
		)
	`
	if _, err := pool.Exec(ctx, createCategories); err != nil {
		return err
	}

	// Create prompts table
	createPrompts := `
		CREATE TABLE IF NOT EXISTS ` + tables.Prompts + ` (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			tags TEXT[] NOT NULL DEFAULT '{}',
			category_id UUID REFERENCES ` + tables.Categories + `(id) ON DELETE SET NULL,
			favorite BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createPrompts); err != nil {
		return err
	}

	// Create versions table (append-only, numbered per prompt)
	createVersions := `
		CREATE TABLE IF NOT EXISTS ` + tables.Versions + ` (
			id UUID PRIMARY KEY,
			prompt_id UUID NOT NULL REFERENCES ` + tables.Prompts + `(id) ON DELETE CASCADE,
			version_num INTEGER NOT NULL,
			content TEXT NOT NULL,
			changelog TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(prompt_id, version_num)
		)
	`
	if _, err := pool.Exec(ctx, createVersions); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `categories_position ON ` + tables.Categories + `(position)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `prompts_category_id ON ` + tables.Prompts + `(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `prompts_favorite ON ` + tables.Prompts + `(favorite) WHERE favorite`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `versions_prompt_id ON ` + tables.Versions + `(prompt_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Versions,
		tables.Prompts,
		tables.Categories,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearAllData clears all rows but keeps the schema
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	// Versions first: they reference prompts
	for _, table := range []string{tables.Versions, tables.Prompts, tables.Categories} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
