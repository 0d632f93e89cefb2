package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"katalog/internal/config"
	"katalog/internal/repository/postgres"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "drop all application tables before recreating them")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *dropTables && cfg.Environment == "prod" {
		log.Fatal("refusing to drop tables in prod")
	}

	ctx := context.Background()

	// Maintenance pool skips vector codec registration so it works
	// before the extension has been created.
	pool, err := postgres.CreateMaintenancePool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		logger.Info("dropping tables", "prefix", cfg.TablePrefix)
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	logger.Info("creating schema", "prefix", cfg.TablePrefix, "embedding_dim", cfg.EmbeddingDim)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.EmbeddingDim); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	logger.Info("schema ready")
}
