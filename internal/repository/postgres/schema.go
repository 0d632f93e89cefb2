package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the vector extension and all application tables
// if they do not exist. Embedding dimension is fixed at table creation
// time; changing it requires a migration that re-embeds every product.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, embeddingDim int) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				link TEXT NOT NULL DEFAULT '',
				embedding vector(%d)
			)`, tables.Products, embeddingDim),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id SERIAL PRIMARY KEY,
				product_id INT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				review_text TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Reviews, tables.Products),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id SERIAL PRIMARY KEY,
				action TEXT NOT NULL,
				details TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.EventLogs),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropTables removes all application tables and is only reachable from
// cmd/seed, which refuses to run it in production.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	// Reviews reference products, so they go first.
	for _, table := range []string{tables.Reviews, tables.Products, tables.EventLogs} {
		if _, err := pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
			return fmt.Errorf("drop table %s: %w", table, err)
		}
	}
	return nil
}
