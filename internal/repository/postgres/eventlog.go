package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"katalog/internal/domain/models"
	"katalog/internal/domain/repositories"
)

// PostgresEventLogRepository implements the EventLogRepository
// interface using PostgreSQL.
type PostgresEventLogRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewEventLogRepository creates a new PostgresEventLogRepository
func NewEventLogRepository(config *RepositoryConfig) repositories.EventLogRepository {
	return &PostgresEventLogRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Add appends an audit record.
func (r *PostgresEventLogRepository) Add(ctx context.Context, action, details string) error {
	query := fmt.Sprintf(`INSERT INTO %s (action, details) VALUES ($1, $2)`, r.tables.EventLogs)

	if _, err := r.pool.Exec(ctx, query, action, details); err != nil {
		return fmt.Errorf("add event log: %w", err)
	}
	return nil
}

// Latest returns the most recent entries, newest first.
func (r *PostgresEventLogRepository) Latest(ctx context.Context, limit int) ([]models.EventLogEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, action, details, created_at
		FROM %s
		ORDER BY id DESC
		LIMIT $1
	`, r.tables.EventLogs)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list event logs: %w", err)
	}
	defer rows.Close()

	var entries []models.EventLogEntry
	for rows.Next() {
		var entry models.EventLogEntry
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event log: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list event logs: %w", err)
	}

	return entries, nil
}
