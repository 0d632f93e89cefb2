package repositories

import (
	"context"

	"katalog/internal/domain/models"
)

// EventLogRepository defines the interface for audit log data access.
type EventLogRepository interface {
	// Add appends an audit record.
	Add(ctx context.Context, action, details string) error

	// Latest returns the most recent entries, newest first.
	Latest(ctx context.Context, limit int) ([]models.EventLogEntry, error)
}
