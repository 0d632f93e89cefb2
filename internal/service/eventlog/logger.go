// Package eventlog implements the fire-and-forget audit logger.
package eventlog

import (
	"context"
	"log/slog"

	"katalog/internal/domain/repositories"
	"katalog/internal/domain/services"
)

// Logger writes audit events to the event log repository. A failed
// write is reported to slog and otherwise dropped: logging must never
// break the main flow, that is a hard contract.
type Logger struct {
	repo   repositories.EventLogRepository
	logger *slog.Logger
}

// New creates an event logger.
func New(repo repositories.EventLogRepository, logger *slog.Logger) services.EventLogger {
	return &Logger{repo: repo, logger: logger}
}

// Log records an event, swallowing any storage failure.
func (l *Logger) Log(ctx context.Context, action, details string) {
	if err := l.repo.Add(ctx, action, details); err != nil {
		l.logger.Warn("event log write failed", "action", action, "error", err)
	}
}
