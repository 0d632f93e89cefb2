package handler

import (
	"log/slog"
	"net/http"

	"katalog/internal/domain/models"
	"katalog/internal/domain/repositories"
	"katalog/internal/httputil"
)

const defaultLogLimit = 500

// LogsHandler exposes the audit log to operators.
type LogsHandler struct {
	logs   repositories.EventLogRepository
	logger *slog.Logger
}

// NewLogsHandler creates a logs handler.
func NewLogsHandler(logs repositories.EventLogRepository, logger *slog.Logger) *LogsHandler {
	return &LogsHandler{logs: logs, logger: logger}
}

// Latest returns recent audit entries, newest first
// GET /api/logs?limit=500
func (h *LogsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	limit := httputil.QueryInt(r, "limit", defaultLogLimit)
	if limit < 1 || limit > defaultLogLimit {
		limit = defaultLogLimit
	}

	entries, err := h.logs.Latest(r.Context(), limit)
	if err != nil {
		handleError(w, err)
		return
	}
	if entries == nil {
		entries = []models.EventLogEntry{}
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}
