package models

import (
	"time"
)

// EventLogEntry is an operator-visible audit record.
type EventLogEntry struct {
	ID        int       `json:"id" db:"id"`
	Action    string    `json:"action" db:"action"`
	Details   string    `json:"details" db:"details"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
