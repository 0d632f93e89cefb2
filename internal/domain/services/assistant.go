package services

import (
	"context"

	"katalog/internal/domain/models"
)

// AskResult is one completed assistant turn.
type AskResult struct {
	// Answer is the user-facing text with the trailing product-ID
	// directive stripped.
	Answer string `json:"answer"`

	// Rows are the candidate rows the model actually recommended,
	// in the original retrieval order.
	Rows []models.CandidateRow `json:"rows"`

	// State is the new session state (history including this turn's
	// user and assistant messages, plus the recommended product IDs)
	// for the caller to persist. It is returned as one atomic value:
	// on error nothing is committed.
	State models.SessionState `json:"state"`
}

// AssistantService answers free-text product questions grounded in a
// retrieved candidate set and the prior conversation.
type AssistantService interface {
	// Answer runs one turn of the retrieval-augmented pipeline.
	// Returns domain.ErrValidation for an empty question (before any
	// retrieval or model call) and domain.UpstreamError when the
	// language model call fails.
	Answer(ctx context.Context, question string, state models.SessionState) (*AskResult, error)
}
