package services

import (
	"context"

	"katalog/internal/domain/models"
)

// Completer is the chat-completion collaborator. It must accept
// multi-turn message sequences with distinct roles. The core treats it
// as a pure (if nondeterministic) call: retries and backoff, if any,
// belong to the implementation boundary, not to callers.
type Completer interface {
	Complete(ctx context.Context, messages []models.Turn, temperature float32) (string, error)
}

// Embedder maps text to a fixed-dimension vector, deterministically for
// identical input. The same embedder must be used for stored product
// descriptions and for retrieval queries so dimensions always match.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the vector length this embedder produces.
	Dimension() int
}
