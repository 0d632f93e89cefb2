package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"katalog/internal/config"
	"katalog/internal/domain/models"
	"katalog/internal/domain/repositories"
	"katalog/internal/domain/services"
)

// queryTemplate frames the raw question for the embedding model. The
// stored product vectors were computed over descriptions, so a little
// "I am looking for a product" context pulls the query into the same
// neighborhood as descriptive text.
const queryTemplate = "Szukam produktu: %s"

// Retriever produces an ordered candidate list for a question. Three
// strategies, first success wins:
//
//  1. follow-up carry-over of the previously shown products,
//  2. keyword scoring over names and descriptions,
//  3. embedding-similarity fallback.
//
// "No match" is not an error: the retriever returns an empty slice and
// downstream components must handle it ("no product fits").
type Retriever struct {
	products   repositories.ProductRepository
	embedder   services.Embedder
	normalizer *Normalizer
	classifier *Classifier
	logger     *slog.Logger
}

// NewRetriever creates a Retriever.
func NewRetriever(
	products repositories.ProductRepository,
	embedder services.Embedder,
	normalizer *Normalizer,
	classifier *Classifier,
	logger *slog.Logger,
) *Retriever {
	return &Retriever{
		products:   products,
		embedder:   embedder,
		normalizer: normalizer,
		classifier: classifier,
		logger:     logger,
	}
}

// Retrieve returns candidate rows for the question. lastIDs are the
// product IDs shown in the previous assistant answer; when the
// question is classified as a follow-up and lastIDs is non-empty,
// exactly those products are fetched again, in the same order.
func (r *Retriever) Retrieve(ctx context.Context, question string, lastIDs []int) ([]models.CandidateRow, error) {
	if len(lastIDs) > 0 && r.classifier.IsFollowUp(question) {
		rows, err := r.carryOver(ctx, lastIDs)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("retrieval: follow-up carry-over", "ids", lastIDs, "rows", len(rows))
		return rows, nil
	}

	tokens := r.normalizer.Tokens(question)
	if len(tokens) > 0 {
		rows, err := r.products.SearchByKeywords(ctx, tokens, config.KeywordCandidateLimit)
		if err != nil {
			return nil, fmt.Errorf("keyword search: %w", err)
		}
		if len(rows) > 0 {
			r.logger.Debug("retrieval: keyword match", "tokens", tokens, "rows", len(rows))
			return rows, nil
		}
	}

	return r.semanticFallback(ctx, question)
}

// carryOver re-fetches the previously shown products, preserving the
// original ID order. The store returns rows in no particular order;
// IDs missing from the ranking sort last, stable by fetch position.
func (r *Retriever) carryOver(ctx context.Context, lastIDs []int) ([]models.CandidateRow, error) {
	rows, err := r.products.FetchByIDs(ctx, lastIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch previous products: %w", err)
	}

	rank := make(map[int]int, len(lastIDs))
	for i, id := range lastIDs {
		rank[id] = i
	}
	unseen := len(lastIDs)

	sort.SliceStable(rows, func(i, j int) bool {
		ri, ok := rank[rows[i].ID]
		if !ok {
			ri = unseen
		}
		rj, ok := rank[rows[j].ID]
		if !ok {
			rj = unseen
		}
		return ri < rj
	})

	return rows, nil
}

// semanticFallback embeds a templated query string and scans for the
// nearest product vectors. Used when keyword scoring yields nothing,
// including questions that normalize to zero tokens.
func (r *Retriever) semanticFallback(ctx context.Context, question string) ([]models.CandidateRow, error) {
	embedding, err := r.embedder.Embed(ctx, fmt.Sprintf(queryTemplate, question))
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := r.products.SearchByEmbedding(ctx, embedding, config.VectorCandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	r.logger.Debug("retrieval: embedding fallback", "rows", len(rows))
	return rows, nil
}
