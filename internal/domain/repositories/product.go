package repositories

import (
	"context"

	"katalog/internal/domain/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// Insert stores a new product and fills in its generated ID.
	Insert(ctx context.Context, product *models.Product) error

	// Update replaces a product's mutable fields (name, link,
	// description, embedding).
	// Returns domain.ErrNotFound if not found.
	Update(ctx context.Context, product *models.Product) error

	// Delete removes a product; its reviews go with it (FK cascade).
	// Returns domain.ErrNotFound if not found.
	Delete(ctx context.Context, productID int) error

	// Get retrieves a single product without its embedding.
	// Returns domain.ErrNotFound if not found.
	Get(ctx context.Context, productID int) (*models.Product, error)

	// ListPaginated returns one page of products with their reviews,
	// optionally filtered by a case-insensitive substring query over
	// name and description.
	ListPaginated(ctx context.Context, page, perPage int, query string) (*models.ProductPage, error)

	// FetchByIDs returns candidate rows for the given product IDs with
	// newline-aggregated review text. Row order is unspecified; the
	// caller reorders. Unknown IDs are silently skipped.
	FetchByIDs(ctx context.Context, ids []int) ([]models.CandidateRow, error)

	// SearchByKeywords returns up to limit candidate rows whose name or
	// description contains any of the tokens (case-insensitive), scored
	// 2 per name hit + 1 per description hit summed over tokens,
	// ordered by descending score with ties broken by descending ID.
	SearchByKeywords(ctx context.Context, tokens []string, limit int) ([]models.CandidateRow, error)

	// SearchByEmbedding returns the limit nearest products to the query
	// vector by inner-product distance, with aggregated review text.
	SearchByEmbedding(ctx context.Context, embedding []float32, limit int) ([]models.CandidateRow, error)
}
