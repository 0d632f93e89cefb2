package repositories

import (
	"context"

	"katalog/internal/domain/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// Add stores a new review and fills in its generated ID and
	// creation time.
	Add(ctx context.Context, review *models.Review) error

	// Update replaces a review's text.
	// Returns domain.ErrNotFound if not found.
	Update(ctx context.Context, reviewID int, text string) error

	// Delete removes a review.
	// Returns domain.ErrNotFound if not found.
	Delete(ctx context.Context, reviewID int) error

	// Get retrieves a single review.
	// Returns domain.ErrNotFound if not found.
	Get(ctx context.Context, reviewID int) (*models.Review, error)

	// ListForProduct returns a product's reviews, newest first.
	ListForProduct(ctx context.Context, productID int) ([]models.Review, error)
}
