package services

import (
	"context"

	"katalog/internal/domain/models"
)

// CreateProductRequest carries operator input for adding a product.
// The description and embedding are generated, never supplied.
type CreateProductRequest struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// UpdateProductRequest carries operator input for editing a product.
// Editing fully regenerates the description and embedding from the
// (possibly unchanged) link.
type UpdateProductRequest struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// ProductService manages the product lifecycle.
type ProductService interface {
	// CreateProduct scrapes the link, generates a Markdown description,
	// embeds it and stores the product.
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error)

	// UpdateProduct re-runs the full scrape/describe/embed pipeline and
	// replaces the stored product.
	UpdateProduct(ctx context.Context, productID int, req *UpdateProductRequest) (*models.Product, error)

	// DeleteProduct removes a product and (via cascade) its reviews.
	DeleteProduct(ctx context.Context, productID int) error

	// GetProduct returns a product with its reviews.
	GetProduct(ctx context.Context, productID int) (*models.ProductWithReviews, error)

	// ListProducts returns one page of the catalog.
	ListProducts(ctx context.Context, page, perPage int, query string) (*models.ProductPage, error)
}

// AddReviewRequest carries user input for a new review.
type AddReviewRequest struct {
	ProductID int    `json:"product_id"`
	Text      string `json:"review_text"`
}

// ReviewService manages user reviews.
type ReviewService interface {
	AddReview(ctx context.Context, req *AddReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, reviewID int, text string) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID int) error
}

// EventLogger records operator-visible audit events. Logging is
// fire-and-forget: implementations must swallow failures so the main
// flow never breaks on a logging problem.
type EventLogger interface {
	Log(ctx context.Context, action, details string)
}
