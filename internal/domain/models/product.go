package models

import (
	"time"
)

// Product represents a catalog entry. The description is a
// Markdown document generated from the scraped source link, and the
// embedding is always derived from that description - the two are
// regenerated together on every edit.
type Product struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Link        string    `json:"link,omitempty" db:"link"`
	Embedding   []float32 `json:"-" db:"embedding"`
}

// Review is a free-text user opinion attached to a product.
// Reviews are deleted together with their product (FK cascade).
type Review struct {
	ID        int       `json:"id" db:"id"`
	ProductID int       `json:"product_id" db:"product_id"`
	Text      string    `json:"text" db:"review_text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CandidateRow is a transient retrieval result: a product joined with
// its newline-aggregated review text. Not persisted.
type CandidateRow struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
	Reviews     string `json:"reviews,omitempty"`
}

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Products   []ProductWithReviews `json:"products"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
}

// ProductWithReviews is a product plus its individual reviews, used by
// the listing and detail views.
type ProductWithReviews struct {
	Product
	Reviews []Review `json:"reviews"`
}
