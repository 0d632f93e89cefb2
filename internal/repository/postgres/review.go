package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"katalog/internal/domain"
	"katalog/internal/domain/models"
	"katalog/internal/domain/repositories"
)

// PostgresReviewRepository implements the ReviewRepository interface
// using PostgreSQL.
type PostgresReviewRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewReviewRepository creates a new PostgresReviewRepository
func NewReviewRepository(config *RepositoryConfig) repositories.ReviewRepository {
	return &PostgresReviewRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Add stores a new review and fills in its ID and creation time.
func (r *PostgresReviewRepository) Add(ctx context.Context, review *models.Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (product_id, review_text)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, r.tables.Reviews)

	err := r.pool.QueryRow(ctx, query, review.ProductID, review.Text).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("product %d: %w", review.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("add review: %w", err)
	}

	return nil
}

// Update replaces a review's text.
func (r *PostgresReviewRepository) Update(ctx context.Context, reviewID int, text string) error {
	query := fmt.Sprintf(`UPDATE %s SET review_text = $1 WHERE id = $2`, r.tables.Reviews)

	tag, err := r.pool.Exec(ctx, query, text, reviewID)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %d: %w", reviewID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a review.
func (r *PostgresReviewRepository) Delete(ctx context.Context, reviewID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Reviews)

	tag, err := r.pool.Exec(ctx, query, reviewID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %d: %w", reviewID, domain.ErrNotFound)
	}

	return nil
}

// Get retrieves a single review.
func (r *PostgresReviewRepository) Get(ctx context.Context, reviewID int) (*models.Review, error) {
	query := fmt.Sprintf(`
		SELECT id, product_id, review_text, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Reviews)

	var review models.Review
	err := r.pool.QueryRow(ctx, query, reviewID).Scan(
		&review.ID,
		&review.ProductID,
		&review.Text,
		&review.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("review %d: %w", reviewID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &review, nil
}

// ListForProduct returns a product's reviews, newest first.
func (r *PostgresReviewRepository) ListForProduct(ctx context.Context, productID int) ([]models.Review, error) {
	query := fmt.Sprintf(`
		SELECT id, product_id, review_text, created_at
		FROM %s
		WHERE product_id = $1
		ORDER BY id DESC
	`, r.tables.Reviews)

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.ProductID, &review.Text, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}
