package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"katalog/internal/domain"
	"katalog/internal/domain/models"
	"katalog/internal/domain/repositories"
)

// PostgresProductRepository implements the ProductRepository interface
// using PostgreSQL with the pgvector extension.
type PostgresProductRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewProductRepository creates a new PostgresProductRepository
func NewProductRepository(config *RepositoryConfig) repositories.ProductRepository {
	return &PostgresProductRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Insert stores a new product and fills in its generated ID.
func (r *PostgresProductRepository) Insert(ctx context.Context, product *models.Product) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, link, embedding)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, r.tables.Products)

	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Link,
		pgvector.NewVector(product.Embedding),
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// Update replaces a product's name, link, description and embedding.
func (r *PostgresProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, link = $2, description = $3, embedding = $4
		WHERE id = $5
	`, r.tables.Products)

	tag, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Link,
		product.Description,
		pgvector.NewVector(product.Embedding),
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", product.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a product; reviews cascade at the schema level.
func (r *PostgresProductRepository) Delete(ctx context.Context, productID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Products)

	tag, err := r.pool.Exec(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}

	return nil
}

// Get retrieves a single product without its embedding.
func (r *PostgresProductRepository) Get(ctx context.Context, productID int) (*models.Product, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, link
		FROM %s
		WHERE id = $1
	`, r.tables.Products)

	var product models.Product
	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Link,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &product, nil
}

// ListPaginated returns one page of products with their reviews,
// optionally filtered by a case-insensitive substring query.
func (r *PostgresProductRepository) ListPaginated(ctx context.Context, page, perPage int, query string) (*models.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 5
	}

	where := ""
	args := []any{}
	if query != "" {
		where = "WHERE name ILIKE $1 OR description ILIKE $1"
		args = append(args, "%"+escapeLike(query)+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, r.tables.Products, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, name, description, link
		FROM %s
		%s
		ORDER BY id
		LIMIT $%d OFFSET $%d
	`, r.tables.Products, where, len(args)+1, len(args)+2)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	result := &models.ProductPage{Page: page, TotalPages: totalPages}
	var ids []int32
	for rows.Next() {
		var p models.ProductWithReviews
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Link); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result.Products = append(result.Products, p)
		ids = append(ids, int32(p.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if len(ids) == 0 {
		return result, nil
	}

	reviewQuery := fmt.Sprintf(`
		SELECT id, product_id, review_text, created_at
		FROM %s
		WHERE product_id = ANY($1)
		ORDER BY id
	`, r.tables.Reviews)

	reviewRows, err := r.pool.Query(ctx, reviewQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer reviewRows.Close()

	byProduct := make(map[int][]models.Review)
	for reviewRows.Next() {
		var rev models.Review
		if err := reviewRows.Scan(&rev.ID, &rev.ProductID, &rev.Text, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		byProduct[rev.ProductID] = append(byProduct[rev.ProductID], rev)
	}
	if err := reviewRows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	for i := range result.Products {
		result.Products[i].Reviews = byProduct[result.Products[i].ID]
	}

	return result, nil
}

// FetchByIDs returns candidate rows for the given IDs with aggregated
// review text, in no particular order. Unknown IDs are skipped.
func (r *PostgresProductRepository) FetchByIDs(ctx context.Context, ids []int) ([]models.CandidateRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.description, p.link,
		       COALESCE(string_agg(r.review_text, E'\n' ORDER BY r.id), '') AS reviews
		FROM %s p
		LEFT JOIN %s r ON r.product_id = p.id
		WHERE p.id = ANY($1)
		GROUP BY p.id, p.name, p.description, p.link
	`, r.tables.Products, r.tables.Reviews)

	return r.queryCandidates(ctx, query, toInt32(ids))
}

// SearchByKeywords scores products by token hits: a name match counts
// double a description match, summed over all tokens. Ties go to the
// higher (most recently added) product ID.
func (r *PostgresProductRepository) SearchByKeywords(ctx context.Context, tokens []string, limit int) ([]models.CandidateRow, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	patterns := make([]string, len(tokens))
	for i, tok := range tokens {
		patterns[i] = "%" + escapeLike(tok) + "%"
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.description, p.link,
		       COALESCE((SELECT string_agg(r.review_text, E'\n' ORDER BY r.id)
		                 FROM %s r WHERE r.product_id = p.id), '') AS reviews,
		       SUM(CASE WHEN p.name ILIKE t.pattern THEN 2 ELSE 0 END +
		           CASE WHEN p.description ILIKE t.pattern THEN 1 ELSE 0 END) AS score
		FROM %s p
		CROSS JOIN unnest($1::text[]) AS t(pattern)
		WHERE p.name ILIKE t.pattern OR p.description ILIKE t.pattern
		GROUP BY p.id, p.name, p.description, p.link
		ORDER BY score DESC, p.id DESC
		LIMIT $2
	`, r.tables.Reviews, r.tables.Products)

	rows, err := r.pool.Query(ctx, query, patterns, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	defer rows.Close()

	var candidates []models.CandidateRow
	for rows.Next() {
		var row models.CandidateRow
		var score int64
		if err := rows.Scan(&row.ID, &row.Name, &row.Description, &row.Link, &row.Reviews, &score); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	return candidates, nil
}

// SearchByEmbedding returns the nearest products by inner-product
// distance. Products without an embedding sort last and effectively
// never surface.
func (r *PostgresProductRepository) SearchByEmbedding(ctx context.Context, embedding []float32, limit int) ([]models.CandidateRow, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.description, p.link,
		       COALESCE(string_agg(r.review_text, E'\n' ORDER BY r.id), '') AS reviews
		FROM %s p
		LEFT JOIN %s r ON r.product_id = p.id
		GROUP BY p.id, p.name, p.description, p.link
		ORDER BY p.embedding <#> $1
		LIMIT $2
	`, r.tables.Products, r.tables.Reviews)

	return r.queryCandidates(ctx, query, pgvector.NewVector(embedding), limit)
}

func (r *PostgresProductRepository) queryCandidates(ctx context.Context, query string, args ...any) ([]models.CandidateRow, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.CandidateRow
	for rows.Next() {
		var row models.CandidateRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Description, &row.Link, &row.Reviews); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}

	return candidates, nil
}

// escapeLike neutralizes LIKE metacharacters in user-supplied text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func toInt32(ids []int) []int32 {
	out := make([]int32, len(ids))
	for i, id := range ids {
		out[i] = int32(id)
	}
	return out
}
