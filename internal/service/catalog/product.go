// Package catalog implements product and review management. Every
// product write regenerates the description and embedding together,
// keeping the "embedding derives from description" invariant intact.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"katalog/internal/config"
	"katalog/internal/domain"
	"katalog/internal/domain/models"
	"katalog/internal/domain/repositories"
	"katalog/internal/domain/services"
)

// ProductService implements the services.ProductService interface.
type ProductService struct {
	products  repositories.ProductRepository
	reviews   repositories.ReviewRepository
	extractor services.ContentExtractor
	describer services.DescriptionGenerator
	embedder  services.Embedder
	events    services.EventLogger
	logger    *slog.Logger
}

// NewProductService creates a product service.
func NewProductService(
	products repositories.ProductRepository,
	reviews repositories.ReviewRepository,
	extractor services.ContentExtractor,
	describer services.DescriptionGenerator,
	embedder services.Embedder,
	events services.EventLogger,
	logger *slog.Logger,
) services.ProductService {
	return &ProductService{
		products:  products,
		reviews:   reviews,
		extractor: extractor,
		describer: describer,
		embedder:  embedder,
		events:    events,
		logger:    logger,
	}
}

// CreateProduct scrapes the link, generates the description, embeds it
// and stores the product.
func (s *ProductService) CreateProduct(ctx context.Context, req *services.CreateProductRequest) (*models.Product, error) {
	if err := validateProductRequest(req.Name, req.Link); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	product, err := s.buildProduct(ctx, strings.TrimSpace(req.Name), strings.TrimSpace(req.Link))
	if err != nil {
		return nil, err
	}

	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created", "id", product.ID, "name", product.Name)
	s.events.Log(ctx, "ADD_PRODUCT", fmt.Sprintf("Added product %q", product.Name))

	return product, nil
}

// UpdateProduct re-runs the full scrape/describe/embed pipeline and
// replaces the stored product.
func (s *ProductService) UpdateProduct(ctx context.Context, productID int, req *services.UpdateProductRequest) (*models.Product, error) {
	if err := validateProductRequest(req.Name, req.Link); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	existing, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	product, err := s.buildProduct(ctx, strings.TrimSpace(req.Name), strings.TrimSpace(req.Link))
	if err != nil {
		return nil, err
	}
	product.ID = productID

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product updated", "id", productID)
	s.events.Log(ctx, "EDIT_PRODUCT", fmt.Sprintf("%s -> %s", existing.Name, product.Name))

	return product, nil
}

// DeleteProduct removes a product; its reviews cascade.
func (s *ProductService) DeleteProduct(ctx context.Context, productID int) error {
	if err := s.products.Delete(ctx, productID); err != nil {
		if IsNotFound(err) {
			s.events.Log(ctx, "DELETE_PRODUCT_FAIL", fmt.Sprintf("Missing product %d", productID))
		}
		return err
	}

	s.logger.Info("product deleted", "id", productID)
	s.events.Log(ctx, "DELETE_PRODUCT", fmt.Sprintf("Deleted product %d", productID))
	return nil
}

// GetProduct returns a product with its reviews.
func (s *ProductService) GetProduct(ctx context.Context, productID int) (*models.ProductWithReviews, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &models.ProductWithReviews{Product: *product, Reviews: reviews}, nil
}

// ListProducts returns one page of the catalog.
func (s *ProductService) ListProducts(ctx context.Context, page, perPage int, query string) (*models.ProductPage, error) {
	return s.products.ListPaginated(ctx, page, perPage, query)
}

// buildProduct runs the generation pipeline shared by create and
// update. The description always comes from the scraped link and the
// embedding always comes from the description.
func (s *ProductService) buildProduct(ctx context.Context, name, link string) (*models.Product, error) {
	sourceText := s.extractor.Extract(ctx, link)
	description := s.describer.Summarize(ctx, sourceText)

	embedding, err := s.embedder.Embed(ctx, description)
	if err != nil {
		return nil, &domain.UpstreamError{Message: fmt.Sprintf("embed description: %v", err)}
	}

	return &models.Product{
		Name:        name,
		Description: description,
		Link:        link,
		Embedding:   embedding,
	}, nil
}

func validateProductRequest(name, link string) error {
	if err := validation.Validate(strings.TrimSpace(name),
		validation.Required,
		validation.RuneLength(1, config.MaxProductNameLength),
	); err != nil {
		return fmt.Errorf("name: %v", err)
	}
	if err := validation.Validate(link,
		validation.RuneLength(0, config.MaxLinkLength),
	); err != nil {
		return fmt.Errorf("link: %v", err)
	}
	return nil
}
