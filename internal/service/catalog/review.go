package catalog

import (
	"context"
	"errors"
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

// ReviewService implements the services.ReviewService interface.
type ReviewService struct {
	reviews repositories.ReviewRepository
	events  services.EventLogger
	logger  *slog.Logger
}

// NewReviewService creates a review service.
func NewReviewService(
	reviews repositories.ReviewRepository,
	events services.EventLogger,
	logger *slog.Logger,
) services.ReviewService {
	return &ReviewService{reviews: reviews, events: events, logger: logger}
}

// AddReview stores a new review for a product.
func (s *ReviewService) AddReview(ctx context.Context, req *services.AddReviewRequest) (*models.Review, error) {
	if err := validateReviewText(req.Text); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	review := &models.Review{
		ProductID: req.ProductID,
		Text:      strings.TrimSpace(req.Text),
	}
	if err := s.reviews.Add(ctx, review); err != nil {
		return nil, err
	}

	s.events.Log(ctx, "ADD_REVIEW",
		fmt.Sprintf("Review for product_id %d: %s", review.ProductID, review.Text))

	return review, nil
}

// UpdateReview replaces a review's text.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID int, text string) (*models.Review, error) {
	if err := validateReviewText(text); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.reviews.Update(ctx, reviewID, strings.TrimSpace(text)); err != nil {
		return nil, err
	}

	s.events.Log(ctx, "EDIT_REVIEW", fmt.Sprintf("Edited review ID %d", reviewID))

	return s.reviews.Get(ctx, reviewID)
}

// DeleteReview removes a review.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID int) error {
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.events.Log(ctx, "DELETE_REVIEW", fmt.Sprintf("Deleted review ID %d", reviewID))
	return nil
}

func validateReviewText(text string) error {
	return validation.Validate(strings.TrimSpace(text),
		validation.Required,
		validation.RuneLength(1, config.MaxReviewLength),
	)
}

// IsNotFound reports whether err is the domain not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
