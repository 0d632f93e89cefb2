package handler

import (
	"log/slog"
	"net/http"

	"katalog/internal/domain/services"
	"katalog/internal/httputil"
)

// ReviewHandler handles review CRUD HTTP requests.
type ReviewHandler struct {
	reviews services.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a review handler.
func NewReviewHandler(reviews services.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// AddReview attaches a review to a product
// POST /api/reviews
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req services.AddReviewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviews.AddReview(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, review)
}

type updateReviewRequest struct {
	Text string `json:"review_text"`
}

// UpdateReview replaces a review's text
// PUT /api/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateReviewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviews.UpdateReview(r.Context(), id, req.Text)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, review)
}

// DeleteReview removes a review
// DELETE /api/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
