package catalog

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"katalog/internal/domain"
	"katalog/internal/domain/services"
)

type reviewFixture struct {
	reviews *fakeReviewStore
	events  *fakeEvents
	service services.ReviewService
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		reviews: &fakeReviewStore{},
		events:  &fakeEvents{},
	}
	f.service = NewReviewService(f.reviews, f.events, discardLogger())
	return f
}

func TestAddReview(t *testing.T) {
	f := newReviewFixture()

	review, err := f.service.AddReview(context.Background(), &services.AddReviewRequest{
		ProductID: 3,
		Text:      "  Bardzo dobry krem  ",
	})
	if err != nil {
		t.Fatalf("AddReview: %v", err)
	}

	if review.ID != 7 {
		t.Errorf("ID = %d, want 7 from store", review.ID)
	}
	if review.Text != "Bardzo dobry krem" {
		t.Errorf("Text = %q, want trimmed", review.Text)
	}
	if review.ProductID != 3 {
		t.Errorf("ProductID = %d, want 3", review.ProductID)
	}
	if got, want := f.events.actions, []string{"ADD_REVIEW"}; !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestAddReview_Validation(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "whitespace only", text: "   "},
		{name: "overlong", text: strings.Repeat("a", 4001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReviewFixture()
			_, err := f.service.AddReview(context.Background(), &services.AddReviewRequest{ProductID: 1, Text: tt.text})
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if f.reviews.added != nil {
				t.Errorf("invalid review reached the store")
			}
		})
	}
}

func TestAddReview_MissingProduct(t *testing.T) {
	f := newReviewFixture()
	f.reviews.addErr = &domain.NotFoundError{Message: "product 99 not found"}

	_, err := f.service.AddReview(context.Background(), &services.AddReviewRequest{ProductID: 99, Text: "ok"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(f.events.actions) != 0 {
		t.Errorf("events logged for failed add: %v", f.events.actions)
	}
}

func TestUpdateReview(t *testing.T) {
	f := newReviewFixture()

	review, err := f.service.UpdateReview(context.Background(), 7, "  Nowa treść  ")
	if err != nil {
		t.Fatalf("UpdateReview: %v", err)
	}

	if f.reviews.updatedID != 7 || f.reviews.updatedText != "Nowa treść" {
		t.Errorf("store got id=%d text=%q", f.reviews.updatedID, f.reviews.updatedText)
	}
	if review.Text != "Nowa treść" {
		t.Errorf("returned review text = %q", review.Text)
	}
	if got, want := f.events.actions, []string{"EDIT_REVIEW"}; !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestDeleteReview(t *testing.T) {
	f := newReviewFixture()

	if err := f.service.DeleteReview(context.Background(), 7); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if f.reviews.deletedID != 7 {
		t.Errorf("deleted ID = %d, want 7", f.reviews.deletedID)
	}
	if got, want := f.events.actions, []string{"DELETE_REVIEW"}; !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestDeleteReview_NotFound(t *testing.T) {
	f := newReviewFixture()
	f.reviews.deleteErr = &domain.NotFoundError{Message: "review 7 not found"}

	err := f.service.DeleteReview(context.Background(), 7)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(f.events.actions) != 0 {
		t.Errorf("events logged for failed delete: %v", f.events.actions)
	}
}
