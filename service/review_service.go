package service

import (
	"context"
	"fmt"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/ports"
)

// ReviewService handles review business logic
type ReviewService struct {
	reviews ports.ReviewRepo
	books   ports.BookRepo
}

// NewReviewService creates a new review service
func NewReviewService(reviews ports.ReviewRepo, books ports.BookRepo) *ReviewService {
	return &ReviewService{reviews: reviews, books: books}
}

// AddReview attaches a review by the given user to a book
func (s *ReviewService) AddReview(ctx context.Context, user *core.User, bookUID string, rating int, text string) (*core.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	book, err := s.books.GetByUID(ctx, bookUID)
	if err != nil {
		return nil, err
	}

	review := &core.Review{
		Rating:     rating,
		ReviewText: text,
		UserUID:    user.UID,
		BookUID:    book.UID,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
