package postgres

import (
	"context"
	"fmt"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/ports"
)

var _ ports.ReviewRepo = (*ReviewRepo)(nil)

// ReviewRepo is the postgres implementation of the review persistence port
type ReviewRepo struct {
	db *DB
}

// NewReviewRepo creates a new review repository
func NewReviewRepo(db *DB) *ReviewRepo { return &ReviewRepo{db: db} }

const qReviewInsert = `
INSERT INTO reviews (rating, review_text, user_uid, book_uid)
VALUES ($1, $2, $3, $4)
RETURNING uid, created_at, updated_at;`

// Create inserts a new review
func (r *ReviewRepo) Create(ctx context.Context, rv *core.Review) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if err := r.db.Pool.QueryRow(ctx, qReviewInsert,
		rv.Rating, rv.ReviewText, rv.UserUID, rv.BookUID).
		Scan(&rv.UID, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return fmt.Errorf("review insert: %w", err)
	}
	return nil
}
