package ports

import (
	"context"

	"github.com/booklyhq/bookly/core"
)

// UserRepo is the identity persistence collaborator
type UserRepo interface {
	Create(ctx context.Context, u *core.User) error
	GetByEmail(ctx context.Context, email string) (*core.User, error)
	GetByUID(ctx context.Context, uid string) (*core.User, error)
}

// BookRepo persists book submissions
type BookRepo interface {
	Create(ctx context.Context, b *core.Book) error
	GetByUID(ctx context.Context, uid string) (*core.Book, error)
	List(ctx context.Context) ([]core.Book, error)
	ListByUser(ctx context.Context, userUID string) ([]core.Book, error)
	Update(ctx context.Context, b *core.Book) error
	Delete(ctx context.Context, uid string) error
}

// ReviewRepo persists book reviews
type ReviewRepo interface {
	Create(ctx context.Context, r *core.Review) error
}
