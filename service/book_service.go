package service

import (
	"context"
	"fmt"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/ports"
)

// BookService handles book submission business logic
type BookService struct {
	books ports.BookRepo
}

// NewBookService creates a new book service
func NewBookService(books ports.BookRepo) *BookService {
	return &BookService{books: books}
}

// Create stores a new book owned by the given user
func (s *BookService) Create(ctx context.Context, b *core.Book, userUID string) error {
	b.UserUID = userUID
	return s.books.Create(ctx, b)
}

// Get returns a book by uid
func (s *BookService) Get(ctx context.Context, uid string) (*core.Book, error) {
	return s.books.GetByUID(ctx, uid)
}

// List returns all books
func (s *BookService) List(ctx context.Context) ([]core.Book, error) {
	return s.books.List(ctx)
}

// ListByUser returns all books submitted by a user
func (s *BookService) ListByUser(ctx context.Context, userUID string) ([]core.Book, error) {
	return s.books.ListByUser(ctx, userUID)
}

// BookUpdate carries the mutable fields of a book
type BookUpdate struct {
	Title         string
	Author        string
	Publisher     string
	PublishedDate string
	PageCount     int
	Language      string
}

// Update applies an update to an existing book
func (s *BookService) Update(ctx context.Context, uid string, upd BookUpdate) (*core.Book, error) {
	b, err := s.books.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	b.Title = upd.Title
	b.Author = upd.Author
	b.Publisher = upd.Publisher
	b.PublishedDate = upd.PublishedDate
	b.PageCount = upd.PageCount
	b.Language = upd.Language

	if err := s.books.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	return b, nil
}

// Delete removes a book by uid
func (s *BookService) Delete(ctx context.Context, uid string) error {
	return s.books.Delete(ctx, uid)
}
