package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/ports"
	"github.com/jackc/pgx/v5"
)

var _ ports.BookRepo = (*BookRepo)(nil)

// BookRepo is the postgres implementation of the book persistence port
type BookRepo struct {
	db *DB
}

// NewBookRepo creates a new book repository
func NewBookRepo(db *DB) *BookRepo { return &BookRepo{db: db} }

const (
	qBookInsert = `
INSERT INTO books (title, author, publisher, published_date, page_count, language, user_uid)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING uid, created_at, updated_at;`

	qBookByUID = `
SELECT uid, title, author, publisher, published_date, page_count, language, user_uid, created_at, updated_at
FROM books
WHERE uid = $1;`

	qBookList = `
SELECT uid, title, author, publisher, published_date, page_count, language, user_uid, created_at, updated_at
FROM books
ORDER BY created_at DESC;`

	qBookListByUser = `
SELECT uid, title, author, publisher, published_date, page_count, language, user_uid, created_at, updated_at
FROM books
WHERE user_uid = $1
ORDER BY created_at DESC;`

	qBookUpdate = `
UPDATE books
SET title          = $2,
    author         = $3,
    publisher      = $4,
    published_date = $5,
    page_count     = $6,
    language       = $7,
    updated_at     = NOW()
WHERE uid = $1
RETURNING updated_at;`

	qBookDelete = `
DELETE FROM books WHERE uid = $1;`
)

// Create inserts a new book submission
func (r *BookRepo) Create(ctx context.Context, b *core.Book) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if err := r.db.Pool.QueryRow(ctx, qBookInsert,
		b.Title, b.Author, b.Publisher, b.PublishedDate, b.PageCount, b.Language, b.UserUID).
		Scan(&b.UID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("book insert: %w", err)
	}
	return nil
}

// GetByUID returns a book by uid
func (r *BookRepo) GetByUID(ctx context.Context, uid string) (*core.Book, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var b core.Book
	if err := scanBook(r.db.Pool.QueryRow(ctx, qBookByUID, uid), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all books, newest first
func (r *BookRepo) List(ctx context.Context) ([]core.Book, error) {
	return r.list(ctx, qBookList)
}

// ListByUser returns all books submitted by a user, newest first
func (r *BookRepo) ListByUser(ctx context.Context, userUID string) ([]core.Book, error) {
	return r.list(ctx, qBookListByUser, userUID)
}

func (r *BookRepo) list(ctx context.Context, query string, args ...any) ([]core.Book, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("book list: %w", err)
	}
	defer rows.Close()

	var books []core.Book
	for rows.Next() {
		var b core.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("book list: %w", err)
	}
	return books, nil
}

// Update rewrites a book's fields
func (r *BookRepo) Update(ctx context.Context, b *core.Book) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if err := r.db.Pool.QueryRow(ctx, qBookUpdate,
		b.UID, b.Title, b.Author, b.Publisher, b.PublishedDate, b.PageCount, b.Language).
		Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrNotFound
		}
		return fmt.Errorf("book update: %w", err)
	}
	return nil
}

// Delete removes a book by uid
func (r *BookRepo) Delete(ctx context.Context, uid string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qBookDelete, uid)
	if err != nil {
		return fmt.Errorf("book delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func scanBook(row pgx.Row, out *core.Book) error {
	if err := row.Scan(&out.UID, &out.Title, &out.Author, &out.Publisher,
		&out.PublishedDate, &out.PageCount, &out.Language, &out.UserUID,
		&out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrNotFound
		}
		return fmt.Errorf("scan book: %w", err)
	}
	return nil
}
