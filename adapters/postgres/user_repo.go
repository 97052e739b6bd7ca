package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ ports.UserRepo = (*UserRepo)(nil)

// UserRepo is the postgres implementation of the identity persistence port
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const (
	qUserInsert = `
INSERT INTO users (username, email, password_hash, first_name, last_name)
VALUES ($1, $2, $3, $4, $5)
RETURNING uid, role, is_verified, created_at, updated_at;`

	qUserByEmail = `
SELECT uid, username, email, password_hash, first_name, last_name, role, is_verified, created_at, updated_at
FROM users
WHERE email = $1;`

	qUserByUID = `
SELECT uid, username, email, password_hash, first_name, last_name, role, is_verified, created_at, updated_at
FROM users
WHERE uid = $1;`
)

// Create inserts a new user; the uid, role and timestamps come back from
// server-side defaults
func (r *UserRepo) Create(ctx context.Context, u *core.User) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if err := r.db.Pool.QueryRow(ctx, qUserInsert,
		u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName).
		Scan(&u.UID, &u.Role, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return core.ErrUserExists
		}
		return fmt.Errorf("user insert: %w", err)
	}
	return nil
}

// GetByEmail looks up a user by email
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var u core.User
	if err := scanUser(r.db.Pool.QueryRow(ctx, qUserByEmail, email), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUID looks up a user by uid
func (r *UserRepo) GetByUID(ctx context.Context, uid string) (*core.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var u core.User
	if err := scanUser(r.db.Pool.QueryRow(ctx, qUserByUID, uid), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUser(row pgx.Row, out *core.User) error {
	if err := row.Scan(&out.UID, &out.Username, &out.Email, &out.PasswordHash,
		&out.FirstName, &out.LastName, &out.Role, &out.IsVerified,
		&out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrNotFound
		}
		return fmt.Errorf("scan user: %w", err)
	}
	return nil
}
