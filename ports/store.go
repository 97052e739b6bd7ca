package ports

import "context"

// Blocklist records revoked token jtis. Entries carry a fixed TTL no shorter
// than the longest token lifetime, so they outlive any token that references
// them and then expire on their own.
type Blocklist interface {
	// Revoke marks a jti as revoked. Idempotent.
	Revoke(ctx context.Context, jti string) error

	// IsRevoked reports whether a jti has been revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
