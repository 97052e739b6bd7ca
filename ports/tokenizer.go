package ports

import (
	"time"

	"github.com/booklyhq/bookly/core"
)

// Tokenizer converts between identity claims and signed token strings
type Tokenizer interface {
	// Issue signs a new token carrying user, with a fresh jti and an expiry
	// of now+ttl. refresh marks the token class.
	Issue(user core.UserClaims, refresh bool, ttl time.Duration) (string, error)

	// Decode verifies the signature and expiry of a token string. It never
	// returns partial claims: on any failure the claims are nil and the error
	// is one of core.ErrMalformedToken, core.ErrTokenExpired,
	// core.ErrInvalidSignature or core.ErrInvalidToken.
	Decode(token string) (*core.TokenClaims, error)
}
