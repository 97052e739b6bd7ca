package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/ports"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAccessTTL is the token lifetime used when no explicit TTL is configured
const DefaultAccessTTL = time.Hour

// JWTTokenizer implements the Tokenizer interface using HS256 JWTs.
// Access and refresh tokens share the same secret and encoding; the class is
// carried by the "refresh" claim, so a wrong-class token still verifies and
// can be rejected with a specific error instead of a generic decode failure.
type JWTTokenizer struct {
	secret []byte
}

// NewJWTTokenizer creates a new JWT tokenizer signing with the given secret
func NewJWTTokenizer(secret []byte) ports.Tokenizer {
	return &JWTTokenizer{secret: secret}
}

// Issue signs a token for user with a fresh uuid jti and expiry now+ttl
func (j *JWTTokenizer) Issue(user core.UserClaims, refresh bool, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}

	now := time.Now()
	claims := bookClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		User:    user,
		Refresh: refresh,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Decode verifies a token string and returns its claims, mapping the parser's
// failures onto the domain error kinds
func (j *JWTTokenizer) Decode(tokenStr string) (*core.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &bookClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, core.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, core.ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, core.ErrMalformedToken
		default:
			return nil, core.ErrInvalidToken
		}
	}

	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*bookClaims)
	if !ok {
		return nil, core.ErrInvalidToken
	}

	return &core.TokenClaims{
		User:      claims.User,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
		Refresh:   claims.Refresh,
	}, nil
}
