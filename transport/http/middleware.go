package http

import (
	"errors"
	"net/http"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/service"
	"github.com/gin-gonic/gin"
)

// claimsKey is the gin context key holding the verified token claims
const claimsKey = "tokenClaims"

// TokenBearer creates middleware that extracts the bearer token, verifies it
// under the given class policy and stores the claims in the request context.
// Access-only and refresh-only routes differ solely in the policy value; the
// extraction, decode and revocation steps are shared.
func TokenBearer(auth *service.AuthService, policy service.TokenPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		if len(header) < 8 || header[:7] != "Bearer " {
			abortWithError(c, core.ErrMissingToken)
			return
		}

		claims, err := auth.VerifyToken(c.Request.Context(), header[7:], policy)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRoles creates middleware that checks the authenticated user's role
// against a fixed allow-list. It must run after TokenBearer.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := tokenClaims(c)
		if !ok {
			abortWithError(c, core.ErrMissingToken)
			return
		}

		if !core.RoleAllowed(claims.User.Role, roles) {
			abortWithError(c, core.ErrForbidden)
			return
		}

		c.Next()
	}
}

// tokenClaims returns the claims stored by TokenBearer
func tokenClaims(c *gin.Context) (*core.TokenClaims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*core.TokenClaims)
	return claims, ok
}

// abortWithError maps domain errors onto HTTP responses. The "who are you"
// failures are all 401; "you may not do this" is 403; a blocklist outage is
// 503 so the client knows the rejection is retryable.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, core.ErrMissingToken):
		status, msg = http.StatusUnauthorized, "authorization required"
	case errors.Is(err, core.ErrTokenExpired):
		status, msg = http.StatusUnauthorized, "token expired"
	case errors.Is(err, core.ErrTokenRevoked):
		status, msg = http.StatusUnauthorized, "token has been revoked"
	case errors.Is(err, core.ErrWrongTokenClass):
		status, msg = http.StatusUnauthorized, "wrong token type provided"
	case errors.Is(err, core.ErrInvalidSignature),
		errors.Is(err, core.ErrMalformedToken),
		errors.Is(err, core.ErrInvalidToken):
		status, msg = http.StatusUnauthorized, "invalid token"
	case errors.Is(err, core.ErrForbidden):
		status, msg = http.StatusForbidden, "insufficient permissions"
	case errors.Is(err, core.ErrInvalidCredentials):
		status, msg = http.StatusForbidden, "invalid email or password"
	case errors.Is(err, core.ErrUserExists):
		status, msg = http.StatusForbidden, "user already exists"
	case errors.Is(err, core.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, core.ErrStoreUnavailable):
		status, msg = http.StatusServiceUnavailable, "service unavailable"
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
