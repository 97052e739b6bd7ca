package tokenizer

import (
	"github.com/booklyhq/bookly/core"
	"github.com/golang-jwt/jwt/v5"
)

// bookClaims combines the registered claims (exp, jti) with the identity
// payload and the token class flag
type bookClaims struct {
	jwt.RegisteredClaims
	User    core.UserClaims `json:"user"`
	Refresh bool            `json:"refresh"`
}
