package core

import "errors"

var (
	// ErrMissingToken is returned when no bearer credential is present on the request
	ErrMissingToken = errors.New("authorization header missing or malformed")

	// ErrMalformedToken is returned when the credential is not a decodable token
	ErrMalformedToken = errors.New("malformed token")

	// ErrTokenExpired is returned when a token's expiry is in the past
	ErrTokenExpired = errors.New("token has expired")

	// ErrInvalidSignature is returned when a token fails cryptographic verification
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrInvalidToken is returned when a token is invalid for any other reason
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenRevoked is returned when a token's jti is present in the blocklist
	ErrTokenRevoked = errors.New("token has been revoked")

	// ErrWrongTokenClass is returned when an access token is presented where a
	// refresh token is required, or vice versa
	ErrWrongTokenClass = errors.New("wrong token class")

	// ErrForbidden is returned when an authenticated user's role is not in the
	// route's allow-list
	ErrForbidden = errors.New("insufficient role")

	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// login response cannot be used to probe which emails exist
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrStoreUnavailable is returned when the blocklist cannot be reached;
	// verification fails closed on it
	ErrStoreUnavailable = errors.New("revocation store unavailable")

	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrUserExists is returned on signup when the email is already registered
	ErrUserExists = errors.New("user already exists")
)
