package core

import "time"

// Roles known to the role gate. Stored as plain strings on the user record.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the authoritative identity record
type User struct {
	UID          string    `json:"uid"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	IsVerified   bool      `json:"is_verified"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserClaims is the identity payload embedded in every token
type UserClaims struct {
	Email   string `json:"email"`
	UserUID string `json:"user_uid"`
	Role    string `json:"role"`
}

// TokenClaims is the decoded payload of a verified token
type TokenClaims struct {
	User      UserClaims
	JTI       string
	ExpiresAt time.Time
	Refresh   bool // true for refresh tokens, false for access tokens
}

// RoleAllowed reports whether role is a member of the allow-list.
func RoleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
