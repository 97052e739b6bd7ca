package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/ports"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenPolicy selects which token class a verification accepts
type TokenPolicy int

const (
	// RequireAccess rejects refresh tokens
	RequireAccess TokenPolicy = iota

	// RequireRefresh rejects access tokens
	RequireRefresh
)

// AuthService handles authentication business logic
type AuthService struct {
	tokenizer ports.Tokenizer
	users     ports.UserRepo
	blocklist ports.Blocklist
	eventPub  ports.EventPublisher
	log       *zap.Logger

	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tokenizer ports.Tokenizer,
	users ports.UserRepo,
	blocklist ports.Blocklist,
	eventPub ports.EventPublisher,
	log *zap.Logger,
	accessTTL, refreshTTL time.Duration,
) *AuthService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &AuthService{
		tokenizer:  tokenizer,
		users:      users,
		blocklist:  blocklist,
		eventPub:   eventPub,
		log:        log,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// VerifyToken runs the full bearer verification: decode, blocklist lookup,
// class check. Both token classes go through the same path; only the final
// policy check differs. A blocklist failure rejects the token rather than
// letting it through.
func (s *AuthService) VerifyToken(ctx context.Context, raw string, policy TokenPolicy) (*core.TokenClaims, error) {
	claims, err := s.tokenizer.Decode(raw)
	if err != nil {
		s.log.Debug("token decode failed", zap.Error(err))
		return nil, err
	}

	revoked, err := s.blocklist.IsRevoked(ctx, claims.JTI)
	if err != nil {
		s.log.Error("blocklist lookup failed", zap.String("jti", claims.JTI), zap.Error(err))
		if errors.Is(err, core.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	if revoked {
		s.log.Info("revoked token presented", zap.String("jti", claims.JTI))
		return nil, core.ErrTokenRevoked
	}

	switch policy {
	case RequireAccess:
		if claims.Refresh {
			return nil, core.ErrWrongTokenClass
		}
	case RequireRefresh:
		if !claims.Refresh {
			return nil, core.ErrWrongTokenClass
		}
	}

	return claims, nil
}

// SignUp registers a new user, hashing the submitted password
func (s *AuthService) SignUp(ctx context.Context, u *core.User, password string) error {
	_, err := s.users.GetByEmail(ctx, u.Email)
	if err == nil {
		return core.ErrUserExists
	}
	if !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	if err := s.users.Create(ctx, u); err != nil {
		return err
	}

	s.log.Info("user registered", zap.String("email", u.Email))
	return nil
}

// Login verifies the submitted password and issues one access and one
// refresh token. An unknown email and a wrong password both come back as
// ErrInvalidCredentials so the response does not reveal which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *core.User, err error) {
	user, err = s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", "", nil, core.ErrInvalidCredentials
		}
		return "", "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, core.ErrInvalidCredentials
	}

	claims := core.UserClaims{
		Email:   user.Email,
		UserUID: user.UID,
		Role:    user.Role,
	}

	accessToken, err = s.tokenizer.Issue(claims, false, s.accessTTL)
	if err != nil {
		return "", "", nil, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, err = s.tokenizer.Issue(claims, true, s.refreshTTL)
	if err != nil {
		return "", "", nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Refresh mints a fresh access token from an already-verified refresh token's
// claims. The identity payload is carried over unchanged; the jti and expiry
// are new.
func (s *AuthService) Refresh(ctx context.Context, claims *core.TokenClaims) (string, error) {
	// The codec already rejected expired tokens; check again so a stale
	// claims value handed in by a caller can never mint a token.
	if time.Now().After(claims.ExpiresAt) {
		return "", core.ErrTokenExpired
	}

	accessToken, err := s.tokenizer.Issue(claims.User, false, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes the presented token's jti. The paired refresh token keeps
// its own jti and stays valid; only the token handed to logout is revoked.
func (s *AuthService) Logout(ctx context.Context, claims *core.TokenClaims) error {
	if err := s.blocklist.Revoke(ctx, claims.JTI); err != nil {
		return err
	}

	if err := s.eventPub.PublishLogout(ctx, claims.User.Email, claims.JTI); err != nil {
		// The jti is already in the blocklist, which is the part that
		// matters; a lost notification only delays other instances.
		s.log.Warn("failed to publish logout event", zap.String("jti", claims.JTI), zap.Error(err))
	}

	return nil
}

// CurrentUser resolves a verified claim set to the full identity record
func (s *AuthService) CurrentUser(ctx context.Context, claims *core.TokenClaims) (*core.User, error) {
	return s.users.GetByEmail(ctx, claims.User.Email)
}
