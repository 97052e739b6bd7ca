package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/booklyhq/bookly/adapters/store"
	"github.com/booklyhq/bookly/adapters/tokenizer"
	"github.com/booklyhq/bookly/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*core.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*core.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[u.Email]; exists {
		return core.ErrUserExists
	}
	u.UID = uuid.New().String()
	if u.Role == "" {
		u.Role = core.RoleUser
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, exists := r.byEmail[email]
	if !exists {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUID(ctx context.Context, uid string) (*core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.UID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

type noopPublisher struct{}

func (noopPublisher) PublishLogout(ctx context.Context, email, jti string) error { return nil }

type failingPublisher struct{}

func (failingPublisher) PublishLogout(ctx context.Context, email, jti string) error {
	return errors.New("broker down")
}

type downBlocklist struct{}

func (downBlocklist) Revoke(ctx context.Context, jti string) error {
	return core.ErrStoreUnavailable
}

func (downBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return false, core.ErrStoreUnavailable
}

const testPassword = "s3cret-pass"

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	tk := tokenizer.NewJWTTokenizer([]byte("unit-test-signing-secret"))
	bl := store.NewMemoryBlocklist(time.Hour)
	return NewAuthService(tk, repo, bl, noopPublisher{}, zap.NewNop(), time.Hour, 30*24*time.Hour), repo
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, role string) *core.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &core.User{
		Username:     "jane",
		Email:        email,
		FirstName:    "Jane",
		LastName:     "Doe",
		Role:         role,
		PasswordHash: string(hash),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginIssuesBothTokenClasses(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuthService(t)
	seeded := seedUser(t, repo, "jane@example.com", core.RoleUser)

	access, refresh, user, err := svc.Login(ctx, seeded.Email, testPassword)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, seeded.Email, user.Email)

	accessClaims, err := svc.VerifyToken(ctx, access, RequireAccess)
	require.NoError(t, err)
	assert.False(t, accessClaims.Refresh)
	assert.Equal(t, seeded.Email, accessClaims.User.Email)
	assert.Equal(t, seeded.UID, accessClaims.User.UserUID)
	assert.Equal(t, core.RoleUser, accessClaims.User.Role)

	refreshClaims, err := svc.VerifyToken(ctx, refresh, RequireRefresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.Refresh)

	assert.NotEqual(t, accessClaims.JTI, refreshClaims.JTI, "token classes must not share a jti")
}

func TestLoginDoesNotRevealWhichPartFailed(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuthService(t)
	seedUser(t, repo, "jane@example.com", core.RoleUser)

	_, _, _, unknownErr := svc.Login(ctx, "nobody@example.com", testPassword)
	_, _, _, wrongPassErr := svc.Login(ctx, "jane@example.com", "wrong-password")

	assert.ErrorIs(t, unknownErr, core.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, core.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestVerifyTokenClassEnforcement(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuthService(t)
	seeded := seedUser(t, repo, "jane@example.com", core.RoleUser)

	access, refresh, _, err := svc.Login(ctx, seeded.Email, testPassword)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		policy  TokenPolicy
		wantErr error
	}{
		{"access where refresh required", access, RequireRefresh, core.ErrWrongTokenClass},
		{"refresh where access required", refresh, RequireAccess, core.ErrWrongTokenClass},
		{"access where access required", access, RequireAccess, nil},
		{"refresh where refresh required", refresh, RequireRefresh, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.VerifyToken(ctx, tt.token, tt.policy)
			if tt.wantErr != nil {
				assert.Nil(t, claims)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, claims)
			}
		})
	}
}

func TestLogoutRevokesOnlyThePresentedToken(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuthService(t)
	seeded := seedUser(t, repo, "jane@example.com", core.RoleUser)

	access, refresh, _, err := svc.Login(ctx, seeded.Email, testPassword)
	require.NoError(t, err)

	accessClaims, err := svc.VerifyToken(ctx, access, RequireAccess)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, accessClaims))

	// The access token is dead even though it has not expired
	claims, err := svc.VerifyToken(ctx, access, RequireAccess)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)

	// Logging out twice is harmless
	require.NoError(t, svc.Logout(ctx, accessClaims))

	// The paired refresh token keeps working
	refreshClaims, err := svc.VerifyToken(ctx, refresh, RequireRefresh)
	require.NoError(t, err)

	newAccess, err := svc.Refresh(ctx, refreshClaims)
	require.NoError(t, err)

	newClaims, err := svc.VerifyToken(ctx, newAccess, RequireAccess)
	require.NoError(t, err)
	assert.Equal(t, seeded.Email, newClaims.User.Email)
}

func TestLogoutSurvivesPublisherFailure(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	tk := tokenizer.NewJWTTokenizer([]byte("unit-test-signing-secret"))
	bl := store.NewMemoryBlocklist(time.Hour)
	svc := NewAuthService(tk, repo, bl, failingPublisher{}, zap.NewNop(), time.Hour, 30*24*time.Hour)
	seeded := seedUser(t, repo, "jane@example.com", core.RoleUser)

	access, _, _, err := svc.Login(ctx, seeded.Email, testPassword)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(ctx, access, RequireAccess)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	_, err = svc.VerifyToken(ctx, access, RequireAccess)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestVerifyTokenFailsClosedWhenStoreDown(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	tk := tokenizer.NewJWTTokenizer([]byte("unit-test-signing-secret"))
	svc := NewAuthService(tk, repo, downBlocklist{}, noopPublisher{}, zap.NewNop(), time.Hour, 30*24*time.Hour)
	seeded := seedUser(t, repo, "jane@example.com", core.RoleUser)

	access, _, _, err := svc.Login(ctx, seeded.Email, testPassword)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(ctx, access, RequireAccess)
	assert.Nil(t, claims, "an unreachable blocklist must reject, not approve")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
}

func TestRefreshKeepsIdentityAndRotatesJTI(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuthService(t)
	seeded := seedUser(t, repo, "jane@example.com", core.RoleAdmin)

	_, refresh, _, err := svc.Login(ctx, seeded.Email, testPassword)
	require.NoError(t, err)

	refreshClaims, err := svc.VerifyToken(ctx, refresh, RequireRefresh)
	require.NoError(t, err)

	newAccess, err := svc.Refresh(ctx, refreshClaims)
	require.NoError(t, err)

	newClaims, err := svc.VerifyToken(ctx, newAccess, RequireAccess)
	require.NoError(t, err)

	assert.Equal(t, refreshClaims.User, newClaims.User)
	assert.False(t, newClaims.Refresh)
	assert.NotEqual(t, refreshClaims.JTI, newClaims.JTI)
}

func TestRefreshRejectsStaleClaims(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	stale := &core.TokenClaims{
		User:      core.UserClaims{Email: "jane@example.com"},
		JTI:       uuid.New().String(),
		ExpiresAt: time.Now().Add(-time.Minute),
		Refresh:   true,
	}

	token, err := svc.Refresh(ctx, stale)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestSignUpHashesPasswordAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuthService(t)

	u := &core.User{Username: "jane", Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, svc.SignUp(ctx, u, testPassword))

	stored, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.NotEqual(t, testPassword, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(testPassword)))

	dup := &core.User{Username: "jane2", Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"}
	assert.ErrorIs(t, svc.SignUp(ctx, dup, testPassword), core.ErrUserExists)
}

func TestCurrentUserResolvesClaims(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuthService(t)
	seeded := seedUser(t, repo, "jane@example.com", core.RoleUser)

	access, _, _, err := svc.Login(ctx, seeded.Email, testPassword)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(ctx, access, RequireAccess)
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, seeded.UID, user.UID)
	assert.Equal(t, seeded.Email, user.Email)

	// A claim set whose identity no longer exists resolves to not-found
	orphan := &core.TokenClaims{User: core.UserClaims{Email: "gone@example.com"}}
	_, err = svc.CurrentUser(ctx, orphan)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
