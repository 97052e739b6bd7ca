package tokenizer

import (
	"testing"
	"time"

	"github.com/booklyhq/bookly/core"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-that-is-long-enough")

func testUser() core.UserClaims {
	return core.UserClaims{
		Email:   "jane@example.com",
		UserUID: uuid.New().String(),
		Role:    core.RoleUser,
	}
}

func TestIssueDecodeRoundtrip(t *testing.T) {
	tests := []struct {
		name    string
		refresh bool
		ttl     time.Duration
	}{
		{"access token", false, time.Hour},
		{"refresh token", true, 30 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := NewJWTTokenizer(testSecret)
			user := testUser()

			before := time.Now()
			token, err := tk.Issue(user, tt.refresh, tt.ttl)
			require.NoError(t, err)
			after := time.Now()

			claims, err := tk.Decode(token)
			require.NoError(t, err)

			assert.Equal(t, user, claims.User)
			assert.Equal(t, tt.refresh, claims.Refresh)

			_, err = uuid.Parse(claims.JTI)
			assert.NoError(t, err, "jti should be a uuid")

			assert.False(t, claims.ExpiresAt.Before(before.Add(tt.ttl).Truncate(time.Second)))
			assert.False(t, claims.ExpiresAt.After(after.Add(tt.ttl)))
		})
	}
}

func TestIssueGeneratesUniqueJTIs(t *testing.T) {
	tk := NewJWTTokenizer(testSecret)
	user := testUser()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := tk.Issue(user, false, time.Hour)
		require.NoError(t, err)

		claims, err := tk.Decode(token)
		require.NoError(t, err)

		require.False(t, seen[claims.JTI], "jti %s issued twice", claims.JTI)
		seen[claims.JTI] = true
	}
}

func TestDecodeExpiredToken(t *testing.T) {
	// Build a correctly signed token whose expiry is already in the past
	claims := bookClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		User:    testUser(),
		Refresh: false,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	tk := NewJWTTokenizer(testSecret)
	decoded, err := tk.Decode(signed)
	assert.Nil(t, decoded)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestDecodeExpiresAfterLifetime(t *testing.T) {
	tk := NewJWTTokenizer(testSecret)

	token, err := tk.Issue(testUser(), false, time.Second)
	require.NoError(t, err)

	_, err = tk.Decode(token)
	require.NoError(t, err)

	time.Sleep(1200 * time.Millisecond)

	decoded, err := tk.Decode(token)
	assert.Nil(t, decoded)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestDecodeForeignSecret(t *testing.T) {
	issuer := NewJWTTokenizer([]byte("a-completely-different-secret-key"))
	token, err := issuer.Issue(testUser(), false, time.Hour)
	require.NoError(t, err)

	tk := NewJWTTokenizer(testSecret)
	decoded, err := tk.Decode(token)
	assert.Nil(t, decoded)
	assert.ErrorIs(t, err, core.ErrInvalidSignature)
}

func TestDecodeMalformed(t *testing.T) {
	tk := NewJWTTokenizer(testSecret)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "not.a.token"} {
		decoded, err := tk.Decode(raw)
		assert.Nil(t, decoded, "input %q", raw)
		assert.ErrorIs(t, err, core.ErrMalformedToken, "input %q", raw)
	}
}

func TestDecodeRejectsMissingExpiry(t *testing.T) {
	claims := bookClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID: uuid.New().String(),
		},
		User: testUser(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	tk := NewJWTTokenizer(testSecret)
	decoded, err := tk.Decode(signed)
	assert.Nil(t, decoded)
	assert.Error(t, err)
}

func TestDefaultTTL(t *testing.T) {
	tk := NewJWTTokenizer(testSecret)

	token, err := tk.Issue(testUser(), false, 0)
	require.NoError(t, err)

	claims, err := tk.Decode(token)
	require.NoError(t, err)

	assert.InDelta(t, time.Until(claims.ExpiresAt).Seconds(), DefaultAccessTTL.Seconds(), 5)
}
