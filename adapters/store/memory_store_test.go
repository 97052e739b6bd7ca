package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlocklistRevoke(t *testing.T) {
	ctx := context.Background()
	bl := NewMemoryBlocklist(time.Minute)

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1"))

	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked, "unrelated jti should not be revoked")
}

func TestMemoryBlocklistRevokeIdempotent(t *testing.T) {
	ctx := context.Background()
	bl := NewMemoryBlocklist(time.Minute)

	require.NoError(t, bl.Revoke(ctx, "jti-1"))
	require.NoError(t, bl.Revoke(ctx, "jti-1"))

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryBlocklistEntryExpiry(t *testing.T) {
	ctx := context.Background()
	bl := NewMemoryBlocklist(50 * time.Millisecond)

	require.NoError(t, bl.Revoke(ctx, "jti-1"))

	time.Sleep(80 * time.Millisecond)

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entry should lapse after its ttl")
}
