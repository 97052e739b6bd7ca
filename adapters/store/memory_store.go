package store

import (
	"context"
	"sync"
	"time"

	"github.com/booklyhq/bookly/ports"
)

// MemoryBlocklist is an in-memory implementation of the Blocklist interface,
// used in tests and single-instance deployments
type MemoryBlocklist struct {
	revoked map[string]time.Time
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewMemoryBlocklist creates a new in-memory blocklist
func NewMemoryBlocklist(ttl time.Duration) *MemoryBlocklist {
	return &MemoryBlocklist{
		revoked: make(map[string]time.Time),
		ttl:     ttl,
	}
}

// Revoke marks a jti as revoked
func (s *MemoryBlocklist) Revoke(ctx context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[jti] = time.Now().Add(s.ttl)
	return nil
}

// IsRevoked checks if a jti is revoked, treating lapsed entries as absent
func (s *MemoryBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiry, exists := s.revoked[jti]
	if !exists {
		return false, nil
	}

	if time.Now().After(expiry) {
		return false, nil
	}

	return true, nil
}

var _ ports.Blocklist = (*MemoryBlocklist)(nil)
