package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/koolee1372/bpr-cms/internal/kv"
)

// ErrNoSession is returned when no refresh token is on record for the
// (tenant, admin) pair, either because none was issued or because the
// entry's TTL elapsed.
var ErrNoSession = errors.New("no active session")

// Store keeps the single currently valid refresh token per
// (tenant, admin). Put overwrites unconditionally: logging in from a
// second device silently invalidates the first device's refresh token.
// Entries expire with the refresh token itself, so no sweep is needed.
type Store struct {
	KV kv.Store
}

func New(store kv.Store) *Store {
	return &Store{KV: store}
}

func key(tenantID, adminID string) string {
	return fmt.Sprintf("session:%s:%s", tenantID, adminID)
}

func (s *Store) Put(ctx context.Context, tenantID, adminID, refreshToken string, ttl time.Duration) error {
	return s.KV.Set(ctx, key(tenantID, adminID), refreshToken, ttl)
}

func (s *Store) Get(ctx context.Context, tenantID, adminID string) (string, error) {
	token, err := s.KV.Get(ctx, key(tenantID, adminID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", ErrNoSession
		}
		return "", err
	}
	return token, nil
}
