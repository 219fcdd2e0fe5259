package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koolee1372/bpr-cms/internal/kv"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(kv.NewRedisStore(client)), mr
}

func TestStore_PutThenGet(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tenant-1", "admin-1", "refresh-token-a", time.Hour))

	got, err := s.Get(ctx, "tenant-1", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-token-a", got)
}

func TestStore_Get_NoSession(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	_, err := s.Get(context.Background(), "tenant-1", "admin-1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_Put_OverwritesPreviousToken(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tenant-1", "admin-1", "refresh-token-a", time.Hour))
	require.NoError(t, s.Put(ctx, "tenant-1", "admin-1", "refresh-token-b", time.Hour))

	got, err := s.Get(ctx, "tenant-1", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-token-b", got)
}

func TestStore_KeysAreScopedByTenantAndAdmin(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tenant-1", "admin-1", "token-t1-a1", time.Hour))
	require.NoError(t, s.Put(ctx, "tenant-2", "admin-1", "token-t2-a1", time.Hour))

	got, err := s.Get(ctx, "tenant-1", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "token-t1-a1", got)

	got, err = s.Get(ctx, "tenant-2", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "token-t2-a1", got)
}

func TestStore_EntryExpiresWithTTL(t *testing.T) {
	t.Parallel()

	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tenant-1", "admin-1", "refresh-token-a", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := s.Get(ctx, "tenant-1", "admin-1")
	assert.ErrorIs(t, err, ErrNoSession)
}
