package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/pocl/internal/search"
	"github.com/aretw0/pocl/internal/store"
	"github.com/aretw0/pocl/internal/store/redis"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*backend.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return backend.NewClient(&backend.Options{Addr: mr.Addr()}), mr
}

func TestStore_Contract(t *testing.T) {
	client, _ := newClient(t)
	store.RunPlanStoreContract(t, redis.NewFromClient(client))
}

func TestStore_TTLExpiration(t *testing.T) {
	client, mr := newClient(t)
	s := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	sessionID := "session-ttl"

	require.NoError(t, s.Save(ctx, sessionID, search.Checkpoint{SessionID: sessionID}))

	sessions, err := s.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, sessions, sessionID)

	mr.FastForward(2 * time.Second)

	_, err = s.Load(ctx, sessionID)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)

	time.Sleep(1200 * time.Millisecond)
	sessions, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStore_Prefix(t *testing.T) {
	client, mr := newClient(t)
	s := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()
	sessionID := "my-session"

	require.NoError(t, s.Save(ctx, sessionID, search.Checkpoint{SessionID: sessionID}))

	assert.True(t, mr.Exists("custom:app:my-session"))
	assert.True(t, mr.Exists("custom:app:index"))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, sessionID)
}

func TestLocker_MutualExclusion(t *testing.T) {
	client, _ := newClient(t)
	locker := redis.NewLocker(client, "pocl:session:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "session-a", 5*time.Second)
	require.NoError(t, err)

	lockedCtx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(lockedCtx, "session-a", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	unlock2, err := locker.Lock(ctx, "session-a", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}
