// Package redis implements store.PlanStore and store.Locker against
// Redis, grounded on the teacher's pkg/adapters/redis.Store and
// pkg/adapters/redis.Locker: checkpoints are JSON blobs keyed by
// session id, indexed in a sorted set for List/expiry, and resuming a
// session is guarded by a SET-NX lock released through a
// compare-and-delete Lua script so a stale holder can never unlock a
// lock another process has since acquired.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/pocl/internal/search"
	"github.com/aretw0/pocl/internal/store"
	backend "github.com/redis/go-redis/v9"
)

// Store is a Redis-backed store.PlanStore.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the expiration applied to every saved checkpoint. Zero
// (the default) never expires.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix overrides the default "pocl:session:" key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New returns a Store using a freshly constructed client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{Addr: address, Password: password, DB: db})
	return NewFromClient(client, opts...)
}

// NewFromClient returns a Store using an existing client — the
// constructor internal/store/redis's tests use against a
// miniredis-backed client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: "pocl:session:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(sessionID string) string { return s.prefix + sessionID }
func (s *Store) indexKey() string            { return s.prefix + "index" }

func (s *Store) Save(ctx context.Context, sessionID string, cp search.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("store/redis: marshal checkpoint: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sessionID), data, s.ttl)

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // far future: effectively never expires
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sessionID})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store/redis: save checkpoint: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, sessionID string) (search.Checkpoint, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if err == backend.Nil {
			return search.Checkpoint{}, store.ErrSessionNotFound
		}
		return search.Checkpoint{}, fmt.Errorf("store/redis: load checkpoint: %w", err)
	}
	var cp search.Checkpoint
	if err := json.Unmarshal([]byte(val), &cp); err != nil {
		return search.Checkpoint{}, fmt.Errorf("store/redis: unmarshal checkpoint: %w", err)
	}
	return cp, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(sessionID))
	pipe.ZRem(ctx, s.indexKey(), sessionID)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("store/redis: delete checkpoint: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("store/redis: prune expired sessions: %w", err)
	}
	sessions, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("store/redis: list sessions: %w", err)
	}
	return sessions, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Locker implements store.Locker using Redis SET NX PX, unlocked through
// a compare-and-delete Lua script.
type Locker struct {
	client *backend.Client
	prefix string
}

// NewLocker returns a Locker sharing client with a Store.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{client: client, prefix: prefix}
}

const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// Lock polls for the lock at a fixed interval until acquired or ctx is
// canceled.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (store.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := fmt.Sprintf("%d", time.Now().UnixNano())

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("store/redis: acquire lock: %w", err)
		}
		if ok {
			return func(ctx context.Context) error {
				return l.client.Eval(ctx, unlockScript, []string{lockKey}, token).Err()
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
