// Package idempotency remembers which appointment a client-supplied
// Idempotency-Key produced, so a retried booking returns the first result.
package idempotency

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrInFlight is returned by Begin while another request holds the key.
var ErrInFlight = errors.New("idempotency key in flight")

const pending = "\x00pending"

type Store interface {
	// Begin claims key. It returns the stored result when the key already
	// completed, ErrInFlight when it is claimed but not finished, and "" when
	// the caller now owns the key.
	Begin(ctx context.Context, key string) (string, error)
	Complete(ctx context.Context, key, result string) error
	// Release drops a claim whose request failed so the client can retry.
	Release(ctx context.Context, key string) error
}

// ===============================
// Redis
// ===============================

type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: "idem:appointment:"}
}

func (s *RedisStore) Begin(ctx context.Context, key string) (string, error) {
	k := s.prefix + key

	ok, err := s.rdb.SetNX(ctx, k, pending, s.ttl).Result()
	if err != nil {
		return "", err
	}
	if ok {
		return "", nil
	}

	val, err := s.rdb.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return s.Begin(ctx, key)
	}
	if err != nil {
		return "", err
	}
	if val == pending {
		return "", ErrInFlight
	}
	return val, nil
}

func (s *RedisStore) Complete(ctx context.Context, key, result string) error {
	return s.rdb.Set(ctx, s.prefix+key, result, s.ttl).Err()
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}

// ===============================
// In-memory
// ===============================

type entry struct {
	value   string
	expires time.Time
}

// MemoryStore is the single-instance fallback used when no redis address is
// configured.
type MemoryStore struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	m   map[string]entry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, m: make(map[string]entry)}
}

func (s *MemoryStore) Begin(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.prune(now)

	if e, ok := s.m[key]; ok && now.Before(e.expires) {
		if e.value == pending {
			return "", ErrInFlight
		}
		return e.value, nil
	}

	s.m[key] = entry{value: pending, expires: now.Add(s.ttl)}
	return "", nil
}

// prune drops expired keys. Callers hold mu.
func (s *MemoryStore) prune(now time.Time) {
	for k, e := range s.m {
		if !now.Before(e.expires) {
			delete(s.m, k)
		}
	}
}

func (s *MemoryStore) Complete(_ context.Context, key, result string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = entry{value: result, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
