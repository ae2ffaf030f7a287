package guard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "submission_inflight:"

// releaseScript deletes the key only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard marks a key as in flight with SETNX so a second submission for
// the same attendee is rejected across instances. The TTL bounds a lock left
// behind by a crashed request.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(addr, password string, ttl time.Duration) *RedisGuard {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return NewRedisGuardWithClient(rdb, ttl)
}

func NewRedisGuardWithClient(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, keyPrefix+key, token, g.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire guard: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (g *RedisGuard) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, g.client, []string{keyPrefix + key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release guard: %w", err)
	}
	return nil
}

func (g *RedisGuard) Close() error {
	return g.client.Close()
}

type lease struct {
	token   string
	expires time.Time
}

// MemoryGuard is the single-process guard used when Redis is not configured.
type MemoryGuard struct {
	mu       sync.Mutex
	inflight map[string]lease
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{
		inflight: make(map[string]lease),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if l, ok := g.inflight[key]; ok && (g.ttl <= 0 || now.Before(l.expires)) {
		return "", false, nil
	}
	token := uuid.NewString()
	g.inflight[key] = lease{token: token, expires: now.Add(g.ttl)}
	return token, true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if l, ok := g.inflight[key]; ok && l.token == token {
		delete(g.inflight, key)
	}
	return nil
}
