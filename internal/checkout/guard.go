package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard deduplicates concurrent submissions for the same purchase across
// handler instances. Acquire must be paired with Release; a second Acquire
// for a held key fails.
type Guard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}

// GuardKey identifies a purchase attempt: one customer buying one koi or
// one batch counts as a single logical submission.
func GuardKey(pc PurchaseContext) string {
	if pc.Batch != nil {
		return fmt.Sprintf("checkout:%d:batch:%d", pc.CustomerID, pc.Batch.BatchID)
	}
	if pc.Koi != nil {
		return fmt.Sprintf("checkout:%d:koi:%d", pc.CustomerID, pc.Koi.KoiID)
	}
	return fmt.Sprintf("checkout:%d:empty", pc.CustomerID)
}

// MemoryGuard is the single-instance implementation.
type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{held: make(map[string]struct{})}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.held[key]; exists {
		return false, nil
	}
	g.held[key] = struct{}{}
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
}

// RedisGuard holds the submission lock in redis so the guard survives
// running more than one instance of the service. The TTL bounds how long a
// crashed instance can block resubmission.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire submission lock: %w", err)
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) {
	_ = g.client.Del(ctx, key).Err()
}
