package synclock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrLocked means another sync operation holds the provider's lock.
var ErrLocked = errors.New("provider sync lock held")

// Locker serializes mutating bridge operations per provider.
type Locker interface {
	Acquire(ctx context.Context, providerID uint) (release func(), err error)
}

// ===============================
// Redis Locker
// ===============================

// RedisLocker takes the lock with SET NX and a TTL so a crashed worker can
// never wedge a provider forever.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    2 * time.Minute,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, providerID uint) (func(), error) {
	key := fmt.Sprintf("synclock:provider:%d", providerID)

	ok, err := l.client.SetNX(ctx, key, "1", l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() {
		l.client.Del(context.Background(), key)
	}, nil
}

// ===============================
// In-Memory Locker
// ===============================

// MemoryLocker is the single-process implementation used in tests and in
// deployments without redis.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[uint]bool
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: map[uint]bool{}}
}

func (l *MemoryLocker) Acquire(_ context.Context, providerID uint) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[providerID] {
		return nil, ErrLocked
	}
	l.held[providerID] = true

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, providerID)
	}, nil
}
