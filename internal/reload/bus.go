package reload

import (
	"context"
	"strconv"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Bus carries the "availability changed" signal from block mutations and
// sync runs to whoever caches grids for that provider.
type Bus interface {
	Publish(ctx context.Context, providerID uint) error
	Subscribe(fn func(providerID uint))
}

// ===============================
// Redis Bus
// ===============================

const channel = "availability:reload"

// RedisBus fans the signal out across processes via pub/sub.
type RedisBus struct {
	client *redis.Client
	log    *zap.Logger

	mu   sync.Mutex
	subs []func(uint)
	once sync.Once
}

func NewRedisBus(client *redis.Client, log *zap.Logger) *RedisBus {
	return &RedisBus{client: client, log: log}
}

func (b *RedisBus) Publish(ctx context.Context, providerID uint) error {
	return b.client.Publish(ctx, channel, strconv.FormatUint(uint64(providerID), 10)).Err()
}

func (b *RedisBus) Subscribe(fn func(providerID uint)) {
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()

	b.once.Do(func() {
		go b.listen()
	})
}

func (b *RedisBus) listen() {
	sub := b.client.Subscribe(context.Background(), channel)
	for msg := range sub.Channel() {
		id, err := strconv.ParseUint(msg.Payload, 10, 64)
		if err != nil {
			b.log.Warn("reload: bad payload", zap.String("payload", msg.Payload))
			continue
		}

		b.mu.Lock()
		subs := make([]func(uint), len(b.subs))
		copy(subs, b.subs)
		b.mu.Unlock()

		for _, fn := range subs {
			fn(uint(id))
		}
	}
}

// ===============================
// In-Process Bus
// ===============================

// MemoryBus delivers synchronously inside one process. Used in tests.
type MemoryBus struct {
	mu   sync.Mutex
	subs []func(uint)
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{}
}

func (b *MemoryBus) Publish(_ context.Context, providerID uint) error {
	b.mu.Lock()
	subs := make([]func(uint), len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(providerID)
	}
	return nil
}

func (b *MemoryBus) Subscribe(fn func(providerID uint)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}
