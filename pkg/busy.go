package pkg

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BusyGuard tracks in-flight submissions so a control cannot fire twice
// while its first request is still running.
type BusyGuard interface {
	// Acquire claims key. It returns ErrBusy when key is already held.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// BusyKey builds the guard key for one session and action.
func BusyKey(sessionID string, action Action) string {
	return sessionID + ":" + string(action)
}

// LocalBusyGuard keeps held keys in process memory.
type LocalBusyGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalBusyGuard() *LocalBusyGuard {
	return &LocalBusyGuard{held: make(map[string]struct{})}
}

func (g *LocalBusyGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.held[key]; ok {
		return nil, ErrBusy
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}

// RedisBusyGuard holds keys in Redis so replicas sharing a session store also
// share the guard. Keys expire after ttl in case a holder dies mid-request.
type RedisBusyGuard struct {
	redisClient *redis.Client
	prefix      string // e.g: "creditpath:busy:"
	ttl         time.Duration
	logger      *zap.Logger
}

func NewRedisBusyGuard(redisClient *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisBusyGuard {
	return &RedisBusyGuard{
		redisClient: redisClient,
		prefix:      prefix,
		ttl:         ttl,
		logger:      logger,
	}
}

func (g *RedisBusyGuard) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := g.prefix + key
	ok, err := g.redisClient.SetNX(ctx, redisKey, "1", g.ttl).Result()
	if err != nil {
		// Redis down: let the request through rather than block the user.
		g.logger.Error("busy guard unavailable; allowing request", zap.String("key", key), zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, ErrBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// release must not depend on the request context which may already be cancelled
			if err := g.redisClient.Del(context.Background(), redisKey).Err(); err != nil {
				g.logger.Warn("failed to release busy key", zap.String("key", key), zap.Error(err))
			}
		})
	}, nil
}
