package session

import (
	"context"
	"fmt"
	"time"

	"github.com/nimeshabuddhika/creditpath-web/pkg"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as a Redis hash with the cpai_token and
// cpai_name fields.
type RedisStore struct {
	client *redis.Client
	prefix string        // e.g: "creditpath:session:"
	ttl    time.Duration // zero keeps records until logout
}

// NewRedisStore creates a Store backed by client.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Load(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, pkg.ErrMissingSessionID
	}
	record, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	return fromRecord(id, record), nil
}

func (r *RedisStore) Save(ctx context.Context, s Session) error {
	if s.ID == "" {
		return pkg.ErrMissingSessionID
	}
	key := r.key(s.ID)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, pkg.TokenKey, s.Token, pkg.NameKey, s.Name)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return pkg.ErrMissingSessionID
	}
	// removing both fields removes the hash
	if err := r.client.HDel(ctx, r.key(id), pkg.TokenKey, pkg.NameKey).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
