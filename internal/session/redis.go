package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-redis/redis/v8"
)

var _ Store = (*RedisStore)(nil)

const redisKeyPrefix = "juicebar:session:"

// RedisStore keeps sessions as JSON values in Redis so they survive
// restarts and are shared between replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a RedisStore using client. A zero ttl stores keys
// without expiration.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get session %q", id)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "decode session %q", id)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	if err := r.client.Set(ctx, redisKeyPrefix+s.ID, data, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "save session %q", s.ID)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return errors.Wrapf(err, "delete session %q", id)
	}
	return nil
}

// Ping checks connectivity to Redis.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
