package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

const redisKeyPrefix = "sess:"

// RedisStore keeps sessions in Redis so that a restart of the front end
// does not log everyone out.  Values are JSON-encoded {token, role}
// pairs written with SETEX, so the pair is always stored and expired as
// one unit.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore wraps an existing Redis client.  The client must be
// non-nil; callers that got nil from config.NewRedisClient should fall
// back to NewMemoryStore instead.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, sess model.Session) (string, error) {
	if !sess.Valid() {
		return "", ErrInvalidSession
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	id := newID()
	if err := s.rdb.SetEx(ctx, redisKeyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (model.Session, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Session{}, ErrNoSession
		}
		return model.Session{}, err
	}
	var sess model.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return model.Session{}, ErrNoSession
	}
	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+id).Err()
}
