package userctx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const contextKeyPrefix = "daybrief:context:"

// RedisStore keeps one JSON document per user under <prefix><userID>.json.
type RedisStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewRedisStore connects a Redis client from a redis:// URL.
func NewRedisStore(redisURL string, logger *zap.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("Redis context store connected")
	return &RedisStore{rdb: rdb, logger: logger}, nil
}

func contextKey(userID string) string {
	return contextKeyPrefix + userID + ".json"
}

// Load fetches the document for userID, falling back to Default().
func (s *RedisStore) Load(ctx context.Context, userID string) (UserContext, error) {
	data, err := s.rdb.Get(ctx, contextKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("%w: load %s: %v", ErrStorage, userID, err)
	}

	var uc UserContext
	if err := json.Unmarshal(data, &uc); err != nil {
		s.logger.Warn("corrupt context document, using default",
			zap.String("user", userID), zap.Error(err))
		return Default(), nil
	}
	return uc, nil
}

// Save replaces the document for userID.
func (s *RedisStore) Save(ctx context.Context, userID string, uc UserContext) error {
	doc, err := json.Marshal(uc)
	if err != nil {
		return fmt.Errorf("%w: marshal context: %v", ErrStorage, err)
	}
	if err := s.rdb.Set(ctx, contextKey(userID), doc, 0).Err(); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrStorage, userID, err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
