package session

import (
	"context"
	"errors"
	"time"

	"agro-advisor/internal/common/database"
	"agro-advisor/internal/models"
)

const redisKeyPrefix = "agro:session:"

// RedisStore keeps sessions as JSON values that expire with the session TTL.
type RedisStore struct {
	redis *database.RedisClient
}

func NewRedisStore(client *database.RedisClient) *RedisStore {
	return &RedisStore{redis: client}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Load(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	if err := r.redis.GetJSON(ctx, redisKey(id), &s); err != nil {
		if errors.Is(err, database.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *models.Session, ttl time.Duration) error {
	return r.redis.SetJSON(ctx, redisKey(s.ID), s, ttl)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.redis.Del(ctx, redisKey(id))
}
