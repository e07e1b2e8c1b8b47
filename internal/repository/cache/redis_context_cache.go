package cache

import (
	"context"
	"encoding/json"
	"time"

	"supercharged-notes-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chat:context:"

// RedisContextCache shares general contexts between instances.
// Redis errors are logged and treated as a miss.
type RedisContextCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	now    Clock
	logger logger.ILogger
}

func NewRedisContextCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *RedisContextCache {
	return &RedisContextCache{
		rdb:    rdb,
		ttl:    ttl,
		now:    time.Now,
		logger: log,
	}
}

func (r *RedisContextCache) Get(ctx context.Context, userID string) (string, bool) {
	raw, err := r.rdb.Get(ctx, keyPrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("CONTEXT_CACHE", "Redis get failed", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		return "", false
	}

	var entry ContextEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return "", false
	}
	// Key expiry has second granularity; the timestamp check keeps the bound exact.
	if !entry.fresh(r.now(), r.ttl) {
		return "", false
	}
	return entry.ContextText, true
}

func (r *RedisContextCache) Set(ctx context.Context, userID, contextText string) {
	payload, err := json.Marshal(ContextEntry{
		UserId:      userID,
		ContextText: contextText,
		CreatedAt:   r.now(),
	})
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, keyPrefix+userID, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("CONTEXT_CACHE", "Redis set failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}
