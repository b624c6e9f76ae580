package dedup

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKey is the list holding processed digests, newest first.
const RedisKey = "remates:processed_hashes"

// RedisHistory keeps the digests in a capped Redis list so several machines
// can share one history.
type RedisHistory struct {
	client redis.Cmdable
	key    string
	limit  int64
}

// NewRedisHistory creates a history on client.
func NewRedisHistory(client redis.Cmdable) *RedisHistory {
	return &RedisHistory{client: client, key: RedisKey, limit: HistoryLimit}
}

// Contains implements History.
func (h *RedisHistory) Contains(ctx context.Context, hash string) (bool, error) {
	hashes, err := h.client.LRange(ctx, h.key, 0, h.limit-1).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read hash history: %w", err)
	}
	for _, existing := range hashes {
		if existing == hash {
			return true, nil
		}
	}
	return false, nil
}

// Record implements History.
func (h *RedisHistory) Record(ctx context.Context, hash string) error {
	if err := h.client.LPush(ctx, h.key, hash).Err(); err != nil {
		return fmt.Errorf("failed to record hash: %w", err)
	}
	if err := h.client.LTrim(ctx, h.key, 0, h.limit-1).Err(); err != nil {
		return fmt.Errorf("failed to trim hash history: %w", err)
	}
	return nil
}
