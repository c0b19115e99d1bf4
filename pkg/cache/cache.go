package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache entry not found")
)

// Helper stores JSON values under a common key prefix. A nil client turns
// every write into a no-op and every read into ErrCacheNotAvailable.
type Helper struct {
	client *redis.Client
	prefix string
}

func NewHelper(client *redis.Client, prefix string) *Helper {
	return &Helper{client: client, prefix: prefix}
}

func (h *Helper) Key(key string) string {
	return fmt.Sprintf("%s%s", h.prefix, key)
}

func (h *Helper) Available() bool {
	return h != nil && h.client != nil
}

func (h *Helper) Get(ctx context.Context, key string, dest interface{}) error {
	if !h.Available() {
		return ErrCacheNotAvailable
	}

	data, err := h.client.Get(ctx, h.Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache unmarshal: %w", err)
	}
	return nil
}

func (h *Helper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !h.Available() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return h.client.Set(ctx, h.Key(key), data, ttl).Err()
}

func (h *Helper) Delete(ctx context.Context, keys ...string) error {
	if !h.Available() || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = h.Key(k)
	}
	return h.client.Del(ctx, full...).Err()
}
