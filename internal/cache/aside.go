package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern for a single JSON-encoded value.
// On a hit the cached entry is decoded into dest. On a miss the load function
// runs, is expected to fill dest, and the result is stored with the given TTL.
// Cache failures never fail the call; the loader result is used directly.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if client != nil {
		raw, err := client.Get(ctx, key).Result()
		if err == nil {
			if jsonErr := json.Unmarshal([]byte(raw), dest); jsonErr == nil {
				return nil
			}
			// Unreadable entry, drop it and fall through to the loader
			client.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			// Redis trouble, serve from the source
			_ = err
		}
	}

	if err := load(); err != nil {
		return err
	}

	if client != nil {
		if raw, jsonErr := json.Marshal(dest); jsonErr == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}

	return nil
}
