package palette

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Redis-backed Cache for multi-instance serve deployments,
// where every instance must hand out the same palette for a prompt. It only
// stores palettes (six hex strings), never rendered images.
//
// Redis failures degrade to deriving the palette locally: a prompt's
// palette is a pure function of its text, so a derive on one instance and
// a cached read on another agree anyway.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a palette cache on the given Redis client.
// Keys are namespaced under "promptink:palette:".
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "promptink:palette:"}
}

// GetOrCreate returns the palette stored for prompt, deriving and storing
// it on first use. Entries are written without TTL; the palette for a
// prompt never changes.
func (c *RedisCache) GetOrCreate(prompt string, derive func() Palette) (Palette, bool) {
	ctx := context.Background()
	key := c.prefix + prompt

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var p Palette
		if json.Unmarshal(data, &p) == nil {
			return p, true
		}
		// Corrupt entry: rederive and overwrite below.
	} else if !errors.Is(err, redis.Nil) {
		return derive(), false
	}

	p := derive()
	if data, err := json.Marshal(p); err == nil {
		_ = c.client.Set(ctx, key, data, 0).Err()
	}
	return p, false
}

var _ Cache = (*RedisCache)(nil)
