package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wikiquiz/internal/domain"
)

// GetJSON reads key and decodes it into v. A miss is reported as
// domain.ErrCacheMiss.
func GetJSON(ctx context.Context, c domain.Cache, key string, v any) error {
	raw, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode cached %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c domain.Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key, err)
	}
	return c.Set(ctx, key, string(data), ttl)
}
