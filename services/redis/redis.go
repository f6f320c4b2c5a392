package redis

import (
	"fmt"
)

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %w", key, err)
		}
	}
	return nil
}

// CleanupPattern removes every key matching pattern and returns how many
// were deleted.
func (rc *RedisClient) CleanupPattern(pattern string) (int, error) {
	var keys []string
	iter := rc.client.Scan(rc.ctx, 0, pattern, 100).Iterator()
	for iter.Next(rc.ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan Redis keys %s: %w", pattern, err)
	}
	if err := rc.CleanupKeys(keys); err != nil {
		return 0, err
	}
	return len(keys), nil
}
