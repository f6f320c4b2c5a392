package redis

import (
	redis_utils "Spotiquiz/services/redis/utils"
	"fmt"
	"log"
)

// InitRedis initializes the Redis connection and drops the room and
// presence keys left by a previous process, since rooms live in memory.
func InitRedis(Addr string, DB int) (*RedisClient, error) {
	rc, err := NewRedisClient(Addr, DB)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := rc.client.Ping(rc.ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("Successfully connected to Redis")

	for _, pattern := range []string{redis_utils.RoomKeyPattern, redis_utils.PresenceKeyPattern} {
		n, err := rc.CleanupPattern(pattern)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			log.Printf("[REDIS-INIT] Removed %d stale keys matching %s", n, pattern)
		}
	}

	return rc, nil
}

// CloseRedis gracefully closes the Redis connection
func CloseRedis(rc *RedisClient) error {
	if err := rc.client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %w", err)
	}
	return nil
}
