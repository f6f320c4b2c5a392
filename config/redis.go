package config

import (
	"Spotiquiz/services/redis"
	"log"
)

// Connect to Redis
func Connect_redis() (*redis.RedisClient, error) {
	redisUri := GetEnv("REDIS_URL", "localhost:6379")
	redisClient, err := redis.InitRedis(redisUri, 0)
	if err != nil {
		log.Printf("[REDIS-ERROR] Error connecting to Redis: %v", err)
		return nil, err
	}
	log.Println("Redis connection established")
	return redisClient, nil
}
