package redis

import (
	redis_models "Spotiquiz/models/redis"
	redis_utils "Spotiquiz/services/redis/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	RoomTTL     = 24 * time.Hour
	PresenceTTL = 24 * time.Hour
)

var ErrNotCached = errors.New("key not found in Redis")

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance. Anything other than a
// bare local address is parsed as a redis:// URL.
func NewRedisClient(Addr string, DB int) (*RedisClient, error) {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			return nil, fmt.Errorf("error parsing Redis URL: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// SaveQuizRoom stores the cached state of a room
// Key format: "room:{code}"
// TTL: 24 hours
func (rc *RedisClient) SaveQuizRoom(room *redis_models.QuizRoom) error {
	key := redis_utils.FormatRoomKey(room.Code)
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("error marshaling room data: %w", err)
	}
	return rc.client.Set(rc.ctx, key, data, RoomTTL).Err()
}

// GetQuizRoom retrieves the cached state of a room
// Key format: "room:{code}"
// Returns: ErrNotCached when the room was never cached or already removed
func (rc *RedisClient) GetQuizRoom(roomCode string) (*redis_models.QuizRoom, error) {
	key := redis_utils.FormatRoomKey(roomCode)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("error getting room data: %w", err)
	}

	var room redis_models.QuizRoom
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("error unmarshaling room data: %w", err)
	}
	return &room, nil
}

// DeleteQuizRoom removes the cached state of a room
func (rc *RedisClient) DeleteQuizRoom(roomCode string) error {
	if err := rc.client.Del(rc.ctx, redis_utils.FormatRoomKey(roomCode)).Err(); err != nil {
		return fmt.Errorf("error deleting room data: %w", err)
	}
	return nil
}

// SetPresence records a connected socket
// Key format: "presence:{socketID}"
// TTL: 24 hours
func (rc *RedisClient) SetPresence(presence *redis_models.PlayerPresence) error {
	key := redis_utils.FormatPresenceKey(presence.SocketID)
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence data: %w", err)
	}
	return rc.client.Set(rc.ctx, key, data, PresenceTTL).Err()
}

func (rc *RedisClient) GetPresence(socketID string) (*redis_models.PlayerPresence, error) {
	data, err := rc.client.Get(rc.ctx, redis_utils.FormatPresenceKey(socketID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("error getting presence data: %w", err)
	}

	var presence redis_models.PlayerPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence data: %w", err)
	}
	return &presence, nil
}

func (rc *RedisClient) DeletePresence(socketID string) error {
	if err := rc.client.Del(rc.ctx, redis_utils.FormatPresenceKey(socketID)).Err(); err != nil {
		return fmt.Errorf("error deleting presence data: %w", err)
	}
	return nil
}
