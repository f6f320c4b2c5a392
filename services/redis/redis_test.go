package redis

import (
	redis_models "Spotiquiz/models/redis"
	redis_utils "Spotiquiz/services/redis/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These run against a local Redis and are skipped when none is listening.
func TestRedisOperations(t *testing.T) {
	rc, err := InitRedis("localhost:6379", 0)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer CloseRedis(rc)

	cleanupRedis := func() {
		require.NoError(t, rc.CleanupKeys([]string{
			redis_utils.FormatRoomKey("test_room_123"),
			redis_utils.FormatPresenceKey("test_socket"),
		}))
	}

	t.Run("QuizRoom Operations", func(t *testing.T) {
		cleanupRedis()
		room := &redis_models.QuizRoom{
			Code:                 "test_room_123",
			Host:                 "test_socket",
			Phase:                "awaiting_questions",
			CurrentQuestionIndex: -1,
			Players:              []redis_models.RoomPlayer{{SocketID: "test_socket", Name: "Ana"}},
		}
		require.NoError(t, rc.SaveQuizRoom(room))

		got, err := rc.GetQuizRoom("test_room_123")
		require.NoError(t, err)
		assert.Equal(t, room, got)

		require.NoError(t, rc.DeleteQuizRoom("test_room_123"))
		_, err = rc.GetQuizRoom("test_room_123")
		assert.ErrorIs(t, err, ErrNotCached)
	})

	t.Run("Presence Operations", func(t *testing.T) {
		cleanupRedis()
		presence := &redis_models.PlayerPresence{SocketID: "test_socket", Status: redis_models.StatusOnline, LastPing: 1}
		require.NoError(t, rc.SetPresence(presence))

		got, err := rc.GetPresence("test_socket")
		require.NoError(t, err)
		assert.Equal(t, presence, got)

		require.NoError(t, rc.DeletePresence("test_socket"))
		_, err = rc.GetPresence("test_socket")
		assert.ErrorIs(t, err, ErrNotCached)
	})

	t.Run("CleanupPattern", func(t *testing.T) {
		cleanupRedis()
		require.NoError(t, rc.SaveQuizRoom(&redis_models.QuizRoom{Code: "test_room_123"}))
		n, err := rc.CleanupPattern(redis_utils.FormatRoomKey("test_room_*"))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
