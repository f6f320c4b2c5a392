package controllers

import (
	redis_models "Spotiquiz/models/redis"
	"Spotiquiz/services/redis"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RoomReader is the part of the Redis client the room lookup needs.
type RoomReader interface {
	GetQuizRoom(roomCode string) (*redis_models.QuizRoom, error)
}

// @Summary Look up a quiz room
// @Description Returns the last cached state of a live room, without its questions
// @Tags rooms
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} redis_models.QuizRoom
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /rooms/{code} [get]
func GetRoom(rooms RoomReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		room, err := rooms.GetQuizRoom(code)
		if err != nil {
			if errors.Is(err, redis.ErrNotCached) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
				return
			}
			log.Printf("[ROOM-LOOKUP-ERROR] Room %s: %v", code, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching room"})
			return
		}
		c.JSON(http.StatusOK, room)
	}
}
