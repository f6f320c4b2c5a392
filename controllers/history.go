package controllers

import (
	models "Spotiquiz/models/postgres"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

// @Summary Game history of a user
// @Description Finished quiz games the user played, newest first
// @Tags games
// @Produce json
// @Param id path int true "User id"
// @Param limit query int false "Number of games (default 10, max 50)"
// @Success 200 {array} models.GameResult
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /users/{id}/games [get]
func GetGameHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := idParam(c, "id")
		if !ok {
			return
		}

		limit := defaultHistoryLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			limit = min(n, maxHistoryLimit)
		}

		var games []models.GameResult
		err := db.Where("player1_id = ? OR player2_id = ?", userID, userID).
			Order("created_at DESC").
			Limit(limit).
			Find(&games).Error
		if err != nil {
			log.Printf("[HISTORY-ERROR] User %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching game history"})
			return
		}
		c.JSON(http.StatusOK, games)
	}
}
