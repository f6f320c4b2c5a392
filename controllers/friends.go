package controllers

import (
	models "Spotiquiz/models/postgres"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type addFriendRequest struct {
	Username string `json:"username" binding:"required"`
}

// @Summary Get a list of a user friends
// @Description Returns the accepted friends of the caller, most recently active first
// @Tags friends
// @Produce json
// @Success 200 {array} models.PublicUser
// @Failure 500 {object} object{error=string}
// @Router /auth/friends [get]
// @Security ApiKeyAuth
func ListFriends(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			return
		}

		var friends []models.User
		err := db.Joins("JOIN friendships ON friendships.friend_id = users.id").
			Where("friendships.user_id = ? AND friendships.status = ?", id, models.FriendshipAccepted).
			Order("users.last_login DESC NULLS LAST").
			Find(&friends).Error
		if err != nil {
			log.Printf("[FRIENDS-ERROR] Listing friends of %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friendships"})
			return
		}

		out := make([]models.PublicUser, len(friends))
		for i, f := range friends {
			out[i] = f.Public()
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Add a new friend
// @Description Adds an accepted friendship in both directions. Adding an existing friend is not an error.
// @Tags friends
// @Accept json
// @Produce json
// @Param body body addFriendRequest true "Username of the friend to be added"
// @Success 200 {object} object{message=string,friend=models.PublicUser}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/friends [post]
// @Security ApiKeyAuth
func AddFriend(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			return
		}

		var req addFriendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
			return
		}

		var friend models.User
		if err := db.Where("username = ?", req.Username).First(&friend).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
			return
		}

		if friend.ID == id {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot add yourself as a friend"})
			return
		}

		edges := []models.Friendship{
			{UserID: id, FriendID: friend.ID, Status: models.FriendshipAccepted},
			{UserID: friend.ID, FriendID: id, Status: models.FriendshipAccepted},
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).Omit(clause.Associations).Create(&edges).Error
		if err != nil {
			log.Printf("[FRIENDS-ERROR] %d adding %d: %v", id, friend.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding friend"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Friend added successfully", "friend": friend.Public()})
	}
}

// @Summary Remove a friend
// @Description Removes the friendship in both directions
// @Tags friends
// @Produce json
// @Param friendId path int true "Id of the friend to be removed"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/friends/{friendId} [delete]
// @Security ApiKeyAuth
func DeleteFriend(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			return
		}
		friendID, ok := idParam(c, "friendId")
		if !ok {
			return
		}

		result := db.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			id, friendID, friendID, id).Delete(&models.Friendship{})
		if result.Error != nil {
			log.Printf("[FRIENDS-ERROR] %d removing %d: %v", id, friendID, result.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing friend"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
	}
}
