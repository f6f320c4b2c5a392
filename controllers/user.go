package controllers

import (
	models "Spotiquiz/models/postgres"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type profileUpdate struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Image       string `json:"image"`
	Country     string `json:"country"`
	Product     string `json:"product"`
}

// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetUserPrivateInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			return
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// @Summary Update the caller's profile
// @Description Only the non-empty fields are changed
// @Tags users
// @Accept json
// @Produce json
// @Param body body profileUpdate true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/me [put]
// @Security ApiKeyAuth
func UpdateUserInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			return
		}

		var body profileUpdate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile"})
			return
		}

		result := db.Model(&models.User{ID: id}).Updates(models.User{
			Username:    body.Username,
			DisplayName: body.DisplayName,
			Image:       body.Image,
			Country:     body.Country,
			Product:     body.Product,
		})
		if result.Error != nil {
			log.Printf("[USER-ERROR] Updating user %d: %v", id, result.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found or nothing to update"})
			return
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// @Summary Get public info of a user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.PublicUser
// @Failure 404 {object} object{error=string}
// @Router /profiles/{username} [get]
func GetUserPublicInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
			return
		}
		c.JSON(http.StatusOK, user.Public())
	}
}
