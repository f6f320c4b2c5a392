package controllers

import (
	"Spotiquiz/middleware"
	models "Spotiquiz/models/postgres"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionRequest struct {
	Token       string `json:"token" binding:"required"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Image       string `json:"image"`
	Country     string `json:"country"`
	Product     string `json:"product"`
}

// upsertUser creates the user on first login and refreshes the profile and
// last_login afterwards.
func upsertUser(db *gorm.DB, user *models.User) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "spotify_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "display_name", "email", "image", "country", "product", "last_login"}),
	}).Create(user).Error
}

// @Summary Open a session
// @Description Verifies a token issued by the Spotify login service, stores the caller's profile and opens a cookie session
// @Tags session
// @Accept json
// @Produce json
// @Param body body sessionRequest true "Login token and Spotify profile"
// @Success 200 {object} models.User
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /session [post]
func CreateSession(db *gorm.DB, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
			return
		}

		spotifyID, err := middleware.ParseToken(req.Token, secret)
		if err != nil {
			log.Printf("[SESSION-ERROR] %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		username := req.Username
		if username == "" {
			username = spotifyID
		}
		now := time.Now()
		user := models.User{
			SpotifyID:   spotifyID,
			Username:    username,
			DisplayName: req.DisplayName,
			Email:       req.Email,
			Image:       req.Image,
			Country:     req.Country,
			Product:     req.Product,
			LastLogin:   &now,
		}
		if err := upsertUser(db, &user); err != nil {
			log.Printf("[SESSION-ERROR] Upserting user %s: %v", spotifyID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving user"})
			return
		}

		session := sessions.Default(c)
		session.Set(middleware.UserKey, user.ID)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		log.Printf("[SESSION] User %d (%s) logged in", user.ID, spotifyID)
		c.JSON(http.StatusOK, user)
	}
}

// Logout from server, deletes the user id stored in the session
// @Summary Close the session
// @Tags session
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/session [delete]
// @Security ApiKeyAuth
func DeleteSession(c *gin.Context) {
	session := sessions.Default(c)
	// There is no session for the user, won't delete nothing
	if session.Get(middleware.UserKey) == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}

	session.Delete(middleware.UserKey)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// ResolveSpotifyUser looks up the local id of a Spotify account, for
// middleware.AuthRequired.
func ResolveSpotifyUser(db *gorm.DB) middleware.UserResolver {
	return func(spotifyID string) (int64, error) {
		var user models.User
		err := db.Select("id").Where("spotify_id = ?", spotifyID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errors.New("no user for that token")
		}
		if err != nil {
			return 0, err
		}
		return user.ID, nil
	}
}
