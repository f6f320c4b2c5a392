package routes

import (
	"Spotiquiz/controllers"
	"Spotiquiz/middleware"
	utils "Spotiquiz/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, rooms controllers.RoomReader, jwtSecret []byte) {
	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/session", controllers.CreateSession(db, jwtSecret))

	api.GET("/profiles/:username", controllers.GetUserPublicInfo(db))

	api.GET("/users/:id/games", controllers.GetGameHistory(db))

	api.GET("/users/:id/top-artists/:range", controllers.GetTopArtists(db))

	api.GET("/users/:id/top-tracks/:range", controllers.GetTopTracks(db))

	api.GET("/rooms/:code", controllers.GetRoom(rooms))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired(jwtSecret, controllers.ResolveSpotifyUser(db)))
	{
		authentication.DELETE("/session", controllers.DeleteSession)

		authentication.GET("/me", controllers.GetUserPrivateInfo(db))

		authentication.PUT("/me", controllers.UpdateUserInfo(db))

		authentication.GET("/friends", controllers.ListFriends(db))

		authentication.POST("/friends", controllers.AddFriend(db))

		authentication.DELETE("/friends/:friendId", controllers.DeleteFriend(db))

		authentication.PUT("/top-artists/:range", controllers.ReplaceTopArtists(db))

		authentication.PUT("/top-tracks/:range", controllers.ReplaceTopTracks(db))
	}
}
