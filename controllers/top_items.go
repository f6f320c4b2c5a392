package controllers

import (
	models "Spotiquiz/models/postgres"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxTopItems is the largest page Spotify returns for top items.
const maxTopItems = 50

type topArtistInput struct {
	ID     string   `json:"id" binding:"required"`
	Name   string   `json:"name" binding:"required"`
	Image  string   `json:"image"`
	Genres []string `json:"genres"`
}

type topTrackInput struct {
	ID         string `json:"id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	ArtistName string `json:"artist_name" binding:"required"`
	AlbumName  string `json:"album_name"`
	DurationMs int    `json:"duration_ms"`
	PreviewURL string `json:"preview_url"`
	Image      string `json:"image"`
}

// timeRangeParam validates the :range path parameter, answering 400 otherwise.
func timeRangeParam(c *gin.Context) (models.TimeRange, bool) {
	r := models.TimeRange(c.Param("range"))
	if !r.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time range must be 1month, 6months or 1year"})
		return "", false
	}
	return r, true
}

// replaceSnapshot deletes the caller's rows for a range and inserts rows in
// one transaction.
func replaceSnapshot[T any](db *gorm.DB, userID int64, timeRange models.TimeRange, rows []T) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var zero T
		if err := tx.Where("user_id = ? AND time_range = ?", userID, timeRange).Delete(&zero).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Omit("User").Create(&rows).Error
	})
}

// @Summary Replace the caller's top artists
// @Description Stores a new snapshot of the caller's top artists for a time range. Ranks follow the body order.
// @Tags top
// @Accept json
// @Produce json
// @Param range path string true "1month, 6months or 1year"
// @Param body body []topArtistInput true "Artists, best first"
// @Success 200 {array} models.TopArtist
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/top-artists/{range} [put]
// @Security ApiKeyAuth
func ReplaceTopArtists(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			return
		}
		timeRange, ok := timeRangeParam(c)
		if !ok {
			return
		}

		var input []topArtistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artist list"})
			return
		}
		if len(input) > maxTopItems {
			input = input[:maxTopItems]
		}

		now := time.Now()
		rows := make([]models.TopArtist, len(input))
		for i, a := range input {
			genres := a.Genres
			if genres == nil {
				genres = []string{}
			}
			encoded, err := json.Marshal(genres)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid genres"})
				return
			}
			rows[i] = models.TopArtist{
				UserID:      id,
				TimeRange:   timeRange,
				Rank:        i + 1,
				ArtistID:    a.ID,
				ArtistName:  a.Name,
				ArtistImage: a.Image,
				Genres:      datatypes.JSON(encoded),
				CreatedAt:   now,
			}
		}

		if err := replaceSnapshot(db, id, timeRange, rows); err != nil {
			log.Printf("[TOP-ERROR] Saving top artists of %d (%s): %v", id, timeRange, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving top artists"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// @Summary Replace the caller's top tracks
// @Description Stores a new snapshot of the caller's top tracks for a time range. Ranks follow the body order.
// @Tags top
// @Accept json
// @Produce json
// @Param range path string true "1month, 6months or 1year"
// @Param body body []topTrackInput true "Tracks, best first"
// @Success 200 {array} models.TopTrack
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/top-tracks/{range} [put]
// @Security ApiKeyAuth
func ReplaceTopTracks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			return
		}
		timeRange, ok := timeRangeParam(c)
		if !ok {
			return
		}

		var input []topTrackInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid track list"})
			return
		}
		if len(input) > maxTopItems {
			input = input[:maxTopItems]
		}

		now := time.Now()
		rows := make([]models.TopTrack, len(input))
		for i, tr := range input {
			rows[i] = models.TopTrack{
				UserID:     id,
				TimeRange:  timeRange,
				Rank:       i + 1,
				TrackID:    tr.ID,
				TrackName:  tr.Name,
				ArtistName: tr.ArtistName,
				AlbumName:  tr.AlbumName,
				DurationMs: tr.DurationMs,
				PreviewURL: tr.PreviewURL,
				TrackImage: tr.Image,
				CreatedAt:  now,
			}
		}

		if err := replaceSnapshot(db, id, timeRange, rows); err != nil {
			log.Printf("[TOP-ERROR] Saving top tracks of %d (%s): %v", id, timeRange, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving top tracks"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// @Summary Top artists of a user
// @Tags top
// @Produce json
// @Param id path int true "User id"
// @Param range path string true "1month, 6months or 1year"
// @Success 200 {array} models.TopArtist
// @Failure 400 {object} object{error=string}
// @Router /users/{id}/top-artists/{range} [get]
func GetTopArtists(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		listSnapshot[models.TopArtist](c, db, "artists")
	}
}

// @Summary Top tracks of a user
// @Tags top
// @Produce json
// @Param id path int true "User id"
// @Param range path string true "1month, 6months or 1year"
// @Success 200 {array} models.TopTrack
// @Failure 400 {object} object{error=string}
// @Router /users/{id}/top-tracks/{range} [get]
func GetTopTracks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		listSnapshot[models.TopTrack](c, db, "tracks")
	}
}

func listSnapshot[T any](c *gin.Context, db *gorm.DB, what string) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	timeRange, ok := timeRangeParam(c)
	if !ok {
		return
	}

	rows := []T{}
	err := db.Where("user_id = ? AND time_range = ?", userID, timeRange).Order("rank").Find(&rows).Error
	if err != nil {
		log.Printf("[TOP-ERROR] Fetching top %s of %d (%s): %v", what, userID, timeRange, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching top " + what})
		return
	}
	c.JSON(http.StatusOK, rows)
}
