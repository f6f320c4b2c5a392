package postgres

import (
	"time"

	"gorm.io/datatypes"
)

// TimeRange is the listening window a top-items snapshot covers.
type TimeRange string

const (
	TimeRangeMonth     TimeRange = "1month"
	TimeRangeSixMonths TimeRange = "6months"
	TimeRangeYear      TimeRange = "1year"
)

func (r TimeRange) Valid() bool {
	switch r {
	case TimeRangeMonth, TimeRangeSixMonths, TimeRangeYear:
		return true
	}
	return false
}

type TopArtist struct {
	UserID      int64          `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	TimeRange   TimeRange      `gorm:"primaryKey;type:varchar(8)" json:"time_range"`
	Rank        int            `gorm:"primaryKey;autoIncrement:false" json:"rank"`
	ArtistID    string         `gorm:"size:64;not null" json:"artist_id"`
	ArtistName  string         `gorm:"size:255;not null" json:"artist_name"`
	ArtistImage string         `gorm:"size:512" json:"artist_image,omitempty"`
	Genres      datatypes.JSON `gorm:"type:jsonb" json:"genres"`
	CreatedAt   time.Time      `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (TopArtist) TableName() string { return "user_top_artists" }

type TopTrack struct {
	UserID     int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	TimeRange  TimeRange `gorm:"primaryKey;type:varchar(8)" json:"time_range"`
	Rank       int       `gorm:"primaryKey;autoIncrement:false" json:"rank"`
	TrackID    string    `gorm:"size:64;not null" json:"track_id"`
	TrackName  string    `gorm:"size:255;not null" json:"track_name"`
	ArtistName string    `gorm:"size:255;not null" json:"artist_name"`
	AlbumName  string    `gorm:"size:255" json:"album_name,omitempty"`
	DurationMs int       `json:"duration_ms,omitempty"`
	PreviewURL string    `gorm:"size:512" json:"preview_url,omitempty"`
	TrackImage string    `gorm:"size:512" json:"track_image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (TopTrack) TableName() string { return "user_top_tracks" }
