package postgres

import (
	"time"
)

/*
 * 'User' is a Spotify account that has logged into the app at least once.
 * ID is the persistent id players send as their db id in quiz rooms.
 */
type User struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	SpotifyID   string     `gorm:"size:64;not null;uniqueIndex" json:"spotify_id"`
	Username    string     `gorm:"size:100;not null;index" json:"username"`
	DisplayName string     `gorm:"size:100" json:"display_name,omitempty"`
	Email       string     `gorm:"size:255" json:"email,omitempty"`
	Image       string     `gorm:"size:512" json:"image,omitempty"`
	Country     string     `gorm:"size:8" json:"country,omitempty"`
	Product     string     `gorm:"size:16" json:"product,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PublicUser is what other users get to see.
type PublicUser struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Image       string `json:"image,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName, Image: u.Image}
}
