package postgres

import "time"

/*
 * 'GameResult' is a finished two-player quiz. WinnerID is nil on a tie.
 */
type GameResult struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomCode     string    `gorm:"size:32;not null" json:"room_code"`
	Player1ID    int64     `gorm:"not null;index" json:"player1_id"`
	Player2ID    int64     `gorm:"not null;index" json:"player2_id"`
	Player1Score int       `gorm:"not null" json:"player1_score"`
	Player2Score int       `gorm:"not null" json:"player2_score"`
	WinnerID     *int64    `json:"winner_id"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
