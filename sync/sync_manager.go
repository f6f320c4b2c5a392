package sync

import (
	models "Spotiquiz/models/postgres"
	"Spotiquiz/services/quiz"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// ResultPublisher forwards a finished game to other services.
type ResultPublisher interface {
	Publish(ctx context.Context, body []byte) error
}

// SyncManager moves finished games out of the in-memory room store into
// PostgreSQL, and onto the message queue when one is configured. It is the
// room store's quiz.ResultRecorder.
type SyncManager struct {
	db        *gorm.DB
	publisher ResultPublisher
	timeout   time.Duration
}

// NewSyncManager creates a new instance of the synchronization manager.
// publisher may be nil.
func NewSyncManager(db *gorm.DB, publisher ResultPublisher) *SyncManager {
	return &SyncManager{
		db:        db,
		publisher: publisher,
		timeout:   5 * time.Second,
	}
}

// GameResultMessage is the queue payload for a finished game.
type GameResultMessage struct {
	GameID     int64                `json:"game_id"`
	RoomCode   string               `json:"room_code"`
	Players    []quiz.PlayerSummary `json:"players"`
	WinnerID   *int64               `json:"winner_id"`
	FinishedAt time.Time            `json:"finished_at"`
}

// GameResultFromSummary builds the row for a two-player summary. The winner
// is the player with the higher score, nobody on a tie.
func GameResultFromSummary(summary quiz.GameSummary) (models.GameResult, error) {
	if len(summary.Players) != 2 {
		return models.GameResult{}, fmt.Errorf("game %s has %d players, want 2", summary.RoomCode, len(summary.Players))
	}
	p1, p2 := summary.Players[0], summary.Players[1]

	result := models.GameResult{
		RoomCode:     summary.RoomCode,
		Player1ID:    p1.DbID,
		Player2ID:    p2.DbID,
		Player1Score: p1.Score,
		Player2Score: p2.Score,
		CreatedAt:    summary.FinishedAt,
	}
	switch {
	case p1.Score > p2.Score:
		result.WinnerID = &p1.DbID
	case p2.Score > p1.Score:
		result.WinnerID = &p2.DbID
	}
	return result, nil
}

// SaveGameResult inserts the finished game and returns the stored row.
func (sm *SyncManager) SaveGameResult(summary quiz.GameSummary) (*models.GameResult, error) {
	result, err := GameResultFromSummary(summary)
	if err != nil {
		return nil, err
	}
	if err := sm.db.Create(&result).Error; err != nil {
		return nil, fmt.Errorf("error saving game result: %w", err)
	}
	return &result, nil
}

// RecordGame persists and publishes a finished game. Failures are logged,
// the room has already moved on.
func (sm *SyncManager) RecordGame(summary quiz.GameSummary) {
	result, err := sm.SaveGameResult(summary)
	if err != nil {
		log.Printf("[SYNC-ERROR] Room %s: %v", summary.RoomCode, err)
		return
	}
	log.Printf("[SYNC] Game %d saved for room %s", result.ID, summary.RoomCode)

	if sm.publisher == nil {
		return
	}
	body, err := json.Marshal(GameResultMessage{
		GameID:     result.ID,
		RoomCode:   result.RoomCode,
		Players:    summary.Players,
		WinnerID:   result.WinnerID,
		FinishedAt: summary.FinishedAt,
	})
	if err != nil {
		log.Printf("[SYNC-ERROR] Encoding game %d: %v", result.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
	defer cancel()
	if err := sm.publisher.Publish(ctx, body); err != nil {
		log.Printf("[SYNC-ERROR] Publishing game %d: %v", result.ID, err)
	}
}
