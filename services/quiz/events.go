package quiz

import quiz_constants "Spotiquiz/constants/quiz"

// Emitter delivers a room event to the given connections. Implementations
// must not call back into the RoomStore.
type Emitter interface {
	Emit(to []PlayerHandle, event string, payload any)
}

type StartGamePayload struct {
	RoomCode string `json:"roomCode"`
}

type QuestionStartPayload struct {
	Index    int   `json:"index"`
	Deadline int64 `json:"deadline"` // epoch ms
}

type PlayerAnsweredPayload struct {
	PlayerID  PlayerHandle `json:"playerId"`
	IsCorrect bool         `json:"isCorrect"`
}

type QuestionEndPayload struct {
	Index        int                  `json:"index"`
	CorrectIndex int                  `json:"correctIndex"`
	Scores       map[PlayerHandle]int `json:"scores"`
}

type GameOverPayload struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// broadcast sends to every current member of the room. Caller holds r.mu.
func (s *RoomStore) broadcast(r *Room, event string, payload any) {
	if s.emitter == nil || len(r.players) == 0 {
		return
	}
	to := make([]PlayerHandle, len(r.players))
	copy(to, r.players)
	s.emitter.Emit(to, event, payload)
}

func (s *RoomStore) emitStartGame(r *Room) {
	s.broadcast(r, quiz_constants.EventStartGame, StartGamePayload{RoomCode: r.Code})
}
