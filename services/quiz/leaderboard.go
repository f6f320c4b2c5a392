package quiz

import (
	quiz_constants "Spotiquiz/constants/quiz"
	"log"
	"sort"
	"time"
)

type LeaderboardEntry struct {
	PlayerID PlayerHandle `json:"playerId"`
	Name     string       `json:"name"`
	Score    int          `json:"score"`
}

// GameSummary is handed to the ResultRecorder once a two-player game ends.
type GameSummary struct {
	RoomCode   string          `json:"room_code"`
	FinishedAt time.Time       `json:"finished_at"`
	Players    []PlayerSummary `json:"players"`
}

type PlayerSummary struct {
	DbID  int64  `json:"db_id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// BuildLeaderboard ranks players by score, highest first. Ties keep join order.
func BuildLeaderboard(players []PlayerHandle, scores map[PlayerHandle]int, names map[PlayerHandle]string) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(players))
	for _, p := range players {
		name := names[p]
		if name == "" {
			name = string(p)
		}
		entries = append(entries, LeaderboardEntry{PlayerID: p, Name: name, Score: scores[p]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

// finishGame is the terminal transition. Caller holds r.mu.
func (s *RoomStore) finishGame(r *Room) {
	r.stopTimer()
	r.phase = PhaseGameOver
	r.roundDeadline = time.Time{}

	leaderboard := BuildLeaderboard(r.players, r.scores, r.playerNames)
	log.Printf("[GAME-END] Room %s finished after %d questions", r.Code, len(r.questions))
	s.broadcast(r, quiz_constants.EventGameOver, GameOverPayload{Leaderboard: leaderboard})
	s.notifyUpdated(r)

	if summary, ok := s.summarize(r); ok {
		log.Printf("[GAME-END] Game completed for room %s - Player 1: %d, Player 2: %d",
			r.Code, summary.Players[0].Score, summary.Players[1].Score)
		go s.recorder.RecordGame(summary)
	}
}

// summarize builds the result of a finished game, if it is worth keeping:
// exactly two players who both told us their persistent ids.
func (s *RoomStore) summarize(r *Room) (GameSummary, bool) {
	if s.recorder == nil || len(r.players) != quiz_constants.MaxPlayersPerRoom {
		return GameSummary{}, false
	}
	summary := GameSummary{RoomCode: r.Code, FinishedAt: s.clock.Now()}
	for _, p := range r.players {
		dbID := r.playerDbIDs[p]
		if dbID == 0 {
			return GameSummary{}, false
		}
		summary.Players = append(summary.Players, PlayerSummary{
			DbID:  dbID,
			Name:  r.playerNames[p],
			Score: r.scores[p],
		})
	}
	return summary, true
}
