package quiz

import (
	"slices"
	"sync"
	"time"
)

// PlayerHandle identifies a connection inside a room. It is the transport's
// connection id, not the persistent user id.
type PlayerHandle string

type Phase string

const (
	PhaseLobby             Phase = "lobby"
	PhaseAwaitingQuestions Phase = "awaiting_questions"
	PhaseRoundActive       Phase = "round_active"
	PhaseRoundGrading      Phase = "round_grading"
	PhaseGameOver          Phase = "game_over"
)

// Question is authored by the host client from the players' Spotify data.
type Question struct {
	ID       int      `json:"id"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

// Room is the state of one two-player quiz. All fields are guarded by mu.
type Room struct {
	Code string

	mu                   sync.Mutex
	players              []PlayerHandle
	host                 PlayerHandle
	questions            []Question
	currentQuestionIndex int
	scores               map[PlayerHandle]int
	answeredThisRound    map[PlayerHandle]struct{}
	roundDeadline        time.Time
	timer                Timer
	phase                Phase
	playerNames          map[PlayerHandle]string
	playerDbIDs          map[PlayerHandle]int64
	deleted              bool
}

func newRoom(code string, host PlayerHandle) *Room {
	return &Room{
		Code:                 code,
		players:              []PlayerHandle{host},
		host:                 host,
		currentQuestionIndex: -1,
		scores:               map[PlayerHandle]int{host: 0},
		answeredThisRound:    make(map[PlayerHandle]struct{}),
		phase:                PhaseLobby,
		playerNames:          make(map[PlayerHandle]string),
		playerDbIDs:          make(map[PlayerHandle]int64),
	}
}

func (r *Room) isMember(p PlayerHandle) bool {
	return slices.Contains(r.players, p)
}

func (r *Room) allAnswered() bool {
	if len(r.players) == 0 {
		return false
	}
	for _, p := range r.players {
		if _, ok := r.answeredThisRound[p]; !ok {
			return false
		}
	}
	return true
}

func (r *Room) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Room) scoresCopy() map[PlayerHandle]int {
	out := make(map[PlayerHandle]int, len(r.scores))
	for p, s := range r.scores {
		out[p] = s
	}
	return out
}

// RoomSnapshot is a read-only copy of a room's state.
type RoomSnapshot struct {
	Code                 string
	Players              []PlayerHandle
	Host                 PlayerHandle
	Phase                Phase
	Questions            []Question
	CurrentQuestionIndex int
	Scores               map[PlayerHandle]int
	Answered             []PlayerHandle
	RoundDeadline        time.Time
	PlayerNames          map[PlayerHandle]string
	PlayerDbIDs          map[PlayerHandle]int64
}

func (r *Room) snapshot() RoomSnapshot {
	answered := make([]PlayerHandle, 0, len(r.answeredThisRound))
	for _, p := range r.players {
		if _, ok := r.answeredThisRound[p]; ok {
			answered = append(answered, p)
		}
	}
	names := make(map[PlayerHandle]string, len(r.playerNames))
	for p, n := range r.playerNames {
		names[p] = n
	}
	ids := make(map[PlayerHandle]int64, len(r.playerDbIDs))
	for p, id := range r.playerDbIDs {
		ids[p] = id
	}
	return RoomSnapshot{
		Code:                 r.Code,
		Players:              slices.Clone(r.players),
		Host:                 r.host,
		Phase:                r.phase,
		Questions:            slices.Clone(r.questions),
		CurrentQuestionIndex: r.currentQuestionIndex,
		Scores:               r.scoresCopy(),
		Answered:             answered,
		RoundDeadline:        r.roundDeadline,
		PlayerNames:          names,
		PlayerDbIDs:          ids,
	}
}
