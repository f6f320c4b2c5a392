package redis

// RoomPlayer is one seat of a cached room.
type RoomPlayer struct {
	SocketID string `json:"socket_id"`
	Name     string `json:"name,omitempty"`
	DbID     int64  `json:"db_id,omitempty"`
	Score    int    `json:"score"`
	Answered bool   `json:"answered"`
}

// QuizRoom is the last known state of a live quiz room, written on every
// transition so the REST side can show a lobby without joining it.
// Questions are never cached since they carry the answers.
type QuizRoom struct {
	Code                 string       `json:"code"`
	Host                 string       `json:"host"`
	Phase                string       `json:"phase"`
	Players              []RoomPlayer `json:"players"`
	QuestionCount        int          `json:"question_count"`
	CurrentQuestionIndex int          `json:"current_question_index"`
	RoundDeadline        int64        `json:"round_deadline,omitempty"` // epoch ms
	UpdatedAt            int64        `json:"updated_at"`               // epoch ms
}
