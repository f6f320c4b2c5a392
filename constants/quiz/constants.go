package quiz_constants

import "time"

const MaxPlayersPerRoom = 2
const MaxQuestions = 10 // NOTE: hard cap, config can only lower it
const RoundDuration = 15 * time.Second
const MaxPlayerNameLength = 80
const RoomCodeLength = 6
const RoomCodeAttempts = 5 // collision retries before giving up

// Scoring constants
const (
	MaxAnswerScore   = 1000
	MinAnswerScore   = 100
	ScoreDecayWindow = 10000 // ms, e-folding time of the score curve
)

// Socket events emitted to the room
const (
	EventStartGame      = "startGame"
	EventSendQuestions  = "sendQuestions"
	EventQuestionStart  = "questionStart"
	EventPlayerAnswered = "playerAnswered"
	EventQuestionEnd    = "questionEnd"
	EventGameOver       = "gameOver"
)

// Socket events sent by clients
const (
	EventCreateRoom    = "createRoom"
	EventJoinRoom      = "joinRoom"
	EventSetPlayerName = "setPlayerName"
	EventSetPlayerDbID = "setPlayerDbId"
	EventHostQuestions = "hostQuestions"
	EventSubmitAnswer  = "submitAnswer"
)
