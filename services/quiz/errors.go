package quiz

import "errors"

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrNotInRoom           = errors.New("connection is not a member of the room")
	ErrUnauthorizedHost    = errors.New("only the host can submit questions")
	ErrQuestionsAlreadySet = errors.New("questions can only be set while awaiting questions")
	ErrInvalidQuestions    = errors.New("invalid question set")
	ErrStaleAnswer         = errors.New("answer does not target the current round")
	ErrDuplicateAnswer     = errors.New("player already answered this round")
	ErrCodeExhausted       = errors.New("could not allocate a unique room code")
)
