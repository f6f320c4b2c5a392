package handlers

import (
	"Spotiquiz/services/quiz"
	socketio_types "Spotiquiz/services/socket_io/types"
	socketio_utils "Spotiquiz/services/socket_io/utils"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
)

// HandleSetPlayerName stores the caller's display name. Fire and forget.
func HandleSetPlayerName(store *quiz.RoomStore, client socketio_types.Connection) func(args ...interface{}) {
	return func(args ...interface{}) {
		_, rest := socketio_utils.AckFrom(args)
		id := string(client.Id())

		code, ok := socketio_utils.StringArg(rest, 0)
		if !ok {
			log.Printf("[NAME-ERROR] %s sent no room code", id)
			return
		}
		name, ok := socketio_utils.RawStringArg(rest, 1)
		if !ok {
			log.Printf("[NAME-ERROR] %s sent a non-string name for room %s", id, code)
			return
		}

		if err := store.SetPlayerName(code, quiz.PlayerHandle(id), name); err != nil {
			log.Printf("[NAME-ERROR] %s in room %s: %v", id, code, err)
		}
	}
}

// HandleSetPlayerDbID links the caller to a persisted user. Fire and forget.
func HandleSetPlayerDbID(store *quiz.RoomStore, client socketio_types.Connection) func(args ...interface{}) {
	return func(args ...interface{}) {
		_, rest := socketio_utils.AckFrom(args)
		id := string(client.Id())

		code, ok := socketio_utils.StringArg(rest, 0)
		if !ok {
			log.Printf("[DBID-ERROR] %s sent no room code", id)
			return
		}
		dbID, ok := socketio_utils.Int64Arg(rest, 1)
		if !ok {
			log.Printf("[DBID-ERROR] %s sent an invalid db id for room %s: %v", id, code, rest)
			return
		}

		if err := store.SetPlayerDbID(code, quiz.PlayerHandle(id), dbID); err != nil {
			log.Printf("[DBID-ERROR] %s in room %s: %v", id, code, err)
		}
	}
}

// HandleHostQuestions starts the game with the host's question set. Only a
// malformed set is reported back, and only to the host.
func HandleHostQuestions(store *quiz.RoomStore, client socketio_types.Connection) func(args ...interface{}) {
	return func(args ...interface{}) {
		_, rest := socketio_utils.AckFrom(args)
		id := string(client.Id())
		log.Printf("[QUESTIONS] HandleHostQuestions started - Socket: %s", id)

		code, ok := socketio_utils.StringArg(rest, 0)
		if !ok {
			log.Printf("[QUESTIONS-ERROR] %s sent no room code", id)
			return
		}

		var raw any
		if len(rest) > 1 {
			raw = rest[1]
		}
		questions, err := socketio_utils.DecodeQuestions(raw)
		if err != nil {
			// An empty set still goes through the host and phase checks.
			log.Printf("[QUESTIONS-ERROR] %s sent unreadable questions for room %s: %v", id, code, err)
			questions = nil
		}

		err = store.SubmitQuestions(code, quiz.PlayerHandle(id), questions)
		if err == nil {
			return
		}
		log.Printf("[QUESTIONS-ERROR] %s in room %s: %v", id, code, err)
		if errors.Is(err, quiz.ErrInvalidQuestions) {
			client.Emit("error", gin.H{"error": "Invalid question set"})
		}
	}
}

// HandleSubmitAnswer grades the caller's answer. Stale, duplicate and
// foreign answers are dropped silently.
func HandleSubmitAnswer(store *quiz.RoomStore, client socketio_types.Connection) func(args ...interface{}) {
	return func(args ...interface{}) {
		_, rest := socketio_utils.AckFrom(args)
		id := string(client.Id())

		code, ok := socketio_utils.StringArg(rest, 0)
		if !ok || len(rest) < 2 {
			log.Printf("[ANSWER-ERROR] %s sent an incomplete answer: %v", id, rest)
			return
		}
		answer, err := socketio_utils.DecodeAnswer(rest[1])
		if err != nil {
			log.Printf("[ANSWER-ERROR] %s in room %s: %v", id, code, err)
			return
		}

		if err := store.SubmitAnswer(code, quiz.PlayerHandle(id), answer); err != nil {
			log.Printf("[ANSWER-DROPPED] %s in room %s: %v", id, code, err)
		}
	}
}
