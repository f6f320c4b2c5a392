package handlers

import (
	redis_models "Spotiquiz/models/redis"
	"Spotiquiz/services/quiz"
	socketio_types "Spotiquiz/services/socket_io/types"
	socketio_utils "Spotiquiz/services/socket_io/utils"
	"log"

	"github.com/gin-gonic/gin"
)

const joinFailedMessage = "Room full or does not exist"

// HandleCreateRoom opens a room hosted by the caller and acks its code.
func HandleCreateRoom(store *quiz.RoomStore, client socketio_types.Connection,
	presence Presence) func(args ...interface{}) {
	return func(args ...interface{}) {
		ack, _ := socketio_utils.AckFrom(args)
		id := string(client.Id())
		log.Printf("[CREATE] HandleCreateRoom started - Socket: %s", id)

		code, err := store.CreateRoom(quiz.PlayerHandle(id))
		if err != nil {
			log.Printf("[CREATE-ERROR] %s could not create a room: %v", id, err)
			client.Emit("error", gin.H{"error": "Could not create room"})
			if ack != nil {
				ack(gin.H{"error": "Could not create room"})
			}
			return
		}

		MarkPresence(presence, id, redis_models.StatusPlaying, code)

		if ack == nil {
			log.Printf("[CREATE-WARN] %s created room %s without an ack callback", id, code)
			return
		}
		ack(gin.H{"roomCode": code})
	}
}

// HandleJoinRoom puts the caller in an existing room. The ack goes out
// before startGame when the caller is the second player.
func HandleJoinRoom(store *quiz.RoomStore, client socketio_types.Connection,
	presence Presence) func(args ...interface{}) {
	return func(args ...interface{}) {
		ack, rest := socketio_utils.AckFrom(args)
		id := string(client.Id())
		log.Printf("[JOIN] HandleJoinRoom started - Socket: %s, Args: %v", id, rest)

		reply := func(payload gin.H) {
			if ack != nil {
				ack(payload)
			}
		}

		code, ok := socketio_utils.StringArg(rest, 0)
		if !ok || code == "" {
			log.Printf("[JOIN-ERROR] %s sent no room code", id)
			reply(gin.H{"success": false, "message": joinFailedMessage})
			return
		}

		err := store.JoinRoomThen(code, quiz.PlayerHandle(id), func() {
			reply(gin.H{"success": true})
		})
		if err != nil {
			log.Printf("[JOIN-ERROR] %s could not join %s: %v", id, code, err)
			reply(gin.H{"success": false, "message": joinFailedMessage})
			return
		}

		MarkPresence(presence, id, redis_models.StatusPlaying, code)
	}
}
