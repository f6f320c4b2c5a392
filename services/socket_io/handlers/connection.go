package handlers

import (
	redis_models "Spotiquiz/models/redis"
	"Spotiquiz/services/quiz"
	socketio_types "Spotiquiz/services/socket_io/types"
	"log"
	"time"
)

// Presence is where the socket layer records who is connected.
type Presence interface {
	SetPresence(presence *redis_models.PlayerPresence) error
	DeletePresence(socketID string) error
}

// MarkPresence records the connection's status. presence may be nil.
func MarkPresence(presence Presence, socketID string, status redis_models.PlayerStatus, roomCode string) {
	if presence == nil {
		return
	}
	err := presence.SetPresence(&redis_models.PlayerPresence{
		SocketID: socketID,
		Status:   status,
		RoomCode: roomCode,
		LastPing: time.Now().Unix(),
	})
	if err != nil {
		log.Printf("[PRESENCE-ERROR] Could not record %s as %s: %v", socketID, status, err)
	}
}

// HandleDisconnect removes the connection from every room it was in and
// forgets it. It is safe to run more than once.
func HandleDisconnect(store *quiz.RoomStore, client socketio_types.Connection,
	sio *socketio_types.SocketServer, presence Presence) func(args ...interface{}) {
	return func(args ...interface{}) {
		id := string(client.Id())
		log.Printf("[DISCONNECT] %s disconnected, reason: %v", id, args)

		rooms := store.RemoveConnection(quiz.PlayerHandle(id))
		if len(rooms) > 0 {
			log.Printf("[DISCONNECT] %s left rooms %v", id, rooms)
		}

		sio.RemoveConnection(id)

		if presence != nil {
			if err := presence.DeletePresence(id); err != nil {
				log.Printf("[DISCONNECT-ERROR] Could not clear presence for %s: %v", id, err)
			}
		}
	}
}
