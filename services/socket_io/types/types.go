package socketio_types

import (
	"Spotiquiz/services/quiz"
	"log"
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// Connection is the part of *socket.Socket the quiz needs.
type Connection interface {
	Id() socket.SocketId
	Emit(ev string, args ...any) error
}

// SocketServer is a struct that contains the socket.io server and a map of socket connections.
// Connections are keyed by socket id, which is also the quiz player handle.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track socket id -> socket connections
	Connections map[string]Connection
	mutex       sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		Connections: make(map[string]Connection),
	}
}

func (s *SocketServer) AddConnection(conn Connection) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Connections[string(conn.Id())] = conn
}

func (s *SocketServer) RemoveConnection(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.Connections, id)
}

func (s *SocketServer) GetConnection(id string) (Connection, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	conn, exists := s.Connections[id]
	return conn, exists
}

func (s *SocketServer) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.Connections)
}

// Emit sends a room event to each listed player that is still connected.
func (s *SocketServer) Emit(to []quiz.PlayerHandle, event string, payload any) {
	for _, p := range to {
		conn, ok := s.GetConnection(string(p))
		if !ok {
			continue
		}
		if err := conn.Emit(event, payload); err != nil {
			log.Printf("[EMIT-ERROR] %s to %s: %v", event, p, err)
		}
	}
}
