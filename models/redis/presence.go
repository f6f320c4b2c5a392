package redis

type PlayerStatus string

const (
	StatusOnline  PlayerStatus = "online"
	StatusPlaying PlayerStatus = "playing"
)

// PlayerPresence is stored per socket while the socket is connected.
type PlayerPresence struct {
	SocketID string       `json:"socket_id"`
	Status   PlayerStatus `json:"status"`
	RoomCode string       `json:"room_code,omitempty"`
	LastPing int64        `json:"last_ping"` // Unix timestamp
}
