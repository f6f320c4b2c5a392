package quiz

import (
	quiz_constants "Spotiquiz/constants/quiz"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RoomObserver is told about room state changes. It is called with the room
// lock held, so implementations must hand the work off instead of doing I/O.
type RoomObserver interface {
	RoomUpdated(snapshot RoomSnapshot)
	RoomDeleted(code string)
}

// ResultRecorder persists finished two-player games. RecordGame runs on its
// own goroutine and never blocks the room.
type ResultRecorder interface {
	RecordGame(summary GameSummary)
}

// RoomStore owns every live room of the process, keyed by room code.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	emitter       Emitter
	clock         Clock
	roundDuration time.Duration
	maxQuestions  int
	maxNameLength int
	codeLength    int
	newCode       func(length int) string
	recorder      ResultRecorder
	observer      RoomObserver
}

type Option func(*RoomStore)

func WithEmitter(e Emitter) Option { return func(s *RoomStore) { s.emitter = e } }

func WithClock(c Clock) Option { return func(s *RoomStore) { s.clock = c } }

func WithRoundDuration(d time.Duration) Option {
	return func(s *RoomStore) {
		if d > 0 {
			s.roundDuration = d
		}
	}
}

// WithMaxQuestions lowers the per-game question limit. Values above the hard
// cap are ignored.
func WithMaxQuestions(n int) Option {
	return func(s *RoomStore) {
		if n > 0 && n <= quiz_constants.MaxQuestions {
			s.maxQuestions = n
		}
	}
}

func WithMaxNameLength(n int) Option {
	return func(s *RoomStore) {
		if n > 0 {
			s.maxNameLength = n
		}
	}
}

func WithCodeLength(n int) Option {
	return func(s *RoomStore) {
		if n > 0 && n <= 32 {
			s.codeLength = n
		}
	}
}

func WithCodeGenerator(gen func(length int) string) Option {
	return func(s *RoomStore) { s.newCode = gen }
}

func WithResultRecorder(r ResultRecorder) Option {
	return func(s *RoomStore) { s.recorder = r }
}

func WithRoomObserver(o RoomObserver) Option {
	return func(s *RoomStore) { s.observer = o }
}

// NewRoomStore creates an empty store. Without options it uses the wall
// clock, a 15s round and no emitter.
func NewRoomStore(opts ...Option) *RoomStore {
	s := &RoomStore{
		rooms:         make(map[string]*Room),
		clock:         SystemClock,
		roundDuration: quiz_constants.RoundDuration,
		maxQuestions:  quiz_constants.MaxQuestions,
		maxNameLength: quiz_constants.MaxPlayerNameLength,
		codeLength:    quiz_constants.RoomCodeLength,
		newCode:       uuidRoomCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// uuidRoomCode takes the first length hex digits of a random v4 uuid.
func uuidRoomCode(length int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:length]
}

// CreateRoom allocates a fresh code and makes host the only player.
func (s *RoomStore) CreateRoom(host PlayerHandle) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < quiz_constants.RoomCodeAttempts; attempt++ {
		code := s.newCode(s.codeLength)
		if _, taken := s.rooms[code]; taken {
			log.Printf("[ROOM-CREATE-INFO] Code collision on %s, retrying", code)
			continue
		}
		r := newRoom(code, host)
		s.rooms[code] = r

		r.mu.Lock()
		s.notifyUpdated(r)
		r.mu.Unlock()

		log.Printf("[ROOM-CREATE] Room %s created by %s", code, host)
		return code, nil
	}
	return "", ErrCodeExhausted
}

// lookup returns a live room. The returned room may still be deleted before
// the caller locks it, so callers re-check r.deleted under r.mu.
func (s *RoomStore) lookup(code string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[code]
	return r, ok
}

// JoinRoom adds p to the room. When the room reaches two players both are
// told the game is starting.
func (s *RoomStore) JoinRoom(code string, p PlayerHandle) error {
	return s.JoinRoomThen(code, p, nil)
}

// JoinRoomThen is JoinRoom with a callback run once p is in the room, before
// startGame goes out. The socket layer acknowledges the join there so the
// joiner sees its ack first. onJoined runs under the room lock.
func (s *RoomStore) JoinRoomThen(code string, p PlayerHandle, onJoined func()) error {
	r, ok := s.lookup(code)
	if !ok {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleted {
		return ErrRoomNotFound
	}
	if r.isMember(p) {
		if onJoined != nil {
			onJoined()
		}
		return nil
	}
	if len(r.players) >= quiz_constants.MaxPlayersPerRoom {
		return ErrRoomFull
	}

	r.players = append(r.players, p)
	r.scores[p] = 0
	log.Printf("[ROOM-JOIN] %s joined room %s (%d/%d)", p, code, len(r.players), quiz_constants.MaxPlayersPerRoom)
	if onJoined != nil {
		onJoined()
	}

	if len(r.players) == quiz_constants.MaxPlayersPerRoom {
		if r.phase == PhaseLobby {
			r.phase = PhaseAwaitingQuestions
		}
		s.emitStartGame(r)
	}
	s.notifyUpdated(r)
	return nil
}

// SetPlayerName records a display name for a member, truncated to the
// configured length. Unknown rooms and non-members are ignored.
func (s *RoomStore) SetPlayerName(code string, p PlayerHandle, name string) error {
	r, ok := s.lookup(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleted {
		return ErrRoomNotFound
	}
	if !r.isMember(p) {
		return ErrNotInRoom
	}
	r.playerNames[p] = truncateRunes(name, s.maxNameLength)
	s.notifyUpdated(r)
	return nil
}

// SetPlayerDbID records the client-asserted persistent user id of a member.
// It is not verified here.
func (s *RoomStore) SetPlayerDbID(code string, p PlayerHandle, dbID int64) error {
	r, ok := s.lookup(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleted {
		return ErrRoomNotFound
	}
	if !r.isMember(p) {
		return ErrNotInRoom
	}
	r.playerDbIDs[p] = dbID
	return nil
}

// RemoveConnection drops p from every room it is in. Rooms left empty are
// deleted and their deadline timer cancelled. Returns the codes of the rooms
// p was removed from; calling it again for the same p is a no-op.
func (s *RoomStore) RemoveConnection(p PlayerHandle) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var left []string
	for code, r := range s.rooms {
		r.mu.Lock()
		idx := -1
		for i, member := range r.players {
			if member == p {
				idx = i
				break
			}
		}
		if idx == -1 {
			r.mu.Unlock()
			continue
		}

		r.players = append(r.players[:idx], r.players[idx+1:]...)
		delete(r.scores, p)
		delete(r.answeredThisRound, p)
		left = append(left, code)
		log.Printf("[DISCONNECT] %s removed from room %s", p, code)

		if len(r.players) == 0 {
			r.stopTimer()
			r.deleted = true
			delete(s.rooms, code)
			if s.observer != nil {
				s.observer.RoomDeleted(code)
			}
			log.Printf("[DISCONNECT] Room %s deleted", code)
			r.mu.Unlock()
			continue
		}

		// Everyone still here already answered: no point waiting for the deadline.
		if r.phase == PhaseRoundActive && r.allAnswered() {
			r.stopTimer()
			s.closeRound(r, r.currentQuestionIndex, CloseAllAnswered)
		}
		s.notifyUpdated(r)
		r.mu.Unlock()
	}
	return left
}

// Snapshot returns a copy of the room's state.
func (s *RoomStore) Snapshot(code string) (RoomSnapshot, bool) {
	r, ok := s.lookup(code)
	if !ok {
		return RoomSnapshot{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return RoomSnapshot{}, false
	}
	return r.snapshot(), true
}

// Len is the number of live rooms.
func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Shutdown cancels every pending deadline and forgets all rooms.
func (s *RoomStore) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, r := range s.rooms {
		r.mu.Lock()
		r.stopTimer()
		r.deleted = true
		r.mu.Unlock()
		delete(s.rooms, code)
	}
	log.Printf("[ROOM-STORE] Shut down")
}

func (s *RoomStore) notifyUpdated(r *Room) {
	if s.observer != nil {
		s.observer.RoomUpdated(r.snapshot())
	}
}

func truncateRunes(str string, limit int) string {
	runes := []rune(str)
	if len(runes) <= limit {
		return str
	}
	return string(runes[:limit])
}
