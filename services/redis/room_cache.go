package redis

import (
	redis_models "Spotiquiz/models/redis"
	"Spotiquiz/services/quiz"
	"log"
	"sync"
	"time"
)

// RoomCache is the part of RedisClient the snapshot writer needs.
type RoomCache interface {
	SaveQuizRoom(room *redis_models.QuizRoom) error
	DeleteQuizRoom(roomCode string) error
}

// ToQuizRoom flattens a room snapshot into its cached form.
func ToQuizRoom(s quiz.RoomSnapshot, now time.Time) redis_models.QuizRoom {
	answered := make(map[quiz.PlayerHandle]bool, len(s.Answered))
	for _, p := range s.Answered {
		answered[p] = true
	}

	room := redis_models.QuizRoom{
		Code:                 s.Code,
		Host:                 string(s.Host),
		Phase:                string(s.Phase),
		Players:              make([]redis_models.RoomPlayer, 0, len(s.Players)),
		QuestionCount:        len(s.Questions),
		CurrentQuestionIndex: s.CurrentQuestionIndex,
		UpdatedAt:            now.UnixMilli(),
	}
	if !s.RoundDeadline.IsZero() {
		room.RoundDeadline = s.RoundDeadline.UnixMilli()
	}
	for _, p := range s.Players {
		room.Players = append(room.Players, redis_models.RoomPlayer{
			SocketID: string(p),
			Name:     s.PlayerNames[p],
			DbID:     s.PlayerDbIDs[p],
			Score:    s.Scores[p],
			Answered: answered[p],
		})
	}
	return room
}

// RoomSnapshotWriter mirrors room transitions into Redis. It is a
// quiz.RoomObserver: callbacks only enqueue, one goroutine does the writes in
// order.
type RoomSnapshotWriter struct {
	cache RoomCache
	now   func() time.Time

	mu     sync.Mutex
	closed bool
	queue  chan func()
	done   chan struct{}
}

func NewRoomSnapshotWriter(cache RoomCache, buffer int) *RoomSnapshotWriter {
	if buffer <= 0 {
		buffer = 256
	}
	w := &RoomSnapshotWriter{
		cache: cache,
		now:   time.Now,
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *RoomSnapshotWriter) run() {
	defer close(w.done)
	for job := range w.queue {
		job()
	}
}

// enqueue hands job to the writer. Updates are dropped when the queue is
// full, the next update supersedes them. Deletes wait for room instead, or a
// dead room would stay cached until its TTL.
func (w *RoomSnapshotWriter) enqueue(code string, job func(), wait bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if wait {
		w.queue <- job
		return
	}
	select {
	case w.queue <- job:
	default:
		log.Printf("[ROOM-CACHE-ERROR] Queue full, dropping update for room %s", code)
	}
}

func (w *RoomSnapshotWriter) RoomUpdated(snapshot quiz.RoomSnapshot) {
	room := ToQuizRoom(snapshot, w.now())
	w.enqueue(room.Code, func() {
		if err := w.cache.SaveQuizRoom(&room); err != nil {
			log.Printf("[ROOM-CACHE-ERROR] Saving room %s: %v", room.Code, err)
		}
	}, false)
}

func (w *RoomSnapshotWriter) RoomDeleted(code string) {
	w.enqueue(code, func() {
		if err := w.cache.DeleteQuizRoom(code); err != nil {
			log.Printf("[ROOM-CACHE-ERROR] Deleting room %s: %v", code, err)
		}
	}, true)
}

// Close stops accepting updates and waits for the queued ones to be written.
func (w *RoomSnapshotWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()
	<-w.done
}
