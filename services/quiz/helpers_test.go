package quiz

import (
	"sync"
	"time"
)

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// fakeClock only moves when the test calls Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs the timers that came due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// Active counts timers that are armed and not yet fired.
func (c *fakeClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// fireAll runs every armed timer regardless of its deadline, the way a
// callback that was already queued would still run after a Stop.
func (c *fakeClock) fireAll() {
	c.mu.Lock()
	var all []*fakeTimer
	for _, t := range c.timers {
		if !t.fired {
			t.fired = true
			all = append(all, t)
		}
	}
	c.mu.Unlock()
	for _, t := range all {
		t.f()
	}
}

type sentEvent struct {
	To      []PlayerHandle
	Event   string
	Payload any
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []sentEvent
}

func (e *recordingEmitter) Emit(to []PlayerHandle, event string, payload any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, sentEvent{To: to, Event: event, Payload: payload})
}

func (e *recordingEmitter) named(event string) []sentEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []sentEvent
	for _, ev := range e.events {
		if ev.Event == event {
			out = append(out, ev)
		}
	}
	return out
}

func (e *recordingEmitter) sequence() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.Event
	}
	return out
}

type summaryRecorder struct {
	games chan GameSummary
}

func newSummaryRecorder() *summaryRecorder {
	return &summaryRecorder{games: make(chan GameSummary, 4)}
}

func (r *summaryRecorder) RecordGame(summary GameSummary) {
	r.games <- summary
}

const (
	host  PlayerHandle = "socket-host"
	guest PlayerHandle = "socket-guest"
)

// newTestStore returns a store with fixed room codes and a fake clock.
func newTestStore(opts ...Option) (*RoomStore, *recordingEmitter, *fakeClock) {
	emitter := &recordingEmitter{}
	clock := newFakeClock()
	codes := 0
	base := []Option{
		WithEmitter(emitter),
		WithClock(clock),
		WithCodeGenerator(func(int) string {
			codes++
			return "room" + string(rune('0'+codes))
		}),
	}
	return NewRoomStore(append(base, opts...)...), emitter, clock
}

func sampleQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ID:      i,
			Text:    "Who is your top artist?",
			Options: []string{"Radiohead", "Björk", "Portishead", "Massive Attack"},
			Answer:  i % 4,
		}
	}
	return qs
}

// startedRoom returns a room with both players in and n questions submitted.
func startedRoom(s *RoomStore, n int) string {
	code, err := s.CreateRoom(host)
	if err != nil {
		panic(err)
	}
	if err := s.JoinRoom(code, guest); err != nil {
		panic(err)
	}
	if err := s.SubmitQuestions(code, host, sampleQuestions(n)); err != nil {
		panic(err)
	}
	return code
}
