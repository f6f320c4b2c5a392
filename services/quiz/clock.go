package quiz

import "time"

// Timer is the part of *time.Timer the rooms rely on.
type Timer interface {
	Stop() bool
}

// Clock lets tests control time and fire round deadlines by hand.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock backed by time.AfterFunc.
var SystemClock Clock = systemClock{}
