package dispatch

import "time"

// Clock provides current time and single-shot timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable single-shot timer.
type Timer interface {
	// Stop reports false if the timer already fired or was stopped.
	Stop() bool
}

// RealClock is the default clock.
type RealClock struct{}

// Now returns current time.
func (RealClock) Now() time.Time { return time.Now() }

// AfterFunc schedules fn on its own goroutine after d.
func (RealClock) AfterFunc(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTimer struct{ t *time.Timer }

func (r realTimer) Stop() bool { return r.t.Stop() }
