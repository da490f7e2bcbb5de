package ingest

import "time"

// Clock is the pacing seam: batch runners sleep through it so tests can
// verify the spacing invariant without real waits.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

func SystemClock() Clock {
	return systemClock{}
}
