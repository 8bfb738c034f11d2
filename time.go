package studyroom

import (
	"time"
)

// Time tracks the animation clock. Elapsed is always measured from Start,
// so a stalled frame never desynchronizes anything derived from it.
type Time struct {
	Start time.Time
	Now   time.Time
	Dt    time.Duration
}

func NewTime(start time.Time) *Time {
	return &Time{Start: start, Now: start}
}

func (t *Time) Tick(now time.Time) {
	t.Dt = now.Sub(t.Now)
	t.Now = now
}

// Elapsed returns seconds since Start.
func (t *Time) Elapsed() float64 {
	return t.Now.Sub(t.Start).Seconds()
}
