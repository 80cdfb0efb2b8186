package game

import "time"

// Limiter gates simulation ticks to a fixed rate when Update runs at display
// refresh. The remainder of each interval carries over so the rate does not drift.
type Limiter struct {
	interval time.Duration
	last     time.Duration
}

// NewLimiter creates a limiter firing tps times per second.
func NewLimiter(tps int) *Limiter {
	if tps < 1 {
		tps = 60
	}
	return &Limiter{interval: time.Second / time.Duration(tps)}
}

// Interval returns the tick interval.
func (l *Limiter) Interval() time.Duration { return l.interval }

// Ready reports whether a tick is due at now, measured from the loop start.
func (l *Limiter) Ready(now time.Duration) bool {
	elapsed := now - l.last
	if elapsed <= l.interval {
		return false
	}
	l.last = now - elapsed%l.interval
	return true
}
