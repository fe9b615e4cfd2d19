package track

import "time"

// throttle spaces repeated actions at least interval apart. It is owned by
// the session goroutine.
type throttle struct {
	interval time.Duration
	next     time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// allow reports whether the action may run at now and, if so, books the
// next slot.
func (t *throttle) allow(now time.Time) bool {
	if t == nil || t.interval <= 0 {
		return true
	}
	if now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}
