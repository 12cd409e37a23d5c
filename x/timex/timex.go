package timex

import "time"

// ResetTimer safely stops, drains, and resets a timer.
func ResetTimer(t *time.Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if !t.Stop() {
		DrainTimer(t)
	}
	t.Reset(d)
}

// DrainTimer discards a pending fire, if any.
func DrainTimer(t *time.Timer) {
	select {
	case <-t.C:
	default:
	}
}
