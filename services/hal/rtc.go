package hal

import (
	"sync"
	"time"

	"templogger-go/types"
)

const secondsPerDay = 24 * 60 * 60

// SoftRTC keeps time of day from a settable base plus the elapsed host
// monotonic time.
type SoftRTC struct {
	mu   sync.Mutex
	base int // seconds since midnight at ref
	ref  time.Time
	now  func() time.Time
}

func NewSoftRTC() *SoftRTC {
	return &SoftRTC{ref: time.Now(), now: time.Now}
}

func (r *SoftRTC) SetTime(c types.Clock) {
	r.mu.Lock()
	r.base = ((c.Hour*60+c.Min)*60 + c.Sec) % secondsPerDay
	if r.base < 0 {
		r.base += secondsPerDay
	}
	r.ref = r.now()
	r.mu.Unlock()
}

func (r *SoftRTC) Time() types.Clock {
	r.mu.Lock()
	s := (r.base + int(r.now().Sub(r.ref)/time.Second)) % secondsPerDay
	r.mu.Unlock()
	return types.Clock{Hour: s / 3600, Min: s / 60 % 60, Sec: s % 60}
}

// ParseClock parses "HH:MM:SS".
func ParseClock(s string) (types.Clock, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return types.Clock{}, err
	}
	return types.Clock{Hour: t.Hour(), Min: t.Minute(), Sec: t.Second()}, nil
}
