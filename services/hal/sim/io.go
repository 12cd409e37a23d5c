package sim

import (
	"sync"
	"sync/atomic"

	"templogger-go/types"
)

// Switch is a push button held in software.
type Switch struct{ v atomic.Bool }

func (s *Switch) Press()        { s.v.Store(true) }
func (s *Switch) Release()      { s.v.Store(false) }
func (s *Switch) Pressed() bool { return s.v.Load() }

// LED counts indicator activity.
type LED struct {
	mu      sync.Mutex
	on      bool
	toggles int
	clears  int
}

func (l *LED) Toggle() {
	l.mu.Lock()
	l.on = !l.on
	l.toggles++
	l.mu.Unlock()
}

func (l *LED) Clear() {
	l.mu.Lock()
	l.on = false
	l.clears++
	l.mu.Unlock()
}

func (l *LED) State() (on bool, toggles, clears int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on, l.toggles, l.clears
}

// Clock is an RTC that only moves when told to.
type Clock struct {
	mu  sync.Mutex
	c   types.Clock
	set int
}

func (k *Clock) SetTime(c types.Clock) {
	k.mu.Lock()
	k.c = c
	k.set++
	k.mu.Unlock()
}

func (k *Clock) Time() types.Clock {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.c
}

// Advance moves the clock forward by sec seconds, wrapping at midnight.
func (k *Clock) Advance(sec int) {
	k.mu.Lock()
	s := ((k.c.Hour*60+k.c.Min)*60 + k.c.Sec + sec) % 86400
	k.c = types.Clock{Hour: s / 3600, Min: s / 60 % 60, Sec: s % 60}
	k.mu.Unlock()
}
