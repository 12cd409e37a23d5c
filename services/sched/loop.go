// Package sched is the cooperative poll loop that drives the state machines.
package sched

import (
	"context"
	"runtime"
	"time"

	"templogger-go/x/timex"
)

// Task is one cooperative state machine. Tasks must not block.
type Task interface {
	Tasks()
}

// TaskFunc adapts a plain function to Task.
type TaskFunc func()

func (f TaskFunc) Tasks() { f() }

type entry struct {
	name string
	t    Task
}

type Loop struct {
	tasks []entry
	idle  time.Duration

	// StopWhen, if set, is checked after every round; Run returns nil once
	// it reports true.
	StopWhen func() bool
}

// New returns a loop that pauses idle between rounds (0 yields only).
func New(idle time.Duration) *Loop {
	return &Loop{idle: idle}
}

// Add registers t; tasks run in registration order.
func (l *Loop) Add(name string, t Task) {
	l.tasks = append(l.tasks, entry{name: name, t: t})
}

// Names lists registered tasks in run order.
func (l *Loop) Names() []string {
	out := make([]string, len(l.tasks))
	for i, e := range l.tasks {
		out[i] = e.name
	}
	return out
}

// Step runs every task once.
func (l *Loop) Step() {
	for _, e := range l.tasks {
		e.t.Tasks()
	}
}

// Run steps forever until ctx is cancelled or StopWhen reports true.
func (l *Loop) Run(ctx context.Context) error {
	var timer *time.Timer
	if l.idle > 0 {
		timer = time.NewTimer(l.idle)
		defer timer.Stop()
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		l.Step()
		if l.StopWhen != nil && l.StopWhen() {
			return nil
		}
		if timer == nil {
			runtime.Gosched()
			continue
		}
		timex.ResetTimer(timer, l.idle)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
