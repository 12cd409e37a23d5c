// Package logger assembles the acquisition and storage state machines on a
// platform and drives them from one cooperative poll loop.
package logger

import (
	"time"

	"templogger-go/services/acquire"
	"templogger-go/services/hal"
	"templogger-go/services/sched"
	"templogger-go/services/storage"
	"templogger-go/x/console"
)

// Platform is the set of collaborators the machines run against.
type Platform struct {
	Timer   hal.TimerService
	I2C     hal.I2CDriver
	FS      hal.FileSystem
	RTC     hal.RTC
	Switch  hal.Switch
	LED     hal.Indicator
	Console *console.Console
}

type App struct {
	Acquire *acquire.Machine
	Storage *storage.Machine
	Loop    *sched.Loop
}

// New builds both machines. The storage machine is created first so its
// filesystem handler and RTC are in place before acquisition starts.
func New(ac acquire.Config, sc storage.Config, p Platform, idle time.Duration) *App {
	store := storage.New(sc, storage.Deps{
		FS:      p.FS,
		RTC:     p.RTC,
		Switch:  p.Switch,
		LED:     p.LED,
		Console: p.Console,
	})
	acq := acquire.New(ac, acquire.Deps{
		Timer:   p.Timer,
		I2C:     p.I2C,
		Sink:    store,
		Console: p.Console,
	})

	loop := sched.New(idle)
	loop.Add("acquire", acq)
	loop.Add("storage", store)

	a := &App{Acquire: acq, Storage: store, Loop: loop}
	loop.StopWhen = a.Done
	return a
}

// Step runs one poll round.
func (a *App) Step() { a.Loop.Step() }

// Done reports whether the log has been finalised or abandoned.
func (a *App) Done() bool { return a.Storage.State() == storage.StateIdle }
