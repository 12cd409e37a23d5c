// Package storage implements the log-writer state machine: it waits for the
// removable volume to mount, opens the log file, appends one timestamped
// record per reading handed over by Notify, and closes the file when the
// operator presses the stop switch.
//
// Tasks must be called repeatedly from a single poll loop goroutine. Notify
// and OnFSEvent may run on any goroutine.
package storage

import (
	"sync/atomic"

	"github.com/google/uuid"

	"templogger-go/errcode"
	"templogger-go/services/hal"
	"templogger-go/types"
	"templogger-go/x/console"
	"templogger-go/x/flag"
)

type State uint32

const (
	StateMountWait State = iota
	StateOpenFile
	StateWrite
	StateSwitchCheck
	StateCloseFile
	StateError
	StateIdle
)

func (s State) String() string {
	switch s {
	case StateMountWait:
		return "mount_wait"
	case StateOpenFile:
		return "open_file"
	case StateWrite:
		return "write"
	case StateSwitchCheck:
		return "switch_check"
	case StateCloseFile:
		return "close_file"
	case StateError:
		return "error"
	case StateIdle:
		return "idle"
	}
	return "unknown"
}

const (
	DefaultVolume   = "/mnt/mydrive"
	DefaultFileName = "temp_log.txt"
)

type Config struct {
	Volume    string
	FileName  string
	StartTime types.Clock // loaded into the RTC by New
}

func DefaultConfig() Config {
	return Config{Volume: DefaultVolume, FileName: DefaultFileName}
}

// Path is the log file location on the volume.
func (c Config) Path() string { return c.Volume + "/" + c.FileName }

type Deps struct {
	FS      hal.FileSystem
	RTC     hal.RTC
	Switch  hal.Switch
	LED     hal.Indicator
	Console *console.Console
}

// Machine is the storage context.
type Machine struct {
	cfg  Config
	deps Deps

	// state is written by Tasks and, on unmount, by OnFSEvent.
	state atomic.Uint32

	file    hal.File
	session string

	mounted  flag.Flag     // set on mount, taken by MountWait
	removed  flag.Flag     // set on abrupt unmount, taken by Error
	attached atomic.Bool   // volume currently present
	value    atomic.Uint32 // packed types.Reading; readyBit marks it unwritten

	err error
}

// New initialises the context: the RTC is loaded with the configured start
// time and the filesystem event handler is registered.
func New(cfg Config, deps Deps) *Machine {
	if cfg.Volume == "" {
		cfg.Volume = DefaultVolume
	}
	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}
	m := &Machine{cfg: cfg, deps: deps}
	m.state.Store(uint32(StateMountWait))
	if deps.RTC != nil {
		deps.RTC.SetTime(cfg.StartTime)
	}
	deps.FS.SetEventHandler(m.OnFSEvent)
	return m
}

func (m *Machine) State() State { return State(m.state.Load()) }

// Err returns the fault that sent the machine to StateError, if any.
func (m *Machine) Err() error { return m.err }

// Session is the id of the current (or last) logging session.
func (m *Machine) Session() string { return m.session }

// Notify hands over a reading. A reading not yet written is replaced.
func (m *Machine) Notify(r types.Reading) {
	m.value.Store(pack(r) | readyBit)
}

// Tasks runs one non-blocking step.
func (m *Machine) Tasks() {
	switch m.State() {
	case StateMountWait:
		if m.mounted.Take() {
			m.advance(StateMountWait, StateOpenFile)
		}

	case StateOpenFile:
		f, err := m.deps.FS.Open(m.cfg.Path())
		if err != nil || f == nil {
			m.fail(StateOpenFile, errcode.Wrap(errcode.FileOpen, "storage.open", err))
			return
		}
		m.file = f
		m.session = uuid.NewString()
		m.deps.Console.Printf("Logging session %s: %s\r\n", m.session, m.cfg.Path())
		m.advance(StateOpenFile, StateWrite)

	case StateWrite:
		v := m.value.Swap(0)
		if v&readyBit == 0 {
			return
		}
		m.deps.Console.Printf("Logging temperature to SDCARD...")
		if !m.attached.Load() {
			m.fail(StateWrite, errcode.Wrap(errcode.MediaRemoved, "storage.write", hal.ErrNotMounted))
			return
		}
		r := unpack(v)
		rec := FormatRecord(m.deps.RTC.Time(), r)
		if err := m.file.Printf("%s\r\n", rec); err != nil {
			m.fail(StateWrite, errcode.Wrap(errcode.FileWrite, "storage.write", err))
			return
		}
		m.deps.Console.Printf("Done!!!\r\n\r\n")
		m.deps.LED.Toggle()
		m.advance(StateWrite, StateSwitchCheck)

	case StateSwitchCheck:
		if m.deps.Switch.Pressed() {
			m.advance(StateSwitchCheck, StateCloseFile)
		} else {
			m.advance(StateSwitchCheck, StateWrite)
		}

	case StateCloseFile:
		m.closeFile()
		m.deps.Console.Printf("Logging temperature to SDCARD Stopped \r\n")
		m.deps.Console.Printf("Safe to Eject SDCARD \r\n\r\n")
		m.deps.LED.Clear()
		m.advance(StateCloseFile, StateIdle)

	case StateError:
		if m.removed.Take() {
			m.deps.Console.Warnf("!!! WARNING SDCARD Ejected Abruptly !!!\r\n\r\n")
			m.deps.LED.Clear()
			if m.err == nil {
				m.err = errcode.Wrap(errcode.MediaRemoved, "storage", nil)
			}
		}
		m.closeFile()
		if m.err != nil {
			m.deps.Console.Printf("SDCARD Task Error: %v\r\n\r\n", m.err)
		} else {
			m.deps.Console.Printf("SDCARD Task Error \r\n\r\n")
		}
		m.advance(StateError, StateIdle)

	case StateIdle:
	}
}

func (m *Machine) closeFile() {
	if m.file == nil {
		return
	}
	if err := m.file.Close(); err != nil {
		m.deps.Console.Printf("close %s: %v\r\n", m.cfg.Path(), err)
	}
	m.file = nil
}

// advance moves from -> to unless OnFSEvent has already forced StateError.
func (m *Machine) advance(from, to State) bool {
	return m.state.CompareAndSwap(uint32(from), uint32(to))
}

func (m *Machine) fail(from State, err error) {
	if m.err == nil {
		m.err = err
	}
	m.advance(from, StateError)
}

// A reading and its ready mark share one word, so taking the mark and the
// value is a single swap.
const readyBit = 1 << 31

func pack(r types.Reading) uint32 { return uint32(uint16(r.Value)) | uint32(r.Scale)<<16 }

func unpack(v uint32) types.Reading {
	return types.Reading{Value: int16(uint16(v)), Scale: types.Scale(uint8(v >> 16))}
}
