// Package acquire implements the sensor-acquisition state machine: on every
// timer period it issues one write-then-read transfer to the temperature
// sensor, waits for the driver's completion callback, decodes the register
// image and hands the reading to a Notifier.
//
// Tasks must be called repeatedly from a single poll loop goroutine. OnTimer
// and OnTransfer are the event callbacks and may run on any goroutine.
package acquire

import (
	"sync/atomic"
	"time"

	"templogger-go/drivers/lm75"
	"templogger-go/errcode"
	"templogger-go/services/hal"
	"templogger-go/types"
	"templogger-go/x/console"
	"templogger-go/x/flag"
	"templogger-go/x/mathx"
)

type State uint32

const (
	StateInit State = iota
	StateReadTemperature
	StateWaitTransferComplete
	StateError
	StateIdle
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateReadTemperature:
		return "read_temperature"
	case StateWaitTransferComplete:
		return "wait_transfer_complete"
	case StateError:
		return "error"
	case StateIdle:
		return "idle"
	}
	return "unknown"
}

// Notifier receives each decoded reading, by value.
type Notifier interface {
	Notify(r types.Reading)
}

// SamplingPeriod is the fixed acquisition cadence.
const SamplingPeriod = 1000 * time.Millisecond

type Config struct {
	BusIndex int
	Address  uint16
	Register byte
	Period   time.Duration
	Scale    types.Scale
}

func DefaultConfig() Config {
	return Config{
		BusIndex: 0,
		Address:  lm75.Address,
		Register: lm75.RegTemperature,
		Period:   SamplingPeriod,
		Scale:    types.ScaleCelsius,
	}
}

type Deps struct {
	Timer   hal.TimerService
	I2C     hal.I2CDriver
	Sink    Notifier
	Console *console.Console
}

// Machine is the acquisition context. It is created once and cycles through
// its states for the life of the process.
type Machine struct {
	cfg  Config
	deps Deps

	// state is written by Tasks and, on bus error, by OnTransfer.
	state atomic.Uint32

	i2c   hal.I2CHandle
	timer hal.TimerHandle
	xfer  hal.TransferHandle

	// Set by callbacks, taken by Tasks.
	timerExpired flag.Flag
	transferDone flag.Flag
	busFault     flag.Flag

	reg     [1]byte
	rx      [2]byte
	reading types.Reading
	err     error
}

func New(cfg Config, deps Deps) *Machine {
	if cfg.Period <= 0 {
		cfg.Period = SamplingPeriod
	}
	m := &Machine{
		cfg:   cfg,
		deps:  deps,
		i2c:   hal.I2CHandleInvalid,
		timer: hal.TimerHandleInvalid,
		xfer:  hal.TransferHandleInvalid,
	}
	m.state.Store(uint32(StateInit))
	return m
}

func (m *Machine) State() State { return State(m.state.Load()) }

// Reading returns the last decoded reading. Like Tasks, it must only be
// called from the poll loop goroutine.
func (m *Machine) Reading() types.Reading { return m.reading }

// InFlight reports whether a transfer handle is currently held.
func (m *Machine) InFlight() bool { return m.xfer != hal.TransferHandleInvalid }

// Err returns the fault that sent the machine to StateError, if any.
func (m *Machine) Err() error { return m.err }

// Tasks runs one non-blocking step.
func (m *Machine) Tasks() {
	switch m.State() {
	case StateInit:
		m.initialise()

	case StateReadTemperature:
		if !m.timerExpired.Take() {
			return
		}
		m.deps.Console.Printf("Reading temperature from sensor...")
		m.reg[0] = m.cfg.Register
		th, err := m.deps.I2C.WriteReadTransfer(m.i2c, m.cfg.Address, m.reg[:], m.rx[:])
		if err != nil || th == hal.TransferHandleInvalid {
			m.fail(StateReadTemperature, errcode.Wrap(errcode.TransferRejected, "acquire.read", err))
			return
		}
		m.xfer = th
		m.advance(StateReadTemperature, StateWaitTransferComplete)

	case StateWaitTransferComplete:
		if !m.transferDone.Take() {
			return
		}
		m.xfer = hal.TransferHandleInvalid
		m.reading = m.decode()
		m.deps.Console.Printf("%d %c\r\n", m.reading.Value, m.reading.Scale.Unit())
		if m.deps.Sink != nil {
			m.deps.Sink.Notify(m.reading)
		}
		m.advance(StateWaitTransferComplete, StateReadTemperature)

	case StateError:
		if m.busFault.Take() && m.err == nil {
			m.err = errcode.Wrap(errcode.TransferError, "acquire.wait", nil)
		}
		if m.err != nil {
			m.deps.Console.Printf("Temperature Sensor Task Error: %v\r\n", m.err)
		} else {
			m.deps.Console.Printf("Temperature Sensor Task Error \r\n")
		}
		m.advance(StateError, StateIdle)

	case StateIdle:
	}
}

func (m *Machine) initialise() {
	h, err := m.deps.I2C.Open(m.cfg.BusIndex, hal.IntentReadWrite)
	if err != nil || h == hal.I2CHandleInvalid {
		m.fail(StateInit, errcode.Wrap(errcode.BusOpen, "acquire.init", err))
		return
	}
	m.i2c = h
	m.deps.I2C.SetEventHandler(h, m.OnTransfer)

	th, err := m.deps.Timer.RegisterPeriodic(m.cfg.Period, m.OnTimer)
	if err != nil || th == hal.TimerHandleInvalid {
		m.fail(StateInit, errcode.Wrap(errcode.TimerRegister, "acquire.init", err))
		return
	}
	m.timer = th
	m.advance(StateInit, StateReadTemperature)
}

// decode turns the received register image into whole degrees in the
// configured scale: >>7 gives half-degrees, halving truncates toward zero.
func (m *Machine) decode() types.Reading {
	whole := lm75.HalfToWhole(lm75.DecodeHalfDegrees(m.rx[0], m.rx[1]))
	if m.cfg.Scale == types.ScaleFahrenheit {
		whole = lm75.ToFahrenheit(whole)
	}
	return types.Reading{Value: mathx.NarrowInt16(whole), Scale: m.cfg.Scale}
}

// advance moves from -> to unless a callback has already forced StateError.
func (m *Machine) advance(from, to State) bool {
	return m.state.CompareAndSwap(uint32(from), uint32(to))
}

func (m *Machine) fail(from State, err error) {
	if m.err == nil {
		m.err = err
	}
	m.advance(from, StateError)
}
