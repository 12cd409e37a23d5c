// Package hal defines the collaborators the logger's state machines drive:
// a periodic timer service, an asynchronous I²C driver, a removable-media
// filesystem, a real-time clock, an operator switch and an indicator.
//
// Every callback registered through these interfaces may run on a goroutine
// other than the poll loop. Callbacks are expected to do flag-sized work only.
package hal

import (
	"errors"
	"time"

	"templogger-go/types"
)

// ---- Timer service ----

type TimerHandle int32

const TimerHandleInvalid TimerHandle = -1

type TimerService interface {
	// RegisterPeriodic arranges for cb to run roughly every interval until
	// cancelled. cb runs on the service's own goroutine.
	RegisterPeriodic(interval time.Duration, cb func()) (TimerHandle, error)
	Cancel(h TimerHandle)
}

// ---- I²C ----

type Intent uint8

const (
	IntentRead Intent = 1 << iota
	IntentWrite

	IntentReadWrite = IntentRead | IntentWrite
)

type I2CHandle int32

const I2CHandleInvalid I2CHandle = -1

type TransferHandle int32

const TransferHandleInvalid TransferHandle = -1

type TransferEvent uint8

const (
	TransferPending TransferEvent = iota
	TransferComplete
	TransferError
)

func (e TransferEvent) String() string {
	switch e {
	case TransferComplete:
		return "complete"
	case TransferError:
		return "error"
	default:
		return "pending"
	}
}

// TransferHandler is invoked once per accepted transfer with its outcome.
type TransferHandler func(ev TransferEvent, th TransferHandle)

type I2CDriver interface {
	Open(index int, intent Intent) (I2CHandle, error)
	SetEventHandler(h I2CHandle, fn TransferHandler)
	// WriteReadTransfer queues a write of w followed by a repeated-start read
	// into r. r is filled before the handler reports TransferComplete and must
	// not be touched by the caller until then.
	WriteReadTransfer(h I2CHandle, addr uint16, w, r []byte) (TransferHandle, error)
}

// ---- Filesystem ----

type FSEvent uint8

const (
	FSMount FSEvent = iota + 1
	FSUnmount
	FSError
)

func (e FSEvent) String() string {
	switch e {
	case FSMount:
		return "mount"
	case FSUnmount:
		return "unmount"
	case FSError:
		return "error"
	}
	return "unknown"
}

// FSHandler receives volume attach/detach events with the volume's name.
type FSHandler func(ev FSEvent, volume string)

// File is an append-only text log.
type File interface {
	Printf(format string, args ...any) error
	Close() error
}

type FileSystem interface {
	SetEventHandler(fn FSHandler)
	// Open opens path for writing, creating it if needed; writes append.
	Open(path string) (File, error)
}

// ---- Clock, switch, indicator ----

type RTC interface {
	SetTime(c types.Clock)
	Time() types.Clock
}

type Switch interface {
	Pressed() bool
}

type Indicator interface {
	Toggle()
	Clear()
}

// Short error codes

var (
	ErrInvalidInterval = errors.New("invalid_interval")
	ErrUnknownBus      = errors.New("unknown_bus")
	ErrInvalidHandle   = errors.New("invalid_handle")
	ErrQueueFull       = errors.New("queue_full")
	ErrNotMounted      = errors.New("not_mounted")
	ErrClosed          = errors.New("closed")
)
