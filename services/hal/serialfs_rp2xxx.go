//go:build rp2040 || rp2350

package hal

import (
	"fmt"
	"machine"
	"strings"
	"sync/atomic"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

// SerialFS stores the log on a serial SD logger (OpenLog-class) wired to a
// UART. The logger appends every byte it receives to its current file, so
// the volume has a single file and Open only checks the path.
//
// Media presence comes from the card-detect pin. Its interrupt delivers
// mount/unmount events straight to the handler, which must therefore only
// touch atomics.
type SerialFS struct {
	volume string
	u      *uartx.UART
	detect machine.Pin

	handler FSHandler
	mounted atomic.Bool
}

func NewSerialFS(volume string, u *uartx.UART, detect machine.Pin) *SerialFS {
	return &SerialFS{volume: volume, u: u, detect: detect}
}

// SetEventHandler must be called before Start.
func (s *SerialFS) SetEventHandler(fn FSHandler) { s.handler = fn }

// Start reports the current card state and arms the card-detect interrupt.
func (s *SerialFS) Start() error {
	s.detect.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	s.report(!s.detect.Get())
	return s.detect.SetInterrupt(machine.PinToggle, func(p machine.Pin) {
		s.report(!p.Get())
	})
}

func (s *SerialFS) report(present bool) {
	if s.mounted.Swap(present) == present {
		return
	}
	ev := FSUnmount
	if present {
		ev = FSMount
	}
	if s.handler != nil {
		s.handler(ev, s.volume)
	}
}

func (s *SerialFS) Open(path string) (File, error) {
	if !s.mounted.Load() {
		return nil, ErrNotMounted
	}
	name, ok := strings.CutPrefix(path, s.volume+"/")
	if !ok || name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNotMounted)
	}
	return &serialFile{fs: s}, nil
}

type serialFile struct {
	fs     *SerialFS
	closed bool
}

func (f *serialFile) Printf(format string, args ...any) error {
	if f.closed {
		return ErrClosed
	}
	if !f.fs.mounted.Load() {
		return ErrNotMounted
	}
	_, err := fmt.Fprintf(f.fs.u, format, args...)
	return err
}

func (f *serialFile) Close() error {
	if f.closed {
		return ErrClosed
	}
	f.closed = true
	return nil
}
