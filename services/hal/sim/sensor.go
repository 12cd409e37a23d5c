// Package sim provides in-memory stand-ins for the hal collaborators: an
// LM75 bus target, hand-cranked timer and I²C drivers, a removable memory
// filesystem, and switch/indicator/RTC doubles. They back the host
// simulator and the state machine tests.
package sim

import (
	"errors"
	"sync"

	"templogger-go/drivers/lm75"
)

var (
	ErrNack     = errors.New("sim: nack")
	ErrInjected = errors.New("sim: injected failure")
)

// Sensor implements tinygo drivers.I2C and answers like an LM75 at Address.
type Sensor struct {
	Address uint16

	mu   sync.Mutex
	ptr  byte
	temp [2]byte
	fail bool
	txs  int
}

func NewSensor(addr uint16) *Sensor { return &Sensor{Address: addr} }

func (s *Sensor) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs++
	if addr != s.Address {
		return ErrNack
	}
	if s.fail {
		return ErrInjected
	}
	if len(w) > 0 {
		s.ptr = w[0]
	}
	if len(r) > 0 {
		var reg [2]byte
		if s.ptr == lm75.RegTemperature {
			reg = s.temp
		}
		copy(r, reg[:])
	}
	return nil
}

// SetRaw sets the temperature register image.
func (s *Sensor) SetRaw(b0, b1 byte) {
	s.mu.Lock()
	s.temp = [2]byte{b0, b1}
	s.mu.Unlock()
}

// SetHalfDegrees sets the temperature in half-degree Celsius steps.
func (s *Sensor) SetHalfDegrees(h int16) {
	b0, b1 := lm75.Encode(h)
	s.SetRaw(b0, b1)
}

// SetFail makes every following transfer fail.
func (s *Sensor) SetFail(v bool) {
	s.mu.Lock()
	s.fail = v
	s.mu.Unlock()
}

func (s *Sensor) Transfers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txs
}
