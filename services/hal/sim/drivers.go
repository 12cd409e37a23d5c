package sim

import (
	"sync"
	"time"

	"templogger-go/services/hal"
)

// ManualTimer is a TimerService whose callbacks run only when Fire is called.
type ManualTimer struct {
	mu         sync.Mutex
	cbs        map[hal.TimerHandle]func()
	next       hal.TimerHandle
	Interval   time.Duration // last registered interval
	FailCreate bool
}

func (m *ManualTimer) RegisterPeriodic(interval time.Duration, cb func()) (hal.TimerHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreate {
		return hal.TimerHandleInvalid, ErrInjected
	}
	if m.cbs == nil {
		m.cbs = map[hal.TimerHandle]func(){}
	}
	h := m.next
	m.next++
	m.cbs[h] = cb
	m.Interval = interval
	return h, nil
}

func (m *ManualTimer) Cancel(h hal.TimerHandle) {
	m.mu.Lock()
	delete(m.cbs, h)
	m.mu.Unlock()
}

// Fire invokes every registered callback once.
func (m *ManualTimer) Fire() {
	m.mu.Lock()
	cbs := make([]func(), 0, len(m.cbs))
	for _, cb := range m.cbs {
		cbs = append(cbs, cb)
	}
	m.mu.Unlock()
	for _, cb := range cbs {
		cb()
	}
}

type pendingXfer struct {
	th   hal.TransferHandle
	addr uint16
	w    []byte
	r    []byte
}

// ManualI2C is an I2CDriver whose transfers complete only when the test says
// so. It records the peak number of simultaneously outstanding transfers.
type ManualI2C struct {
	mu       sync.Mutex
	handler  hal.TransferHandler
	pending  []pendingXfer
	next     hal.TransferHandle
	peak     int
	accepted int

	FailOpen bool
	Reject   bool
}

func (m *ManualI2C) Open(index int, intent hal.Intent) (hal.I2CHandle, error) {
	if m.FailOpen {
		return hal.I2CHandleInvalid, ErrInjected
	}
	return hal.I2CHandle(index), nil
}

func (m *ManualI2C) SetEventHandler(_ hal.I2CHandle, fn hal.TransferHandler) {
	m.mu.Lock()
	m.handler = fn
	m.mu.Unlock()
}

func (m *ManualI2C) WriteReadTransfer(_ hal.I2CHandle, addr uint16, w, r []byte) (hal.TransferHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Reject {
		return hal.TransferHandleInvalid, hal.ErrQueueFull
	}
	m.next++
	m.pending = append(m.pending, pendingXfer{th: m.next, addr: addr, w: append([]byte(nil), w...), r: r})
	m.accepted++
	if len(m.pending) > m.peak {
		m.peak = len(m.pending)
	}
	return m.next, nil
}

// Complete fills the oldest outstanding transfer's read buffer with data and
// reports success. It reports false if nothing was outstanding.
func (m *ManualI2C) Complete(data ...byte) bool {
	x, fn, ok := m.pop()
	if !ok {
		return false
	}
	copy(x.r, data)
	if fn != nil {
		fn(hal.TransferComplete, x.th)
	}
	return true
}

// Fail reports an error for the oldest outstanding transfer.
func (m *ManualI2C) Fail() bool {
	x, fn, ok := m.pop()
	if !ok {
		return false
	}
	if fn != nil {
		fn(hal.TransferError, x.th)
	}
	return true
}

func (m *ManualI2C) pop() (pendingXfer, hal.TransferHandler, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return pendingXfer{}, nil, false
	}
	x := m.pending[0]
	m.pending = m.pending[1:]
	return x, m.handler, true
}

func (m *ManualI2C) Outstanding() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *ManualI2C) Peak() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peak
}

func (m *ManualI2C) Accepted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accepted
}

// LastWrite returns the address and write bytes of the newest transfer.
func (m *ManualI2C) LastWrite() (uint16, []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return 0, nil
	}
	x := m.pending[len(m.pending)-1]
	return x.addr, x.w
}
