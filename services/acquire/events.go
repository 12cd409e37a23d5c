package acquire

import "templogger-go/services/hal"

// OnTimer is the periodic timer callback. It only raises the timer flag.
func (m *Machine) OnTimer() { m.timerExpired.Set() }

// OnTransfer is the I²C transfer callback. Completion raises the transfer
// flag; an error abandons the wait by forcing StateError directly. The
// in-flight transfer handle is left as it was.
func (m *Machine) OnTransfer(ev hal.TransferEvent, _ hal.TransferHandle) {
	switch ev {
	case hal.TransferComplete:
		m.transferDone.Set()
	case hal.TransferError:
		m.busFault.Set()
		m.forceError()
	}
}

// forceError moves any non-terminal state to StateError. StateIdle is final.
func (m *Machine) forceError() {
	for {
		s := m.state.Load()
		if State(s) == StateIdle || State(s) == StateError {
			return
		}
		if m.state.CompareAndSwap(s, uint32(StateError)) {
			return
		}
	}
}
