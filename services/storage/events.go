package storage

import "templogger-go/services/hal"

// OnFSEvent is the filesystem callback. A mount of the configured volume
// raises the mounted flag. Any unmount while the machine is active is an
// abrupt removal: the machine is forced to StateError, skipping the normal
// close. A reading handed over but not yet written is lost.
func (m *Machine) OnFSEvent(ev hal.FSEvent, volume string) {
	switch ev {
	case hal.FSMount:
		if volume == m.cfg.Volume {
			m.attached.Store(true)
			m.mounted.Set()
		}
	case hal.FSUnmount:
		if volume == m.cfg.Volume {
			m.attached.Store(false)
			m.mounted.Clear()
		}
		m.forceRemoved()
	}
}

func (m *Machine) forceRemoved() {
	if m.State() == StateIdle {
		return
	}
	// Raised before the state change so the Error step always sees it.
	m.removed.Set()
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
