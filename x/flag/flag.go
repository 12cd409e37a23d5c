// Package flag provides the single-bit signal used between interrupt-style
// callbacks and cooperative poll steps.
//
// A Flag has one setting side (a callback or a notifier) and one consuming
// side (the owning state machine's poll step). The consumer observes and
// clears the flag in a single atomic operation with Take, so each Set is
// acted on by at most one poll step and never lingers across poll cycles.
package flag

import "sync/atomic"

type Flag struct {
	v atomic.Bool
}

// Set raises the flag. Setting an already-raised flag is a no-op.
func (f *Flag) Set() { f.v.Store(true) }

// Clear lowers the flag without consuming it.
func (f *Flag) Clear() { f.v.Store(false) }

// Take reports whether the flag was raised and lowers it.
func (f *Flag) Take() bool { return f.v.CompareAndSwap(true, false) }

// IsSet probes the flag without consuming it.
func (f *Flag) IsSet() bool { return f.v.Load() }
