// This file is part of GoPIC.
//
// GoPIC is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GoPIC is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GoPIC.  If not, see <https://www.gnu.org/licenses/>.

package sim

import (
	"fmt"
)

// Signal is a boolean-valued wire. The current value is read with Get() and a
// new value is scheduled with Schedule(). The scheduled value becomes current
// at the end of the delta cycle.
//
// A Signal has at most one effective driver per delta cycle. A second
// Schedule() with a different value in the same delta cycle panics. This is a
// programming error, not a runtime condition, so it cannot be recovered.
type Signal struct {
	sch   *Scheduler
	label string

	cur   bool
	next  bool
	wrote bool

	// processes waiting on the rising/falling edge of this signal
	pos []*Proc
	neg []*Proc
}

// NewSignal creates a new Signal with an initial value of false. The label is
// used for tracing and error messages.
func (s *Scheduler) NewSignal(label string) *Signal {
	sig := &Signal{sch: s, label: label}
	s.signals = append(s.signals, sig)
	s.traceables = append(s.traceables, sig)
	return sig
}

// Get returns the current value of the signal.
func (sig *Signal) Get() bool {
	return sig.cur
}

// Schedule the signal to take the new value at the end of the current delta
// cycle.
func (sig *Signal) Schedule(v bool) {
	if sig.wrote && sig.next != v {
		panic(fmt.Sprintf("sim: conflicting drivers for signal %s in a single delta cycle", sig.label))
	}
	sig.wrote = true
	sig.next = v
}

// commit applies any pending value. the second return value indicates the
// direction of the edge when the value has changed.
func (sig *Signal) commit() (changed bool, rising bool) {
	if !sig.wrote {
		return false, false
	}
	sig.wrote = false

	if sig.next == sig.cur {
		return false, false
	}
	sig.cur = sig.next

	return true, sig.cur
}

// Label implements the Traceable interface.
func (sig *Signal) Label() string {
	return sig.label
}

// TraceValue implements the Traceable interface.
func (sig *Signal) TraceValue() string {
	if sig.cur {
		return "1"
	}
	return "0"
}

// Symbolic implements the Traceable interface. A Signal is a plain wire.
func (sig *Signal) Symbolic() bool {
	return false
}
