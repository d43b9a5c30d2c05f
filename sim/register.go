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

// RegisterValue is the constraint on the value type of a Register.
type RegisterValue interface {
	comparable
	fmt.Stringer
}

// Register is an enum-valued observable with the same pending-next semantics
// as a Signal. Unlike a Signal a register has no edges and so cannot be
// waited on. Registers exist so that simulation state (and not just wire
// levels) appears in the waveform trace.
type Register[T RegisterValue] struct {
	sch   *Scheduler
	label string

	cur   T
	next  T
	wrote bool
}

// NewRegister creates a new Register with the given initial value.
func NewRegister[T RegisterValue](s *Scheduler, label string, initial T) *Register[T] {
	r := &Register[T]{sch: s, label: label, cur: initial, next: initial}
	s.registers = append(s.registers, r)
	s.traceables = append(s.traceables, r)
	return r
}

// Get returns the current value of the register.
func (r *Register[T]) Get() T {
	return r.cur
}

// Schedule the register to take the new value at the end of the current delta
// cycle.
func (r *Register[T]) Schedule(v T) {
	if r.wrote && r.next != v {
		panic(fmt.Sprintf("sim: conflicting drivers for register %s in a single delta cycle", r.label))
	}
	r.wrote = true
	r.next = v
}

// commit applies any pending value.
func (r *Register[T]) commit() bool {
	if !r.wrote {
		return false
	}
	r.wrote = false

	if r.next == r.cur {
		return false
	}
	r.cur = r.next

	return true
}

// Label implements the Traceable interface.
func (r *Register[T]) Label() string {
	return r.label
}

// TraceValue implements the Traceable interface.
func (r *Register[T]) TraceValue() string {
	return r.cur.String()
}

// Symbolic implements the Traceable interface. A Register traces as a
// symbolic value rather than a wire level.
func (r *Register[T]) Symbolic() bool {
	return true
}
