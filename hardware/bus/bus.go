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

package bus

import (
	"github.com/calroc/gopic/logger"
	"github.com/calroc/gopic/sim"
)

// PortSink implementations receive the 4-bit composite bus value whenever it
// changes. The value is assembled as (msb) program-mode, power, data, strobe
// (lsb). A sink typically forwards the nibble to a physical transport, for
// example four GPIO lines or a serial dongle.
type PortSink interface {
	SetPort(value uint8) error
}

// Bus is the set of signal lines shared between the programmer and the chip,
// plus the two observable status registers.
type Bus struct {
	Clock   *sim.Signal
	Strobe  *sim.Signal
	Data    *sim.Signal
	Power   *sim.Signal
	Program *sim.Signal

	// StrobeEnable gates whether strobe pulses reach the chip. It is not part
	// of the composite port value
	StrobeEnable *sim.Signal

	// Transport is set by the bit-transport layer, Label by the command layer.
	// Both are observable through the waveform trace
	Transport *sim.Register[TransportState]
	Label     *sim.Register[CommandLabel]

	sink PortSink

	// most recent composite value forwarded to the sink. initialised to an
	// impossible value so that the first commit is always forwarded
	prev int

	// first error returned by the sink. forwarding is best-effort so the
	// error does not stop the simulation
	sinkErr error
}

// NewBus creates the signal lines and status registers on the given
// scheduler, and hooks the composite port driver into the scheduler's commit
// phase.
func NewBus(s *sim.Scheduler) *Bus {
	b := &Bus{
		Clock:        s.Clock(),
		Strobe:       s.NewSignal("strobe"),
		Data:         s.NewSignal("data"),
		Power:        s.NewSignal("power"),
		Program:      s.NewSignal("prog_mode"),
		StrobeEnable: s.NewSignal("strobe_en"),
		prev:         -1,
	}
	b.Transport = sim.NewRegister(s, "transport", Rest)
	b.Label = sim.NewRegister(s, "command", None)

	s.OnCommit(b.drivePort)

	return b
}

// AttachSink attaches the physical transport for the composite bus value.
func (b *Bus) AttachSink(sink PortSink) {
	b.sink = sink
}

// SinkError returns the first error reported by the attached sink, if any.
func (b *Bus) SinkError() error {
	return b.sinkErr
}

// Composite returns the current 4-bit composite bus value.
func (b *Bus) Composite() uint8 {
	var v uint8
	if b.Program.Get() {
		v |= 0b1000
	}
	if b.Power.Get() {
		v |= 0b0100
	}
	if b.Data.Get() {
		v |= 0b0010
	}
	if b.Strobe.Get() {
		v |= 0b0001
	}
	return v
}

// drivePort runs at the end of every delta cycle and forwards the composite
// value to the sink when it has changed.
func (b *Bus) drivePort(now uint64) {
	v := b.Composite()
	if int(v) == b.prev {
		return
	}
	b.prev = int(v)

	if b.sink == nil {
		return
	}
	if err := b.sink.SetPort(v); err != nil {
		if b.sinkErr == nil {
			b.sinkErr = err
		}
		logger.Logf("bus", "sink: %v", err)
	}
}

// StrobeLink drives the chip strobe from the clock, gated by StrobeEnable.
// It runs as a background process for the lifetime of the session.
func (b *Bus) StrobeLink(p *sim.Proc) error {
	for {
		p.WaitPosedge(b.Clock)
		b.Strobe.Schedule(b.StrobeEnable.Get())
		p.WaitNegedge(b.Clock)
		b.Strobe.Schedule(false)
	}
}
