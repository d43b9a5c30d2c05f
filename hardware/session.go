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

// Package hardware assembles the simulation scheduler, the bus, the
// programmer and optionally a chip model into a runnable session. It is
// the layer the command line and the tests build on.
package hardware

import (
	"github.com/calroc/gopic/hardware/bus"
	"github.com/calroc/gopic/hardware/chip"
	"github.com/calroc/gopic/hardware/icsp"
	"github.com/calroc/gopic/sim"
)

// Session owns one simulation run. Create it with NewSession, optionally
// attach a chip model, then call Run exactly once.
type Session struct {
	Sim        *sim.Scheduler
	Bus        *bus.Bus
	Programmer *icsp.Programmer

	// Chip is nil unless AttachChip has been called
	Chip *chip.Chip
}

// NewSession is the preferred method of initialisation for the Session type.
// The sink may be nil, in which case bus activity is not forwarded anywhere.
func NewSession(sink bus.PortSink) *Session {
	s := sim.NewScheduler()
	b := bus.NewBus(s)
	if sink != nil {
		b.AttachSink(sink)
	}
	return &Session{
		Sim:        s,
		Bus:        b,
		Programmer: icsp.NewProgrammer(b),
	}
}

// AttachChip adds a simulated device to the far side of the bus. Without one
// the read commands see whatever the data line was left at, which is only
// useful when a real device is connected through the sink.
func (s *Session) AttachChip() *chip.Chip {
	s.Chip = chip.NewChip(s.Bus)
	return s.Chip
}

// Run drives the simulation with fn as the main process. The bus strobe
// link and, when attached, the chip processes run alongside it. Any error
// from the port sink takes priority over the process error because a sink
// failure invalidates everything that happened after it.
func (s *Session) Run(fn func(p *sim.Proc, prog *icsp.Programmer) error) error {
	s.Sim.Spawn("strobe link", s.Bus.StrobeLink)
	if s.Chip != nil {
		s.Sim.Spawn("chip", s.Chip.Run)
		s.Sim.Spawn("chip power", s.Chip.WatchPower)
	}

	err := s.Sim.Run("programmer", func(p *sim.Proc) error {
		return fn(p, s.Programmer)
	})

	if serr := s.Bus.SinkError(); serr != nil {
		return serr
	}
	return err
}
