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

package icsp

import (
	"github.com/calroc/gopic/hardware/bus"
	"github.com/calroc/gopic/logger"
	"github.com/calroc/gopic/sim"
)

// withLabel runs op concurrently with a process that publishes the command
// label on the next clock rising edge. It returns only when both have
// completed. The joint completion matters: without it a command could return
// while the label of the previous command is still visible.
func (pgm *Programmer) withLabel(p *sim.Proc, label bus.CommandLabel, op sim.ProcFn) error {
	opj := p.Fork(label.String(), op)
	lbj := p.Fork("label", func(q *sim.Proc) error {
		q.WaitPosedge(pgm.bus.Clock)
		pgm.bus.Label.Schedule(label)
		logger.Log("icsp", label.String())
		return nil
	})

	err := opj.Wait(p)
	if lerr := lbj.Wait(p); err == nil {
		err = lerr
	}
	return err
}

// LoadConfig enters configuration memory and loads a 14-bit word.
func (pgm *Programmer) LoadConfig(p *sim.Proc, data uint16) error {
	return pgm.withLabel(p, bus.LoadConfig, func(q *sim.Proc) error {
		return pgm.sendCommandAndData(q, LoadConfiguration, data)
	})
}

// LoadProgram loads a 14-bit word for program memory.
func (pgm *Programmer) LoadProgram(p *sim.Proc, data uint16) error {
	return pgm.withLabel(p, bus.LoadProgram, func(q *sim.Proc) error {
		return pgm.sendCommandAndData(q, LoadDataForProgramMemory, data)
	})
}

// LoadData loads a byte for data memory.
func (pgm *Programmer) LoadData(p *sim.Proc, data uint8) error {
	return pgm.withLabel(p, bus.LoadData, func(q *sim.Proc) error {
		return pgm.sendCommandAndByteData(q, LoadDataForDataMemory, data)
	})
}

// IncrementAddress advances the chip's address counter.
func (pgm *Programmer) IncrementAddress(p *sim.Proc) error {
	return pgm.withLabel(p, bus.IncrementAddress, func(q *sim.Proc) error {
		return pgm.sendCommand(q, IncrementAddress)
	})
}

// EndProgramming ends an externally timed programming operation.
func (pgm *Programmer) EndProgramming(p *sim.Proc) error {
	return pgm.withLabel(p, bus.EndProgramming, func(q *sim.Proc) error {
		return pgm.sendCommand(q, EndProgramming)
	})
}

// ReadProgram reads the 14-bit word at the current address and appends it to
// output.
func (pgm *Programmer) ReadProgram(p *sim.Proc, output *[]uint16) error {
	return pgm.withLabel(p, bus.ReadProgram, func(q *sim.Proc) error {
		return pgm.sendCommandAndReadData(q, ReadDataFromProgramMemory, output)
	})
}

// ReadData reads the data memory byte at the current address and appends it
// to output.
func (pgm *Programmer) ReadData(p *sim.Proc, output *[]uint8) error {
	return pgm.withLabel(p, bus.ReadData, func(q *sim.Proc) error {
		return pgm.sendCommandAndReadByteData(q, ReadDataFromDataMemory, output)
	})
}

// BeginProgram starts an internally timed programming operation and waits
// out Tprog.
func (pgm *Programmer) BeginProgram(p *sim.Proc) error {
	return pgm.withLabel(p, bus.BeginProgram, func(q *sim.Proc) error {
		if err := pgm.sendCommand(q, BeginProgrammingInternallyTimed); err != nil {
			return err
		}
		pgm.Tprog(q)
		return nil
	})
}

// EraseProgram bulk erases program memory and waits out Terase.
func (pgm *Programmer) EraseProgram(p *sim.Proc) error {
	return pgm.withLabel(p, bus.EraseProgram, func(q *sim.Proc) error {
		if err := pgm.sendCommand(q, BulkEraseProgramMemory); err != nil {
			return err
		}
		pgm.Terase(q)
		return nil
	})
}

// EraseData bulk erases data memory and waits out Terase.
func (pgm *Programmer) EraseData(p *sim.Proc) error {
	return pgm.withLabel(p, bus.EraseData, func(q *sim.Proc) error {
		if err := pgm.sendCommand(q, BulkEraseDataMemory); err != nil {
			return err
		}
		pgm.Terase(q)
		return nil
	})
}
