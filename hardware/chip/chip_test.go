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

package chip_test

import (
	"testing"

	"github.com/calroc/gopic/hardware/bus"
	"github.com/calroc/gopic/hardware/chip"
	"github.com/calroc/gopic/hardware/icsp"
	"github.com/calroc/gopic/sim"
	"github.com/calroc/gopic/test"
)

func TestFactoryState(t *testing.T) {
	s := sim.NewScheduler()
	c := chip.NewChip(bus.NewBus(s))

	test.ExpectEquality(t, len(c.ProgramMemory), chip.ProgramMemorySize)
	test.ExpectEquality(t, len(c.DataMemory), chip.DataMemorySize)
	test.ExpectEquality(t, len(c.ConfigMemory), chip.ConfigMemorySize)

	test.ExpectEquality(t, c.ProgramMemory[0], chip.ErasedWord)
	test.ExpectEquality(t, c.DataMemory[0], chip.ErasedByte)

	// the calibration word is a RETLW instruction
	osccal := c.ProgramMemory[icsp.OSCCALAddress]
	test.ExpectEquality(t, osccal&0b11110000000000, uint16(0b11010000000000))

	test.ExpectEquality(t, c.Addr(), 0)
	test.ExpectEquality(t, c.ConfigMode(), false)
}

func TestCommandCount(t *testing.T) {
	s := sim.NewScheduler()
	c := chip.NewChip(bus.NewBus(s))

	test.ExpectEquality(t, c.CommandCount(icsp.IncrementAddress), 0)

	c.History = []icsp.CommandCode{
		icsp.IncrementAddress,
		icsp.ReadDataFromProgramMemory,
		icsp.IncrementAddress,
	}
	test.ExpectEquality(t, c.CommandCount(icsp.IncrementAddress), 2)
	test.ExpectEquality(t, c.CommandCount(icsp.ReadDataFromProgramMemory), 1)
	test.ExpectEquality(t, c.CommandCount(icsp.BulkEraseDataMemory), 0)
}
