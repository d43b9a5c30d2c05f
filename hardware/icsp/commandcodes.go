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
	"fmt"
	"strings"
)

// CommandCode is one of the 6-bit serial command patterns understood by the
// chip. Bit 0 of the stored value is the first bit on the wire.
type CommandCode uint8

// number of significant bits in a CommandCode.
const CommandWidth = 6

func (c CommandCode) String() string {
	return fmt.Sprintf("%06b", uint8(c))
}

// commandCode converts a bit pattern string into a CommandCode. The pattern
// is space-separated and written MSB first, as in the programming
// specification. An 'X' is a don't-care bit and is encoded as 0.
//
// Used only to build the package constants below; a malformed pattern is a
// programming error and panics.
func commandCode(pattern string) CommandCode {
	fields := strings.Fields(pattern)
	if len(fields) != CommandWidth {
		panic(fmt.Sprintf("icsp: command pattern %q is not %d bits", pattern, CommandWidth))
	}

	var c CommandCode
	for i := 0; i < len(fields); i++ {
		switch fields[len(fields)-1-i] {
		case "1":
			c |= 1 << i
		case "0", "X":
			// X is a don't-care and is sent as 0
		default:
			panic(fmt.Sprintf("icsp: command pattern %q contains an invalid bit", pattern))
		}
	}
	return c
}

// The command set of the PIC12F675, as specified in the programming
// specification (Microchip document 41191).
var (
	// command followed by 14 bits of data
	LoadConfiguration        = commandCode("X X 0 0 0 0")
	LoadDataForProgramMemory = commandCode("X X 0 0 1 0")

	// no data bits
	IncrementAddress = commandCode("X X 0 1 1 0")
	EndProgramming   = commandCode("0 0 1 0 1 0")

	// command followed by 8 bits of data
	LoadDataForDataMemory = commandCode("X X 0 0 1 1")

	// read 14 and 8 bits, respectively, from the chip
	ReadDataFromProgramMemory = commandCode("X X 0 1 0 0")
	ReadDataFromDataMemory    = commandCode("X X 0 1 0 1")

	// require Tprog
	BeginProgrammingInternallyTimed = commandCode("0 0 1 0 0 0")
	BeginProgrammingExternallyTimed = commandCode("0 1 1 0 0 0")

	// require Terase
	BulkEraseProgramMemory = commandCode("X X 1 0 0 1")
	BulkEraseDataMemory    = commandCode("X X 1 0 1 1")
)
