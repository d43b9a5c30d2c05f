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
	"testing"

	"github.com/calroc/gopic/test"
)

func TestCommandCodes(t *testing.T) {
	// values from the programming specification, Microchip document 41191
	test.ExpectEquality(t, LoadConfiguration, CommandCode(0b000000))
	test.ExpectEquality(t, LoadDataForProgramMemory, CommandCode(0b000010))
	test.ExpectEquality(t, LoadDataForDataMemory, CommandCode(0b000011))
	test.ExpectEquality(t, ReadDataFromProgramMemory, CommandCode(0b000100))
	test.ExpectEquality(t, ReadDataFromDataMemory, CommandCode(0b000101))
	test.ExpectEquality(t, IncrementAddress, CommandCode(0b000110))
	test.ExpectEquality(t, BeginProgrammingInternallyTimed, CommandCode(0b001000))
	test.ExpectEquality(t, BeginProgrammingExternallyTimed, CommandCode(0b011000))
	test.ExpectEquality(t, EndProgramming, CommandCode(0b001010))
	test.ExpectEquality(t, BulkEraseProgramMemory, CommandCode(0b001001))
	test.ExpectEquality(t, BulkEraseDataMemory, CommandCode(0b001011))
}

func TestCommandCodeString(t *testing.T) {
	test.ExpectEquality(t, BeginProgrammingExternallyTimed.String(), "011000")
	test.ExpectEquality(t, LoadConfiguration.String(), "000000")
}

func TestBitsOrdering(t *testing.T) {
	// most significant bit at index 0
	b := bits(0b000110, CommandWidth)
	test.ExpectEquality(t, len(b), CommandWidth)

	expected := []bool{false, false, false, true, true, false}
	for i := range expected {
		test.ExpectEquality(t, b[i], expected[i])
	}
}

func TestValueOrdering(t *testing.T) {
	// least significant bit at index 0, the order in which bits are sampled
	// from the wire
	test.ExpectEquality(t, value([]bool{false, true, true, false, false, false}), uint16(0b000110))
}

func TestBitsValueReciprocity(t *testing.T) {
	// sending transmits from the end of the slice, so reception builds the
	// reverse of what bits() produced
	for _, v := range []uint16{0, 1, 0x155, 0x2aaa, 0x3fff} {
		b := bits(v, 14)

		wire := make([]bool, len(b))
		for i := range b {
			wire[i] = b[len(b)-1-i]
		}

		test.ExpectEquality(t, value(wire), v)
	}
}

func TestFrame(t *testing.T) {
	// bit 0 and bit 15 of a frame are the start and stop bits, always clear
	for _, v := range []uint16{0, 1, 0x1234, 0x3fff} {
		f := frame(v)
		test.ExpectEquality(t, f&1, uint16(0))
		test.ExpectEquality(t, f&0x8000, uint16(0))
		test.ExpectEquality(t, (f>>1)&0x3fff, v)
	}
}
