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
	"github.com/calroc/gopic/curated"
	"github.com/calroc/gopic/sim"
)

// sentinel error for an operand too wide for its field. Indicates a bug in
// the caller, never a transient condition.
const TooWide = "icsp: %s: value %#x too wide for %d bits"

// sentinel error for a received frame whose start or stop bit is not clear.
const BadFrame = "icsp: bad frame: start/stop bits not clear"

// width limits for framing operands.
const (
	maxCommand = 1 << CommandWidth
	maxData    = 1 << 14
)

// frame builds the 16-bit serial frame for a payload: the payload shifted one
// bit left, leaving bit 0 and bit 15 clear as start and stop bits. An 8-bit
// payload occupies the low end of the 14-bit field with the remaining frame
// bits as padding.
func frame(payload uint16) uint16 {
	return (payload << 1) & 0xffff
}

// sendCommandAndData sends a command followed by a framed 14-bit payload.
func (pgm *Programmer) sendCommandAndData(p *sim.Proc, cmd CommandCode, data uint16) error {
	if cmd >= maxCommand {
		return curated.Errorf(TooWide, "command", int(cmd), CommandWidth)
	}
	if data >= maxData {
		return curated.Errorf(TooWide, "data", int(data), 14)
	}

	pgm.sendBits(p, bits(uint16(cmd), CommandWidth))
	pgm.sendBits(p, bits(frame(data), 16))
	return nil
}

// sendCommandAndByteData sends a command followed by a framed 8-bit payload.
func (pgm *Programmer) sendCommandAndByteData(p *sim.Proc, cmd CommandCode, data uint8) error {
	if cmd >= maxCommand {
		return curated.Errorf(TooWide, "command", int(cmd), CommandWidth)
	}

	pgm.sendBits(p, bits(uint16(cmd), CommandWidth))
	pgm.sendBits(p, bits(frame(uint16(data)), 16))
	return nil
}

// sendCommand sends a command with no payload.
func (pgm *Programmer) sendCommand(p *sim.Proc, cmd CommandCode) error {
	if cmd >= maxCommand {
		return curated.Errorf(TooWide, "command", int(cmd), CommandWidth)
	}

	pgm.sendBits(p, bits(uint16(cmd), CommandWidth))
	return nil
}

// sendCommandAndReadData sends a command, reads a 16-bit frame back, checks
// the framing bits and appends the 14-bit payload to output.
func (pgm *Programmer) sendCommandAndReadData(p *sim.Proc, cmd CommandCode, output *[]uint16) error {
	if cmd >= maxCommand {
		return curated.Errorf(TooWide, "command", int(cmd), CommandWidth)
	}

	pgm.sendBits(p, bits(uint16(cmd), CommandWidth))

	res := pgm.readBits(p, 16)
	if res[0] || res[15] {
		return curated.Errorf(BadFrame)
	}

	*output = append(*output, value(res[1:15]))
	return nil
}

// sendCommandAndReadByteData sends a command, reads a 16-bit frame back,
// checks the framing bits and appends the 8-bit payload to output. The
// payload sits in the low end of the frame's data field; the remaining bits
// are padding and are discarded.
func (pgm *Programmer) sendCommandAndReadByteData(p *sim.Proc, cmd CommandCode, output *[]uint8) error {
	if cmd >= maxCommand {
		return curated.Errorf(TooWide, "command", int(cmd), CommandWidth)
	}

	pgm.sendBits(p, bits(uint16(cmd), CommandWidth))

	res := pgm.readBits(p, 16)
	if res[0] || res[15] {
		return curated.Errorf(BadFrame)
	}

	*output = append(*output, uint8(value(res[1:9])))
	return nil
}

// the chip's internally-timed programming and erase wait windows, in clock
// cycles.
const restCycles = 3

// Tprog waits out the chip's internally timed programming window.
func (pgm *Programmer) Tprog(p *sim.Proc) {
	pgm.rest(p, restCycles)
}

// Terase waits out the chip's internally timed erase window.
func (pgm *Programmer) Terase(p *sim.Proc) {
	pgm.rest(p, restCycles)
}
