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
	"github.com/calroc/gopic/sim"
)

// bits unpacks the low width bits of v into a slice with the most significant
// bit at index 0.
func bits(v uint16, width int) []bool {
	b := make([]bool, width)
	for i := 0; i < width; i++ {
		b[width-1-i] = v&(1<<i) != 0
	}
	return b
}

// value packs a least-significant-first bit sequence into an integer. bit i
// of the sequence contributes 2^i.
func value(b []bool) uint16 {
	var v uint16
	for i := range b {
		if b[i] {
			v |= 1 << i
		}
	}
	return v
}

// sendBits sends the bit sequence serially over the data line, one bit per
// strobe rising edge, least significant bit (index len-1) first.
//
// The caller must ensure the strobe is pulsing (StrobeEnable true) for the
// duration of the call. If it is not, the process suspends forever waiting
// for an edge that never comes.
func (pgm *Programmer) sendBits(p *sim.Proc, b []bool) {
	for i := len(b) - 1; i >= 0; i-- {
		p.WaitPosedge(pgm.bus.Strobe)
		if i == len(b)-1 {
			pgm.bus.Transport.Schedule(bus.Tx)
		}
		pgm.bus.Data.Schedule(b[i])
	}
}

// readBits reads n bits from the data line, sampling on strobe falling
// edges. The returned sequence is in sampling order: bit 0 is the first bit
// sampled. Each sampled value is also written back onto the data line so
// that received data appears in the waveform trace.
func (pgm *Programmer) readBits(p *sim.Proc, n int) []bool {
	p.WaitPosedge(pgm.bus.Strobe)
	pgm.bus.Transport.Schedule(bus.Rx)

	res := make([]bool, 0, n)
	for i := 0; i < n; i++ {
		p.WaitNegedge(pgm.bus.Strobe)
		b := pgm.bus.Data.Get()
		pgm.bus.Data.Schedule(b)
		res = append(res, b)
	}
	return res
}

// rest pauses the programmer and holds the strobe low for the given number of
// clock cycles, supporting the chip's internally timed wait states. A
// concurrent process can cut a rest short by moving the transport state away
// from Rest; the wait loop checks for this before each additional cycle.
// Strobe-enable is restored on exit regardless.
//
// A cycles value of less than one is a no-op: no signal is touched.
func (pgm *Programmer) rest(p *sim.Proc, cycles int) {
	if cycles < 1 {
		return
	}

	pgm.bus.StrobeEnable.Schedule(false)
	p.WaitPosedge(pgm.bus.Clock)

	pgm.bus.Transport.Schedule(bus.Rest)
	pgm.bus.Data.Schedule(false)
	cycles--
	p.WaitNegedge(pgm.bus.Clock)

	for pgm.bus.Transport.Get() == bus.Rest && cycles > 0 {
		p.WaitPosedge(pgm.bus.Clock)
		cycles--
	}

	pgm.bus.StrobeEnable.Schedule(true)
}
