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

package chip

import (
	"github.com/calroc/gopic/hardware/bus"
	"github.com/calroc/gopic/hardware/icsp"
	"github.com/calroc/gopic/logger"
	"github.com/calroc/gopic/sim"
)

// memory geometry of the model. the address spaces are scaled to match the
// programmer's scaled OSCCAL address.
const (
	ProgramMemorySize = 1024
	DataMemorySize    = 128
	ConfigMemorySize  = 8
)

// erased values for the memory arrays.
const (
	ErasedWord uint16 = 0x3fff
	ErasedByte uint8  = 0xff
)

// which load latch was filled most recently. a begin-programming command
// programs the corresponding memory
type latchKind int

const (
	latchNone latchKind = iota
	latchProgram
	latchData
)

// Chip models the ICSP slave state machine of a PIC12F675: the command shift
// register, the address counter, the load latches and the memory arrays. It
// sits on the far side of the Bus from the Programmer and is used by the
// simulation mode and by tests.
type Chip struct {
	bus *bus.Bus

	ProgramMemory []uint16
	DataMemory    []uint8

	// configuration memory: the four ID words at 0..3, reserved words at
	// 4..6 and the band gap word at 7
	ConfigMemory []uint16

	// CorruptWrites makes every programmed word read back off by one. For
	// exercising the programmer's write verification
	CorruptWrites bool

	// History records every decoded command in arrival order
	History []icsp.CommandCode

	addr       int
	configMode bool
	latch      uint16
	dataLatch  uint8
	loaded     latchKind

	// incremented on every power loss. readCommand discards bits sampled
	// before the most recent power cycle; the programmer's shutdown sequence
	// produces one strobe pulse after the last complete command
	resets int
}

// NewChip creates a chip model with erased memories, a plausible factory
// calibration word at the OSCCAL address and factory identity words in
// configuration memory.
func NewChip(b *bus.Bus) *Chip {
	c := &Chip{
		bus:           b,
		ProgramMemory: make([]uint16, ProgramMemorySize),
		DataMemory:    make([]uint8, DataMemorySize),
		ConfigMemory:  make([]uint16, ConfigMemorySize),
	}

	for i := range c.ProgramMemory {
		c.ProgramMemory[i] = ErasedWord
	}
	for i := range c.DataMemory {
		c.DataMemory[i] = ErasedByte
	}
	for i := range c.ConfigMemory {
		c.ConfigMemory[i] = ErasedWord
	}

	// OSCCAL is stored as a RETLW instruction with the calibration value in
	// the low byte
	c.ProgramMemory[icsp.OSCCALAddress] = 0x3468

	// factory ID words and band gap
	c.ConfigMemory[0] = 0x0051
	c.ConfigMemory[1] = 0x0023
	c.ConfigMemory[2] = 0x0006
	c.ConfigMemory[3] = 0x0075
	c.ConfigMemory[7] = 0x3ffc

	return c
}

// Addr returns the current value of the address counter.
func (c *Chip) Addr() int {
	return c.addr
}

// ConfigMode returns true while the address counter points into
// configuration memory.
func (c *Chip) ConfigMode() bool {
	return c.configMode
}

// CommandCount returns the number of times the command has been decoded.
func (c *Chip) CommandCount(cmd icsp.CommandCode) int {
	n := 0
	for _, h := range c.History {
		if h == cmd {
			n++
		}
	}
	return n
}

// Run is the chip process. It decodes commands from the bus and serves them
// forever; it is released when the session ends.
func (c *Chip) Run(p *sim.Proc) error {
	for {
		cmd := c.readCommand(p)
		c.History = append(c.History, cmd)
		c.execute(p, cmd)
	}
}

// WatchPower resets the chip state machine whenever power is removed. Runs
// as a companion process to Run().
func (c *Chip) WatchPower(p *sim.Proc) error {
	for {
		p.WaitNegedge(c.bus.Power)
		c.resets++
		c.addr = 0
		c.configMode = false
		c.latch = ErasedWord
		c.dataLatch = ErasedByte
		c.loaded = latchNone
	}
}

// readCommand shifts in the six command bits, sampling the data line on
// strobe falling edges.
func (c *Chip) readCommand(p *sim.Proc) icsp.CommandCode {
	var cmd icsp.CommandCode
	gen := c.resets

	i := 0
	for i < icsp.CommandWidth {
		p.WaitNegedge(c.bus.Strobe)

		// bits sampled before a power cycle belong to no command
		if gen != c.resets {
			gen = c.resets
			cmd = 0
			i = 0
		}

		if c.bus.Data.Get() {
			cmd |= 1 << i
		}
		i++
	}
	return cmd
}

// readFrame shifts in a 16-bit frame and returns the 14-bit payload.
func (c *Chip) readFrame(p *sim.Proc) uint16 {
	var frame uint16
	for i := 0; i < 16; i++ {
		p.WaitNegedge(c.bus.Strobe)
		if c.bus.Data.Get() {
			frame |= 1 << i
		}
	}
	return (frame >> 1) & 0x3fff
}

// writeFrame drives a 14-bit payload onto the data line as a 16-bit frame,
// one bit per strobe rising edge. The programmer samples on the following
// falling edges.
func (c *Chip) writeFrame(p *sim.Proc, payload uint16) {
	frame := (payload << 1) & 0xffff
	for i := 0; i < 16; i++ {
		p.WaitPosedge(c.bus.Strobe)
		c.bus.Data.Schedule(frame&(1<<i) != 0)
	}

	// the frame occupies the whole of the final strobe pulse. without this
	// the falling edge of that pulse would be mistaken for the first bit of
	// the next command
	p.WaitNegedge(c.bus.Strobe)
}

func (c *Chip) execute(p *sim.Proc, cmd icsp.CommandCode) {
	switch cmd {
	case icsp.LoadConfiguration:
		// entering configuration memory also loads the latch
		c.configMode = true
		c.addr = 0
		c.latch = c.readFrame(p)
		c.loaded = latchProgram

	case icsp.LoadDataForProgramMemory:
		c.latch = c.readFrame(p)
		c.loaded = latchProgram

	case icsp.LoadDataForDataMemory:
		c.dataLatch = uint8(c.readFrame(p))
		c.loaded = latchData

	case icsp.IncrementAddress:
		c.addr++

	case icsp.EndProgramming:
		// only meaningful for externally timed programming, which the model
		// treats the same as internally timed

	case icsp.ReadDataFromProgramMemory:
		c.writeFrame(p, c.currentWord())

	case icsp.ReadDataFromDataMemory:
		c.writeFrame(p, uint16(c.DataMemory[c.addr%len(c.DataMemory)]))

	case icsp.BeginProgrammingInternallyTimed, icsp.BeginProgrammingExternallyTimed:
		c.program()

	case icsp.BulkEraseProgramMemory:
		// from configuration memory the erase also wipes the identity words
		for i := range c.ProgramMemory {
			c.ProgramMemory[i] = ErasedWord
		}
		if c.configMode {
			for i := range c.ConfigMemory {
				c.ConfigMemory[i] = ErasedWord
			}
		}

	case icsp.BulkEraseDataMemory:
		for i := range c.DataMemory {
			c.DataMemory[i] = ErasedByte
		}

	default:
		logger.Logf("chip", "unknown command %s", cmd)
	}
}

func (c *Chip) currentWord() uint16 {
	if c.configMode {
		return c.ConfigMemory[c.addr%len(c.ConfigMemory)]
	}
	return c.ProgramMemory[c.addr%len(c.ProgramMemory)]
}

func (c *Chip) program() {
	switch c.loaded {
	case latchProgram:
		w := c.latch
		if c.CorruptWrites {
			w = (w + 1) & 0x3fff
		}
		if c.configMode {
			c.ConfigMemory[c.addr%len(c.ConfigMemory)] = w
		} else {
			c.ProgramMemory[c.addr%len(c.ProgramMemory)] = w
		}

	case latchData:
		b := c.dataLatch
		if c.CorruptWrites {
			b++
		}
		c.DataMemory[c.addr%len(c.DataMemory)] = b

	case latchNone:
		logger.Log("chip", "begin programming with no loaded latch")
	}
}
