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
	"github.com/calroc/gopic/hardware/bus"
	"github.com/calroc/gopic/logger"
	"github.com/calroc/gopic/sim"
)

// sentinel error for a programmed word that does not read back as written.
// A failed write aborts the enclosing sequence; there is deliberately no
// retry.
const FaultyWrite = "icsp: faulty write: wrote %#04x, read back %#04x"

// sentinel error for an OSCCAL word that fails the RETLW opcode check. Only
// raised when Preferences.ValidateOSCCAL is set.
const InvalidOSCCAL = "icsp: invalid OSCCAL word %#04x"

// sentinel error for a bulk erase attempted before the named identity
// attribute has been read from the device.
const MissingAttribute = "icsp: bulk erase: %s has not been read from the device"

// the address of the OSCCAL word in this scaled-down memory model. the real
// device stores it at 0x3ff.
const OSCCALAddress = 3

// masks for the optional OSCCAL sanity check. a factory-calibrated part
// stores OSCCAL as a RETLW instruction.
const (
	osccalMask = 0b11110000000000
	retlwMask  = 0b11010000000000
)

// Start powers the chip up into programming mode. Program-mode is asserted
// before power, which is asserted before the strobe is enabled. The ordering
// is mandated by the programming specification.
func (pgm *Programmer) Start(p *sim.Proc) error {
	logger.Log("icsp", "startup commencing")

	// quiesce the bus
	pgm.bus.Strobe.Schedule(false)
	pgm.bus.Data.Schedule(false)
	pgm.bus.Power.Schedule(false)
	pgm.bus.Program.Schedule(false)

	// activate programming mode
	p.WaitPosedge(pgm.bus.Clock)
	pgm.bus.Program.Schedule(true)

	pgm.bus.Transport.Schedule(bus.Rest)
	pgm.bus.Label.Schedule(bus.None)

	// power the chip
	p.WaitPosedge(pgm.bus.Clock)
	pgm.bus.Power.Schedule(true)

	// activate the chip strobe
	p.WaitPosedge(pgm.bus.Clock)
	pgm.bus.StrobeEnable.Schedule(true)

	pgm.state = Running
	logger.Log("icsp", "startup finished")
	return nil
}

// Shutdown powers the chip down, mirroring Start() in reverse.
func (pgm *Programmer) Shutdown(p *sim.Proc) error {
	logger.Log("icsp", "shutdown commencing")
	pgm.state = ShuttingDown

	p.WaitPosedge(pgm.bus.Clock)

	pgm.bus.Transport.Schedule(bus.Rest)
	pgm.bus.Label.Schedule(bus.None)
	pgm.bus.Data.Schedule(false)
	pgm.bus.StrobeEnable.Schedule(false)

	// deactivate programming mode
	p.WaitPosedge(pgm.bus.Clock)
	pgm.bus.Program.Schedule(false)

	// cut the power
	p.WaitPosedge(pgm.bus.Clock)
	pgm.bus.Power.Schedule(false)

	p.WaitPosedge(pgm.bus.Clock)

	pgm.state = Uninitialized
	logger.Log("icsp", "shutdown finished")
	return nil
}

// Reset is a Shutdown() followed by a Start(), sequentially.
func (pgm *Programmer) Reset(p *sim.Proc) error {
	logger.Log("icsp", "reset commencing")
	if err := pgm.Shutdown(p); err != nil {
		return err
	}
	if err := pgm.Start(p); err != nil {
		return err
	}
	logger.Log("icsp", "reset finished")
	return nil
}

// ProgramCycle writes a word to program memory at the current address,
// verifies it by reading it back, and advances the address counter. A
// mismatch on read-back raises the FaultyWrite error and the address counter
// is left untouched.
func (pgm *Programmer) ProgramCycle(p *sim.Proc, data uint16) error {
	if err := pgm.LoadProgram(p, data); err != nil {
		return err
	}
	if err := pgm.BeginProgram(p); err != nil {
		return err
	}

	var output []uint16
	if err := pgm.ReadProgram(p, &output); err != nil {
		return err
	}
	if output[0] != data {
		return curated.Errorf(FaultyWrite, data, output[0])
	}

	return pgm.IncrementAddress(p)
}

// ReadOSCCAL resets the chip, walks the address counter to the OSCCAL word
// and caches it. The optional RETLW sanity check is applied when
// Preferences.ValidateOSCCAL is set.
func (pgm *Programmer) ReadOSCCAL(p *sim.Proc) error {
	if err := pgm.Reset(p); err != nil {
		return err
	}

	for i := 0; i < OSCCALAddress; i++ {
		if err := pgm.IncrementAddress(p); err != nil {
			return err
		}
	}

	var output []uint16
	if err := pgm.ReadProgram(p, &output); err != nil {
		return err
	}

	osccal := output[0]

	if pgm.Prefs.ValidateOSCCAL {
		if osccal&osccalMask != retlwMask {
			return curated.Errorf(InvalidOSCCAL, osccal)
		}
	}

	pgm.osccal = osccal
	pgm.osccalOK = true
	logger.Logf("icsp", "OSCCAL = %#04x", osccal)
	return nil
}

// ReadIDAndBandGap resets the chip, enters configuration memory and caches
// the four ID words and the band gap word.
func (pgm *Programmer) ReadIDAndBandGap(p *sim.Proc) error {
	if err := pgm.Reset(p); err != nil {
		return err
	}

	if err := pgm.LoadConfig(p, 0); err != nil {
		return err
	}

	var output []uint16

	// the four ID words
	for i := 0; i < 4; i++ {
		if err := pgm.ReadProgram(p, &output); err != nil {
			return err
		}
		if err := pgm.IncrementAddress(p); err != nil {
			return err
		}
	}

	// skip the reserved words
	for i := 0; i < 3; i++ {
		if err := pgm.IncrementAddress(p); err != nil {
			return err
		}
	}

	// the band gap word
	if err := pgm.ReadProgram(p, &output); err != nil {
		return err
	}

	copy(pgm.id[:], output[:4])
	pgm.idOK = true
	pgm.bandGap = output[len(output)-1]
	pgm.bandGapOK = true

	logger.Logf("icsp", "ID = %#04x %#04x %#04x %#04x", pgm.id[0], pgm.id[1], pgm.id[2], pgm.id[3])
	logger.Logf("icsp", "band gap = %#04x", pgm.bandGap)
	return nil
}

// BulkEraseDevice erases both program and data memory. The identity words
// must have been read and cached first; erasing them without a cached copy
// would lose the factory calibration forever.
func (pgm *Programmer) BulkEraseDevice(p *sim.Proc) error {
	if !pgm.osccalOK {
		return curated.Errorf(MissingAttribute, "OSCCAL")
	}
	if !pgm.idOK {
		return curated.Errorf(MissingAttribute, "ID")
	}
	if !pgm.bandGapOK {
		return curated.Errorf(MissingAttribute, "BandGap")
	}

	if err := pgm.EraseProgram(p); err != nil {
		return err
	}
	return pgm.EraseData(p)
}

// CleanDevice reads and caches the device identity and then erases the
// device: ReadOSCCAL(), ReadIDAndBandGap() and BulkEraseDevice(),
// sequentially.
func (pgm *Programmer) CleanDevice(p *sim.Proc) error {
	if err := pgm.ReadOSCCAL(p); err != nil {
		return err
	}
	if err := pgm.ReadIDAndBandGap(p); err != nil {
		return err
	}
	return pgm.BulkEraseDevice(p)
}
