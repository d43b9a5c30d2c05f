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
)

// RunState is the lifecycle state of the programmer.
type RunState int

// List of valid RunState values. Reset() is ShuttingDown immediately followed
// by re-entry to Running.
const (
	Uninitialized RunState = iota
	Running
	ShuttingDown
)

func (r RunState) String() string {
	switch r {
	case Uninitialized:
		return "Uninitialized"
	case Running:
		return "Running"
	case ShuttingDown:
		return "ShuttingDown"
	}
	panic("unknown run state")
}

// Preferences for optional programmer behaviour.
type Preferences struct {
	// ValidateOSCCAL checks the OSCCAL word read from the device against the
	// RETLW opcode mask. A factory-calibrated part always stores OSCCAL as a
	// RETLW instruction so a failed check suggests the calibration word has
	// been lost. The check is off by default: some chip revisions are
	// reported to fail it even with a healthy calibration word
	ValidateOSCCAL bool
}

// Identity is the set of factory-programmed words read from the device
// before a bulk erase is permitted.
type Identity struct {
	OSCCAL  uint16
	ID      [4]uint16
	BandGap uint16
}

// Programmer drives the ICSP protocol over a Bus. The layers of the protocol
// are split across files: bit transport in transport.go, command framing in
// framing.go, the command set in commands.go and the device sequences in
// sequences.go.
type Programmer struct {
	bus *bus.Bus

	Prefs Preferences

	state RunState

	// identity words cached by ReadOSCCAL() and ReadIDAndBandGap()
	osccal    uint16
	osccalOK  bool
	id        [4]uint16
	idOK      bool
	bandGap   uint16
	bandGapOK bool
}

// NewProgrammer is the preferred method of initialisation for the Programmer
// type.
func NewProgrammer(b *bus.Bus) *Programmer {
	return &Programmer{bus: b}
}

// State returns the lifecycle state of the programmer.
func (pgm *Programmer) State() RunState {
	return pgm.state
}

// Identity returns the cached identity words. The second return value is
// false until both ReadOSCCAL() and ReadIDAndBandGap() have completed.
func (pgm *Programmer) Identity() (Identity, bool) {
	if !pgm.osccalOK || !pgm.idOK || !pgm.bandGapOK {
		return Identity{}, false
	}
	return Identity{
		OSCCAL:  pgm.osccal,
		ID:      pgm.id,
		BandGap: pgm.bandGap,
	}, true
}
