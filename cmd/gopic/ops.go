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

package main

import (
	"fmt"

	"github.com/calroc/gopic/curated"
	"github.com/calroc/gopic/hardware"
	"github.com/calroc/gopic/hardware/icsp"
	"github.com/calroc/gopic/sim"
)

// sentinel error for an operation name that runOp does not recognise.
const UnknownOp = "gopic: unknown operation: %s"

// runOp drives a session through the named operation. "identify" reads the
// calibration and identity words and leaves the device untouched. "clean"
// additionally erases program and data memory.
func runOp(session *hardware.Session, op string) error {
	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}

		switch op {
		case "identify":
			if err := prog.ReadOSCCAL(p); err != nil {
				return err
			}
			if err := prog.ReadIDAndBandGap(p); err != nil {
				return err
			}
		case "clean":
			if err := prog.CleanDevice(p); err != nil {
				return err
			}
		default:
			return curated.Errorf(UnknownOp, op)
		}

		return prog.Shutdown(p)
	})
	if err != nil {
		return err
	}

	id, ok := session.Programmer.Identity()
	if !ok {
		return nil
	}

	fmt.Printf("OSCCAL:   %#04x\n", id.OSCCAL)
	fmt.Printf("ID:       %04x %04x %04x %04x\n", id.ID[0], id.ID[1], id.ID[2], id.ID[3])
	fmt.Printf("band gap: %#04x\n", id.BandGap)

	return nil
}
