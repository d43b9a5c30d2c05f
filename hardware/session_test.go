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

package hardware_test

import (
	"testing"

	"github.com/calroc/gopic/curated"
	"github.com/calroc/gopic/hardware"
	"github.com/calroc/gopic/hardware/bus"
	"github.com/calroc/gopic/hardware/chip"
	"github.com/calroc/gopic/hardware/icsp"
	"github.com/calroc/gopic/ports"
	"github.com/calroc/gopic/sim"
	"github.com/calroc/gopic/test"
)

func TestIdentify(t *testing.T) {
	session := hardware.NewSession(nil)
	session.AttachChip()

	_, ok := session.Programmer.Identity()
	test.ExpectEquality(t, ok, false)

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}
		test.ExpectEquality(t, prog.State(), icsp.Running)

		if err := prog.ReadOSCCAL(p); err != nil {
			return err
		}
		if err := prog.ReadIDAndBandGap(p); err != nil {
			return err
		}
		return prog.Shutdown(p)
	})
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, session.Programmer.State(), icsp.Uninitialized)

	id, ok := session.Programmer.Identity()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, id.OSCCAL, uint16(0x3468))
	test.ExpectEquality(t, id.ID, [4]uint16{0x0051, 0x0023, 0x0006, 0x0075})
	test.ExpectEquality(t, id.BandGap, uint16(0x3ffc))
}

func TestProgramCycle(t *testing.T) {
	session := hardware.NewSession(nil)
	chp := session.AttachChip()

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}
		if err := prog.ProgramCycle(p, 0x1234); err != nil {
			return err
		}
		if err := prog.ProgramCycle(p, 0x0fff); err != nil {
			return err
		}
		return prog.Shutdown(p)
	})
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, chp.ProgramMemory[0], uint16(0x1234))
	test.ExpectEquality(t, chp.ProgramMemory[1], uint16(0x0fff))
}

func TestProgramCycleAdvancesAddress(t *testing.T) {
	session := hardware.NewSession(nil)
	chp := session.AttachChip()

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}
		if err := prog.ProgramCycle(p, 0x2aaa); err != nil {
			return err
		}

		// the address counter has moved on by exactly one
		test.ExpectEquality(t, chp.Addr(), 1)
		return nil
	})
	test.ExpectSuccess(t, err)
}

func TestProgramCycleFaultyWrite(t *testing.T) {
	session := hardware.NewSession(nil)
	chp := session.AttachChip()
	chp.CorruptWrites = true

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}
		return prog.ProgramCycle(p, 0x1234)
	})
	test.ExpectFailure(t, err)
	if !curated.Is(err, icsp.FaultyWrite) {
		t.Errorf("expected faulty write error, got: %v", err)
	}

	// the failed cycle must not advance the address counter, and the
	// increment command was never put on the wire
	test.ExpectEquality(t, chp.Addr(), 0)
	test.ExpectEquality(t, chp.CommandCount(icsp.IncrementAddress), 0)
}

func TestReadOSCCALValidation(t *testing.T) {
	// the factory calibration word is a RETLW instruction and passes
	session := hardware.NewSession(nil)
	session.AttachChip()
	session.Programmer.Prefs.ValidateOSCCAL = true

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}
		return prog.ReadOSCCAL(p)
	})
	test.ExpectSuccess(t, err)

	// a clobbered calibration word fails
	session = hardware.NewSession(nil)
	chp := session.AttachChip()
	chp.ProgramMemory[icsp.OSCCALAddress] = 0x0123
	session.Programmer.Prefs.ValidateOSCCAL = true

	err = session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}
		return prog.ReadOSCCAL(p)
	})
	test.ExpectFailure(t, err)
	if !curated.Is(err, icsp.InvalidOSCCAL) {
		t.Errorf("expected invalid OSCCAL error, got: %v", err)
	}

	// without the preference the same word is accepted
	session = hardware.NewSession(nil)
	chp = session.AttachChip()
	chp.ProgramMemory[icsp.OSCCALAddress] = 0x0123

	err = session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}
		return prog.ReadOSCCAL(p)
	})
	test.ExpectSuccess(t, err)
}

func TestBulkEraseRequiresIdentity(t *testing.T) {
	session := hardware.NewSession(nil)
	session.AttachChip()

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}

		// nothing read yet. OSCCAL is reported missing first
		err := prog.BulkEraseDevice(p)
		test.ExpectFailure(t, err)
		test.ExpectEquality(t, err.Error(), "icsp: bulk erase: OSCCAL has not been read from the device")

		// with OSCCAL cached the ID words are the next complaint
		if err := prog.ReadOSCCAL(p); err != nil {
			return err
		}
		err = prog.BulkEraseDevice(p)
		test.ExpectFailure(t, err)
		test.ExpectEquality(t, err.Error(), "icsp: bulk erase: ID has not been read from the device")

		return nil
	})
	test.ExpectSuccess(t, err)
}

func TestCleanDevice(t *testing.T) {
	session := hardware.NewSession(nil)
	chp := session.AttachChip()
	chp.ProgramMemory[0] = 0x0123
	chp.DataMemory[5] = 0x42

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}
		if err := prog.CleanDevice(p); err != nil {
			return err
		}
		return prog.Shutdown(p)
	})
	test.ExpectSuccess(t, err)

	// all memories erased, including the calibration word and identity
	test.ExpectEquality(t, chp.ProgramMemory[0], chip.ErasedWord)
	test.ExpectEquality(t, chp.ProgramMemory[icsp.OSCCALAddress], chip.ErasedWord)
	test.ExpectEquality(t, chp.ConfigMemory[0], chip.ErasedWord)
	test.ExpectEquality(t, chp.DataMemory[5], chip.ErasedByte)

	// but the identity survives in the programmer's cache
	id, ok := session.Programmer.Identity()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, id.OSCCAL, uint16(0x3468))
}

func TestReadIDAndBandGapCommandSequence(t *testing.T) {
	session := hardware.NewSession(nil)
	chp := session.AttachChip()

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}
		return prog.ReadIDAndBandGap(p)
	})
	test.ExpectSuccess(t, err)

	expected := []icsp.CommandCode{
		icsp.LoadConfiguration,
		icsp.ReadDataFromProgramMemory, icsp.IncrementAddress,
		icsp.ReadDataFromProgramMemory, icsp.IncrementAddress,
		icsp.ReadDataFromProgramMemory, icsp.IncrementAddress,
		icsp.ReadDataFromProgramMemory, icsp.IncrementAddress,
		icsp.IncrementAddress, icsp.IncrementAddress, icsp.IncrementAddress,
		icsp.ReadDataFromProgramMemory,
	}

	test.DemandEquality(t, len(chp.History), len(expected))
	for i := range expected {
		test.ExpectEquality(t, chp.History[i], expected[i])
	}
}

func TestLoadAndReadDataMemory(t *testing.T) {
	session := hardware.NewSession(nil)
	chp := session.AttachChip()

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}

		if err := prog.LoadData(p, 0x5a); err != nil {
			return err
		}
		if err := prog.BeginProgram(p); err != nil {
			return err
		}

		var output []uint8
		if err := prog.ReadData(p, &output); err != nil {
			return err
		}
		test.ExpectEquality(t, len(output), 1)
		if len(output) == 1 {
			test.ExpectEquality(t, output[0], uint8(0x5a))
		}

		return nil
	})
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, chp.DataMemory[0], uint8(0x5a))
}

func TestCommandLabelPublished(t *testing.T) {
	session := hardware.NewSession(nil)
	session.AttachChip()

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}
		test.ExpectEquality(t, session.Bus.Label.Get(), bus.None)

		// the label is committed no later than the command's completion
		if err := prog.IncrementAddress(p); err != nil {
			return err
		}
		test.ExpectEquality(t, session.Bus.Label.Get(), bus.IncrementAddress)

		if err := prog.EndProgramming(p); err != nil {
			return err
		}
		test.ExpectEquality(t, session.Bus.Label.Get(), bus.EndProgramming)

		var output []uint16
		if err := prog.ReadProgram(p, &output); err != nil {
			return err
		}
		test.ExpectEquality(t, session.Bus.Label.Get(), bus.ReadProgram)
		test.ExpectEquality(t, session.Bus.Transport.Get(), bus.Rx)

		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, session.Chip.CommandCount(icsp.EndProgramming), 1)
}

func TestBusQuiescentAfterShutdown(t *testing.T) {
	sink := ports.NewLog()
	session := hardware.NewSession(sink)
	session.AttachChip()

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		if err := prog.Start(p); err != nil {
			return err
		}
		if err := prog.IncrementAddress(p); err != nil {
			return err
		}
		return prog.Shutdown(p)
	})
	test.ExpectSuccess(t, err)

	// every line low once the session is over
	test.ExpectEquality(t, session.Bus.Composite(), uint8(0))

	// the sink saw real traffic
	if sink.Count == 0 {
		t.Errorf("no port values reached the sink")
	}
}

func TestSessionRunsOnce(t *testing.T) {
	session := hardware.NewSession(nil)
	session.AttachChip()

	err := session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		return nil
	})
	test.ExpectSuccess(t, err)

	err = session.Run(func(p *sim.Proc, prog *icsp.Programmer) error {
		return nil
	})
	test.ExpectFailure(t, err)
	if !curated.Is(err, sim.AlreadyRun) {
		t.Errorf("expected already-run error, got: %v", err)
	}
}
