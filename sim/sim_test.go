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

package sim_test

import (
	"testing"

	"github.com/calroc/gopic/curated"
	"github.com/calroc/gopic/sim"
	"github.com/calroc/gopic/test"
)

func TestScheduledValueNotVisibleUntilCommit(t *testing.T) {
	s := sim.NewScheduler()
	sig := s.NewSignal("sig")

	err := s.Run("main", func(p *sim.Proc) error {
		sig.Schedule(true)

		// the new value commits at the end of the delta cycle, not before
		test.ExpectEquality(t, sig.Get(), false)

		p.WaitPosedge(sig)
		test.ExpectEquality(t, sig.Get(), true)

		return nil
	})
	test.ExpectSuccess(t, err)
}

func TestCommitIsAtomic(t *testing.T) {
	s := sim.NewScheduler()
	a := s.NewSignal("a")
	b := s.NewSignal("b")

	// the second process is resumed after the first but before the commit, so
	// it must not see the first process's write
	err := s.Run("main", func(p *sim.Proc) error {
		fa := p.Fork("writer", func(p *sim.Proc) error {
			a.Schedule(true)
			return nil
		})
		fb := p.Fork("reader", func(p *sim.Proc) error {
			b.Schedule(a.Get())
			return nil
		})

		if err := fa.Wait(p); err != nil {
			return err
		}
		if err := fb.Wait(p); err != nil {
			return err
		}

		p.WaitPosedge(a)
		test.ExpectEquality(t, a.Get(), true)
		test.ExpectEquality(t, b.Get(), false)

		return nil
	})
	test.ExpectSuccess(t, err)
}

func TestConflictingDriversPanic(t *testing.T) {
	s := sim.NewScheduler()
	sig := s.NewSignal("sig")

	recovered := false
	err := s.Run("main", func(p *sim.Proc) error {
		defer func() {
			if r := recover(); r != nil {
				recovered = true
			}
		}()

		sig.Schedule(true)
		sig.Schedule(false)
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, recovered, true)
}

func TestAgreeingDriversDoNotPanic(t *testing.T) {
	s := sim.NewScheduler()
	sig := s.NewSignal("sig")

	err := s.Run("main", func(p *sim.Proc) error {
		// two writes of the same value in the same delta cycle are fine
		sig.Schedule(true)
		sig.Schedule(true)
		p.WaitPosedge(sig)
		return nil
	})
	test.ExpectSuccess(t, err)
}

func TestForkJoin(t *testing.T) {
	s := sim.NewScheduler()

	childRan := false
	err := s.Run("main", func(p *sim.Proc) error {
		j := p.Fork("child", func(p *sim.Proc) error {
			p.WaitPosedge(s.Clock())
			childRan = true
			return nil
		})
		return j.Wait(p)
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, childRan, true)
}

func TestForkJoinError(t *testing.T) {
	s := sim.NewScheduler()

	err := s.Run("main", func(p *sim.Proc) error {
		j := p.Fork("child", func(p *sim.Proc) error {
			return curated.Errorf("child: %s", "deliberate")
		})
		return j.Wait(p)
	})
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, err.Error(), "child: deliberate")
}

func TestCycleLimit(t *testing.T) {
	s := sim.NewScheduler()
	s.SetCycleLimit(5)

	err := s.Run("main", func(p *sim.Proc) error {
		for {
			p.WaitPosedge(s.Clock())
		}
	})
	test.ExpectFailure(t, err)
	if !curated.Is(err, sim.CycleLimit) {
		t.Errorf("expected cycle limit error, got: %v", err)
	}
	test.ExpectEquality(t, s.Cycles(), 5)
}

func TestSchedulerRunsOnce(t *testing.T) {
	s := sim.NewScheduler()

	err := s.Run("main", func(p *sim.Proc) error {
		return nil
	})
	test.ExpectSuccess(t, err)

	err = s.Run("main", func(p *sim.Proc) error {
		return nil
	})
	test.ExpectFailure(t, err)
	if !curated.Is(err, sim.AlreadyRun) {
		t.Errorf("expected already-run error, got: %v", err)
	}
}

func TestBackgroundProcessReleased(t *testing.T) {
	s := sim.NewScheduler()

	// a background process that never completes must not stop Run() from
	// returning when the main process does
	s.Spawn("background", func(p *sim.Proc) error {
		for {
			p.WaitPosedge(s.Clock())
		}
	})

	err := s.Run("main", func(p *sim.Proc) error {
		p.WaitPosedge(s.Clock())
		p.WaitPosedge(s.Clock())
		return nil
	})
	test.ExpectSuccess(t, err)
}

type phase int

func (ph phase) String() string {
	if ph == 0 {
		return "idle"
	}
	return "busy"
}

func TestRegisterPendingSemantics(t *testing.T) {
	s := sim.NewScheduler()
	r := sim.NewRegister(s, "phase", phase(0))

	err := s.Run("main", func(p *sim.Proc) error {
		r.Schedule(phase(1))
		test.ExpectEquality(t, r.Get(), phase(0))

		// a clock edge is well past the end of the scheduling delta
		p.WaitPosedge(s.Clock())
		test.ExpectEquality(t, r.Get(), phase(1))

		return nil
	})
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, r.TraceValue(), "busy")
	test.ExpectEquality(t, r.Symbolic(), true)
}

func TestClockAlternates(t *testing.T) {
	s := sim.NewScheduler()

	err := s.Run("main", func(p *sim.Proc) error {
		for i := 0; i < 3; i++ {
			p.WaitPosedge(s.Clock())
			test.ExpectEquality(t, s.Clock().Get(), true)
			p.WaitNegedge(s.Clock())
			test.ExpectEquality(t, s.Clock().Get(), false)
		}
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Cycles(), 3)
}
