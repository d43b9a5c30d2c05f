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

package sim

import (
	"github.com/calroc/gopic/curated"
	"github.com/calroc/gopic/logger"
)

// sentinel error returned by Run() when the cycle limit has been reached.
const CycleLimit = "sim: cycle limit of %d reached"

// sentinel error returned by Run() when the scheduler has already run.
const AlreadyRun = "sim: scheduler has already run"

// the virtual time between two clock edges. the unit is notionally a
// nanosecond but nothing depends on that
const halfPeriod = 10

// Traceable instances expose a labelled value for the waveform trace.
// Implemented by Signal and Register.
type Traceable interface {
	Label() string
	TraceValue() string

	// Symbolic is true when the traced value is a symbolic state rather than
	// a wire level
	Symbolic() bool
}

// committer is the write-side of a Register, free of the value type
// parameter.
type committer interface {
	commit() bool
}

// Scheduler owns the virtual clock, all signals and registers, and all
// processes. It is not safe for concurrent use: everything attached to a
// scheduler runs in the single process that the scheduler is resuming at any
// moment.
type Scheduler struct {
	clock *Signal

	signals    []*Signal
	registers  []committer
	traceables []Traceable

	// every process ever created, for teardown
	procs []*Proc

	// processes waiting to be resumed, in resumption order
	runnable []*Proc

	// processes spawned with Spawn() before Run() is called
	background []*Proc

	// every process announces itself here when yielding
	yieldc chan *Proc

	// hooks called after a delta cycle that changed at least one value
	hooks []func(now uint64)

	now    uint64
	cycles uint64

	// maximum number of clock cycles before Run() gives up. zero means no
	// limit
	cycleLimit uint64

	released bool
}

// NewScheduler creates a new Scheduler along with its clock signal.
func NewScheduler() *Scheduler {
	s := &Scheduler{
		yieldc: make(chan *Proc),
	}
	s.clock = s.NewSignal("clk")
	return s
}

// Clock returns the clock signal. The clock is driven by the scheduler
// itself; scheduling a value on it from a process is a conflict.
func (s *Scheduler) Clock() *Signal {
	return s.clock
}

// Now returns the current virtual time.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// Cycles returns the number of complete clock cycles that have elapsed.
func (s *Scheduler) Cycles() uint64 {
	return s.cycles
}

// SetCycleLimit sets the number of clock cycles after which Run() returns
// with the CycleLimit error. A value of zero (the default) means no limit.
func (s *Scheduler) SetCycleLimit(limit uint64) {
	s.cycleLimit = limit
}

// Traceables returns every signal and register known to the scheduler, in
// creation order.
func (s *Scheduler) Traceables() []Traceable {
	return s.traceables
}

// OnCommit registers a hook to be called at the end of every delta cycle in
// which at least one signal or register changed value. Hooks run before any
// suspended process is resumed.
func (s *Scheduler) OnCommit(hook func(now uint64)) {
	s.hooks = append(s.hooks, hook)
}

// Spawn adds a background process to be started when Run() is called.
// Background processes typically run forever; they are released when the
// main process completes.
func (s *Scheduler) Spawn(label string, fn ProcFn) {
	s.background = append(s.background, s.newProc(label, fn))
}

// Run executes the simulation with fn as the main process. It returns when
// the main process completes, when any process returns an error, or when the
// cycle limit is reached. A scheduler can only run once.
func (s *Scheduler) Run(label string, fn ProcFn) error {
	if s.released {
		return curated.Errorf(AlreadyRun)
	}
	defer s.release()

	logger.Logf("sim", "clock running with half-period of %dns", halfPeriod)

	main := s.newProc(label, fn)
	s.runnable = append(s.runnable, s.background...)
	s.runnable = append(s.runnable, main)
	s.background = nil

	for {
		// resume processes until every one of them is suspended
		for len(s.runnable) > 0 {
			p := s.runnable[0]
			s.runnable = s.runnable[1:]

			p.resume <- struct{}{}
			q := <-s.yieldc

			if q.done {
				s.runnable = append(s.runnable, q.waiters...)
				q.waiters = nil

				if q == main || q.err != nil {
					return q.err
				}
			}
		}

		// commit pending values. if anything changed then newly woken edge
		// waiters run in the next delta cycle
		if s.commitDelta() {
			continue
		}

		// fully quiescent. advance the virtual clock
		if s.cycleLimit > 0 && s.cycles >= s.cycleLimit {
			return curated.Errorf(CycleLimit, s.cycleLimit)
		}
		s.tick()
	}
}

// commitDelta applies all pending signal and register values atomically and
// moves the edge waiters of any changed signal onto the runnable queue. every
// waiting process observes the fully committed state before any of them
// resumes.
func (s *Scheduler) commitDelta() bool {
	changed := false

	var rising []*Signal
	var falling []*Signal

	for _, sig := range s.signals {
		ch, rise := sig.commit()
		if !ch {
			continue
		}
		changed = true
		if rise {
			rising = append(rising, sig)
		} else {
			falling = append(falling, sig)
		}
	}

	for _, r := range s.registers {
		if r.commit() {
			changed = true
		}
	}

	if !changed {
		return false
	}

	for _, hook := range s.hooks {
		hook(s.now)
	}

	for _, sig := range rising {
		s.runnable = append(s.runnable, sig.pos...)
		sig.pos = nil
	}
	for _, sig := range falling {
		s.runnable = append(s.runnable, sig.neg...)
		sig.neg = nil
	}

	return true
}

// tick toggles the clock and advances the virtual time by one half-period.
func (s *Scheduler) tick() {
	s.now += halfPeriod
	v := !s.clock.cur
	s.clock.Schedule(v)
	if v {
		s.cycles++
	}
}

// release frees every process still suspended. the stop propagates through
// the resume channels; each process unwinds and its goroutine ends. closing
// the resume channel of a process that has already completed is harmless.
func (s *Scheduler) release() {
	if s.released {
		return
	}
	s.released = true

	for _, p := range s.procs {
		close(p.resume)
	}

	for _, sig := range s.signals {
		sig.pos = nil
		sig.neg = nil
	}
	s.runnable = nil
	s.background = nil
}
