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

// ProcFn is the body of a process. The returned error propagates to whoever
// joins on the process, or to the Run() function itself.
type ProcFn func(p *Proc) error

// Proc is the handle given to a running process. All suspension points go
// through the Proc: waiting on signal edges and joining on forked processes.
type Proc struct {
	sch   *Scheduler
	label string

	// handshake with the scheduler. the process blocks on resume until the
	// scheduler hands over control and announces itself on the scheduler's
	// shared yield channel when giving control back
	resume chan struct{}

	done bool
	err  error

	// processes suspended in a Join on this process
	waiters []*Proc
}

// stopToken is panicked through a process during scheduler teardown. it is
// recovered by the process wrapper and never escapes the package.
type stopToken struct{}

func (s *Scheduler) newProc(label string, fn ProcFn) *Proc {
	p := &Proc{sch: s, label: label, resume: make(chan struct{})}
	s.procs = append(s.procs, p)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(stopToken); ok {
					return
				}
				panic(r)
			}
		}()

		// wait for the first handover
		<-p.resume
		if p.sch.released {
			panic(stopToken{})
		}

		p.err = fn(p)
		p.done = true
		p.sch.yieldc <- p
	}()

	return p
}

// suspend gives control back to the scheduler. the process blocks until it is
// resumed or the scheduler is released
func (p *Proc) suspend() {
	p.sch.yieldc <- p
	<-p.resume
	if p.sch.released {
		panic(stopToken{})
	}
}

// WaitPosedge suspends the process until the rising edge of the signal.
func (p *Proc) WaitPosedge(sig *Signal) {
	sig.pos = append(sig.pos, p)
	p.suspend()
}

// WaitNegedge suspends the process until the falling edge of the signal.
func (p *Proc) WaitNegedge(sig *Signal) {
	sig.neg = append(sig.neg, p)
	p.suspend()
}

// Fork spawns a child process that runs concurrently with this one. The
// returned Join is used to wait for the child's completion.
func (p *Proc) Fork(label string, fn ProcFn) *Join {
	child := p.sch.newProc(label, fn)
	p.sch.runnable = append(p.sch.runnable, child)
	return &Join{child: child}
}

// Join is the synchronisation point for a forked process.
type Join struct {
	child *Proc
}

// Wait suspends the process until the forked process has completed, and
// returns the forked process's error.
func (j *Join) Wait(p *Proc) error {
	if !j.child.done {
		j.child.waiters = append(j.child.waiters, p)
		p.suspend()
	}
	return j.child.err
}
