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

// Package sim implements a discrete-event simulation of boolean signal lines
// driven by a virtual clock.
//
// Processes are spawned by the Scheduler and suspend themselves by waiting on
// a rising or falling edge of a Signal. Although every process runs in its
// own goroutine, exactly one process is ever running at a time. The scheduler
// resumes processes one by one and a process only yields control at a
// well-defined wait point. There is no preemption and processes never need to
// lock anything.
//
// Writes to a Signal (or to an enum-valued Register) do not take effect
// immediately. The new value is pending until every process has suspended, at
// which point all pending values are committed atomically. A process
// therefore never sees a partially-updated set of signals. This is the usual
// delta-cycle rule of discrete-event simulators.
//
// When every process is suspended and no pending values remain, the
// scheduler toggles the clock signal and advances the virtual time. Edge
// waiters on the clock wake up and the cycle repeats. The clock is the only
// source of time; a process waiting for an edge that can never occur will
// suspend forever. The optional cycle limit turns such a stall into an error
// which is mostly useful in tests.
package sim
