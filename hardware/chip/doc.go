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

// Package chip models the device side of the ICSP link. The Chip type
// implements the PIC12F675 programming state machine well enough for the
// programmer to be tested against it: commands are decoded from the bus
// bit by bit, memory arrays are programmed and read back, and power loss
// resets the state machine.
//
// The model is driven by two simulation processes, Run and WatchPower,
// which the owning session must spawn before the simulation starts.
package chip
