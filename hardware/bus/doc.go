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

// Package bus models the five-line ICSP bus: clock, strobe, data, power and
// program-mode, plus the derived strobe-enable line and the two observable
// status registers.
//
// The strobe is the pacing line for bit transfers and is driven from the
// clock by the StrobeLink process, gated by strobe-enable. The externally
// visible part of the bus is the 4-bit composite value (program-mode, power,
// data, strobe); any change of the composite value is forwarded to the
// attached PortSink.
package bus
