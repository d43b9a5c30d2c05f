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

package bus

// TransportState is the state of the bit-transport layer: transmitting,
// receiving, or at rest. Transitions only occur on strobe or clock edges.
type TransportState int

// List of valid TransportState values.
const (
	Rest TransportState = iota
	Tx
	Rx
)

func (t TransportState) String() string {
	switch t {
	case Rest:
		return "Rest"
	case Tx:
		return "Tx"
	case Rx:
		return "Rx"
	}
	panic("unknown transport state")
}

// CommandLabel identifies the most recent high-level command for tracing.
// It reads None before the first command and after a startup or shutdown
// sequence.
type CommandLabel int

// List of valid CommandLabel values.
const (
	None CommandLabel = iota
	LoadConfig
	LoadProgram
	LoadData
	IncrementAddress
	EndProgramming
	ReadProgram
	ReadData
	BeginProgram
	EraseProgram
	EraseData
)

func (l CommandLabel) String() string {
	switch l {
	case None:
		return "None"
	case LoadConfig:
		return "LoadConfig"
	case LoadProgram:
		return "LoadProgram"
	case LoadData:
		return "LoadData"
	case IncrementAddress:
		return "IncrementAddress"
	case EndProgramming:
		return "EndProgramming"
	case ReadProgram:
		return "ReadProgram"
	case ReadData:
		return "ReadData"
	case BeginProgram:
		return "BeginProgram"
	case EraseProgram:
		return "EraseProgram"
	case EraseData:
		return "EraseData"
	}
	panic("unknown command label")
}
