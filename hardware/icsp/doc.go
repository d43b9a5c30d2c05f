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

// Package icsp implements the in-circuit serial programming protocol of the
// PIC12F675. The Programmer type is layered, lowest first:
//
//   - bit transport: serialising raw bits over the data line, paced by the
//     strobe (transport.go)
//   - command framing: 6-bit command codes and 16-bit framed payloads with
//     start/stop bits (framing.go)
//   - the command set: one method per protocol verb, each publishing its
//     command label concurrently with the transaction (commands.go)
//   - device sequences: power-up and power-down ordering, program-and-verify
//     and the identity-read and bulk-erase procedures (sequences.go)
//
// Control flows down the layers and timing flows up: every layer suspends
// until the layer below has seen the edges it needs.
//
// Errors divide into protocol-contract violations (an operand too wide for
// its field, a malformed frame), verification failures (FaultyWrite) and
// precondition failures (MissingAttribute). All are fatal to the enclosing
// sequence and propagate unrecovered to the session entry point.
package icsp
