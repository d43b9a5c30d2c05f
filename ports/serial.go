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

package ports

import (
	"github.com/calroc/gopic/curated"

	"github.com/tarm/serial"
)

// Serial is a sink for bit-banging adapters that accept one byte per port
// update. The low nibble of each byte carries the composite bus value, the
// high nibble is a fixed marker so the adapter can resynchronise after a
// dropped byte.
type Serial struct {
	port *serial.Port
}

// high nibble of every frame byte
const serialMarker = 0xa0

// NewSerial is the preferred method of initialisation for the Serial type.
func NewSerial(device string, baud int) (*Serial, error) {
	p, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, curated.Errorf("serial: %v", err)
	}
	return &Serial{port: p}, nil
}

// SetPort implements the bus.PortSink interface.
func (s *Serial) SetPort(value uint8) error {
	if _, err := s.port.Write([]byte{serialMarker | (value & 0x0f)}); err != nil {
		return curated.Errorf("serial: %v", err)
	}
	return nil
}

// Close releases the serial device, leaving the port value at zero.
func (s *Serial) Close() error {
	_ = s.SetPort(0)
	return s.port.Close()
}
