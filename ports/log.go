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
	"github.com/calroc/gopic/logger"
)

// Log is a sink that forwards every composite bus value to the central
// logger. Useful for seeing exactly what would reach a real device.
type Log struct {
	// Count is the number of values forwarded so far
	Count int
}

// NewLog is the preferred method of initialisation for the Log type.
func NewLog() *Log {
	return &Log{}
}

// SetPort implements the bus.PortSink interface.
func (l *Log) SetPort(value uint8) error {
	l.Count++
	logger.Logf("ports", "port <- %04b", value)
	return nil
}
