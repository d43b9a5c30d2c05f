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
	"sync/atomic"

	"github.com/calroc/gopic/curated"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// sentinel errors for the GPIO sink.
const (
	NoSuchPin = "gpio: no such pin: %s"
)

// GPIOPins names the four pins of a GPIO programming rig. Names are resolved
// through the periph.io pin registry, so both "GPIO22" and "P1_15" forms work.
type GPIOPins struct {
	Program string
	Power   string
	Data    string
	Strobe  string
}

// GPIO is a sink that drives four host GPIO pins with the composite bus
// value. Levels are updated strobe first and program-mode last so that the
// chip never sees a strobe edge while the other lines are settling.
type GPIO struct {
	program gpio.PinIO
	power   gpio.PinIO
	data    gpio.PinIO
	strobe  gpio.PinIO
}

var hostInitialised atomic.Bool

// NewGPIO is the preferred method of initialisation for the GPIO type.
func NewGPIO(pins GPIOPins) (*GPIO, error) {
	if hostInitialised.CompareAndSwap(false, true) {
		if _, err := host.Init(); err != nil {
			return nil, curated.Errorf("gpio: %v", err)
		}
	}

	g := &GPIO{}

	for _, r := range []struct {
		name string
		pin  *gpio.PinIO
	}{
		{pins.Program, &g.program},
		{pins.Power, &g.power},
		{pins.Data, &g.data},
		{pins.Strobe, &g.strobe},
	} {
		p := gpioreg.ByName(r.name)
		if p == nil {
			return nil, curated.Errorf(NoSuchPin, r.name)
		}
		if err := p.Out(gpio.Low); err != nil {
			return nil, curated.Errorf("gpio: %s: %v", r.name, err)
		}
		*r.pin = p
	}

	return g, nil
}

// SetPort implements the bus.PortSink interface.
func (g *GPIO) SetPort(value uint8) error {
	for _, w := range []struct {
		pin   gpio.PinIO
		level gpio.Level
	}{
		{g.strobe, gpio.Level(value&0b0001 != 0)},
		{g.data, gpio.Level(value&0b0010 != 0)},
		{g.power, gpio.Level(value&0b0100 != 0)},
		{g.program, gpio.Level(value&0b1000 != 0)},
	} {
		if err := w.pin.Out(w.level); err != nil {
			return curated.Errorf("gpio: %v", err)
		}
	}
	return nil
}

// Close returns all pins to a low output level.
func (g *GPIO) Close() error {
	return g.SetPort(0)
}
