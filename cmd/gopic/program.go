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

package main

import (
	"fmt"
	"io"

	"github.com/calroc/gopic/hardware"
	"github.com/calroc/gopic/hardware/bus"
	"github.com/calroc/gopic/ports"

	"github.com/spf13/cobra"
)

var programCmd = &cobra.Command{
	Use:   "program [operation]",
	Short: "Run the programming engine against a real device",
	Long: `Runs the named operation against a real PIC12F675 connected through GPIO
pins or a serial adapter. The clean operation erases the device and asks for
confirmation first; --yes skips the prompt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		op := "identify"
		if len(args) > 0 {
			op = args[0]
		}

		if op == "clean" {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				ok, err := confirm("this will erase the device. continue? [y/N] ")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("aborted")
					return nil
				}
			}
		}

		sink, err := openSink(cmd)
		if err != nil {
			return err
		}
		if c, ok := sink.(io.Closer); ok {
			defer c.Close()
		}

		session := hardware.NewSession(sink)
		session.Programmer.Prefs.ValidateOSCCAL, _ = cmd.Flags().GetBool("validate-osccal")

		return runOp(session, op)
	},
}

// openSink builds the PortSink selected by the transport flags. The serial
// flag wins over the GPIO pin flags.
func openSink(cmd *cobra.Command) (bus.PortSink, error) {
	if dev, _ := cmd.Flags().GetString("serial"); dev != "" {
		baud, _ := cmd.Flags().GetInt("baud")
		return ports.NewSerial(dev, baud)
	}

	pins := ports.GPIOPins{}
	pins.Program, _ = cmd.Flags().GetString("pin-program")
	pins.Power, _ = cmd.Flags().GetString("pin-power")
	pins.Data, _ = cmd.Flags().GetString("pin-data")
	pins.Strobe, _ = cmd.Flags().GetString("pin-strobe")
	return ports.NewGPIO(pins)
}

func init() {
	rootCmd.AddCommand(programCmd)

	programCmd.Flags().String("serial", "", "serial device of a bit-banging adapter")
	programCmd.Flags().Int("baud", 57600, "baud rate for the serial adapter")
	programCmd.Flags().String("pin-program", "GPIO22", "GPIO pin for the program-mode line")
	programCmd.Flags().String("pin-power", "GPIO23", "GPIO pin for the power line")
	programCmd.Flags().String("pin-data", "GPIO24", "GPIO pin for the data line")
	programCmd.Flags().String("pin-strobe", "GPIO25", "GPIO pin for the strobe line")
	programCmd.Flags().Bool("validate-osccal", false, "check that the OSCCAL word looks like a RETLW instruction")
	programCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before erasing")
}
