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
	"os"

	"github.com/calroc/gopic/curated"
	"github.com/calroc/gopic/hardware"
	"github.com/calroc/gopic/ports"
	"github.com/calroc/gopic/statsview"
	"github.com/calroc/gopic/trace"

	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/cobra"
)

var simCmd = &cobra.Command{
	Use:   "sim [operation]",
	Short: "Run the programming engine against a simulated chip",
	Long: `Runs the named operation against a fully simulated PIC12F675. No hardware
is involved so the clean operation is always safe. The bus activity can be
captured to a VCD file for inspection in a wave viewer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		op := "identify"
		if len(args) > 0 {
			op = args[0]
		}

		if on, _ := cmd.Flags().GetBool("stats"); on {
			statsview.Launch(os.Stderr)
		}

		var sink *ports.Log
		if on, _ := cmd.Flags().GetBool("port-log"); on {
			sink = ports.NewLog()
		}

		var session *hardware.Session
		if sink != nil {
			session = hardware.NewSession(sink)
		} else {
			session = hardware.NewSession(nil)
		}
		chp := session.AttachChip()

		chp.CorruptWrites, _ = cmd.Flags().GetBool("faulty")
		session.Programmer.Prefs.ValidateOSCCAL, _ = cmd.Flags().GetBool("validate-osccal")

		if cycles, _ := cmd.Flags().GetUint64("cycles"); cycles > 0 {
			session.Sim.SetCycleLimit(cycles)
		}

		var rec *trace.Recorder
		if fn, _ := cmd.Flags().GetString("trace"); fn != "" {
			rec = trace.NewRecorder(session.Sim, fn)
		}

		err := runOp(session, op)

		if rec != nil {
			if terr := rec.End(); terr != nil && err == nil {
				err = terr
			}
		}

		if fn, _ := cmd.Flags().GetString("dump-state"); fn != "" {
			if derr := dumpState(session, fn); derr != nil && err == nil {
				err = derr
			}
		}

		fmt.Printf("%d clock cycles\n", session.Sim.Cycles())

		return err
	},
}

// dumpState writes the object graph of the session to a graphviz file.
func dumpState(session *hardware.Session, filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("gopic: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("gopic: %v", err)
		}
	}()

	memviz.Map(f, session)
	return nil
}

func init() {
	rootCmd.AddCommand(simCmd)

	simCmd.Flags().String("trace", "", "write bus activity to a VCD file")
	simCmd.Flags().Uint64("cycles", 0, "abort after this many clock cycles (0 for no limit)")
	simCmd.Flags().String("dump-state", "", "write the final session state as a graphviz file")
	simCmd.Flags().Bool("faulty", false, "simulate a chip whose writes are corrupted")
	simCmd.Flags().Bool("validate-osccal", false, "check that the OSCCAL word looks like a RETLW instruction")
	simCmd.Flags().Bool("port-log", false, "log every composite port value")
	simCmd.Flags().Bool("stats", false, "run the statistics server (requires the statsview build tag)")
}
