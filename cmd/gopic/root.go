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

	"github.com/calroc/gopic/logger"
	"github.com/calroc/gopic/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gopic",
	Short: "GoPIC is an ICSP programming engine for the PIC12F675",
	Long: `GoPIC drives the in-circuit serial programming protocol of the PIC12F675
microcontroller. The protocol engine runs inside a discrete event simulation;
bus activity can be kept entirely simulated against a chip model, or forwarded
to a real device over GPIO pins or a serial adapter.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if echo, _ := cmd.Flags().GetBool("log"); echo {
			logger.SetEcho(os.Stderr)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		vrsn, rev := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, vrsn, rev)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Tail(os.Stderr, 10)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("log", false, "echo log entries to stderr as they happen")
	rootCmd.AddCommand(versionCmd)
}
