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

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// confirm prints the prompt and reads a single keypress, without waiting for
// a newline. Returns true only for an explicit y or Y. The terminal is put
// into cbreak mode for the duration and restored on return.
func confirm(prompt string) (bool, error) {
	var canAttr unix.Termios
	if err := termios.Tcgetattr(os.Stdin.Fd(), &canAttr); err != nil {
		return false, curated.Errorf("gopic: terminal: %v", err)
	}

	cbreakAttr := canAttr
	termios.Cfmakecbreak(&cbreakAttr)

	if err := termios.Tcsetattr(os.Stdin.Fd(), termios.TCIFLUSH, &cbreakAttr); err != nil {
		return false, curated.Errorf("gopic: terminal: %v", err)
	}
	defer termios.Tcsetattr(os.Stdin.Fd(), termios.TCIFLUSH, &canAttr)

	fmt.Print(prompt)

	b := make([]byte, 1)
	if _, err := os.Stdin.Read(b); err != nil {
		return false, curated.Errorf("gopic: terminal: %v", err)
	}
	fmt.Println()

	return b[0] == 'y' || b[0] == 'Y', nil
}
