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

package trace_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calroc/gopic/sim"
	"github.com/calroc/gopic/test"
	"github.com/calroc/gopic/trace"
)

func TestVCDOutput(t *testing.T) {
	s := sim.NewScheduler()
	sig := s.NewSignal("data")

	filename := filepath.Join(t.TempDir(), "out.vcd")
	rec := trace.NewRecorder(s, filename)

	err := s.Run("main", func(p *sim.Proc) error {
		p.WaitPosedge(s.Clock())
		sig.Schedule(true)
		p.WaitPosedge(s.Clock())
		sig.Schedule(false)
		p.WaitPosedge(s.Clock())
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, rec.End())

	b, err := os.ReadFile(filename)
	test.DemandSuccess(t, err)
	vcd := string(b)

	// declarations for both signals
	test.ExpectEquality(t, strings.Contains(vcd, "$var wire 1 ! clk $end"), true)
	test.ExpectEquality(t, strings.Contains(vcd, "$var wire 1 \" data $end"), true)
	test.ExpectEquality(t, strings.Contains(vcd, "$enddefinitions $end"), true)

	// both edges of the data signal were recorded
	test.ExpectEquality(t, strings.Contains(vcd, "1\"\n"), true)
	test.ExpectEquality(t, strings.Contains(vcd, "0\"\n"), true)

	// timestamps are present and the body follows the declarations
	test.ExpectEquality(t, strings.Contains(vcd, "#"), true)
	if strings.Index(vcd, "$enddefinitions") > strings.Index(vcd, "#0") && strings.Contains(vcd, "#0") {
		t.Errorf("changes recorded before the declarations")
	}
}
