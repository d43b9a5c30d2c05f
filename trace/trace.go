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

// Package trace records signal activity as a VCD (value change dump) file,
// viewable with GTKWave or any other wave viewer. Note that the trace is
// buffered in memory in its entirety, and written to disk on End(). It is
// therefore probably only suitable for diagnostic runs.
package trace

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/calroc/gopic/curated"
	"github.com/calroc/gopic/logger"
	"github.com/calroc/gopic/sim"
	"github.com/calroc/gopic/version"
)

// conventional VCD identifiers, one printable character per variable
// starting from '!'
const firstID = '!'

type channel struct {
	src  sim.Traceable
	id   string
	prev string
}

// Recorder samples every traceable in a scheduler after each delta commit
// and buffers the changes for writing as a VCD file.
type Recorder struct {
	filename string
	channels []*channel
	body     strings.Builder
	lastTime uint64
	timed    bool
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The recorder registers itself with the scheduler; recording starts
// with the first delta commit.
func NewRecorder(s *sim.Scheduler, filename string) *Recorder {
	rec := &Recorder{filename: filename}

	for i, t := range s.Traceables() {
		rec.channels = append(rec.channels, &channel{
			src: t,
			id:  string(rune(firstID + i)),
		})
	}

	s.OnCommit(rec.sample)
	return rec
}

func (rec *Recorder) sample(now uint64) {
	for _, ch := range rec.channels {
		v := ch.src.TraceValue()
		if v == ch.prev {
			continue
		}
		ch.prev = v

		if now != rec.lastTime || !rec.timed {
			rec.body.WriteString(fmt.Sprintf("#%d\n", now))
			rec.lastTime = now
			rec.timed = true
		}

		if ch.src.Symbolic() {
			// string variables are a GTKWave extension
			rec.body.WriteString(fmt.Sprintf("s%s %s\n", vcdString(v), ch.id))
		} else {
			rec.body.WriteString(v + ch.id + "\n")
		}
	}
}

// End writes the buffered trace to disk.
func (rec *Recorder) End() (rerr error) {
	f, err := os.Create(rec.filename)
	if err != nil {
		return curated.Errorf("trace: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("trace: %v", err)
		}
	}()

	if _, err := f.WriteString(rec.header()); err != nil {
		return curated.Errorf("trace: %v", err)
	}
	if _, err := f.WriteString(rec.body.String()); err != nil {
		return curated.Errorf("trace: %v", err)
	}

	logger.Logf("trace", "writing VCD to %s", rec.filename)
	return nil
}

func (rec *Recorder) header() string {
	s := strings.Builder{}

	s.WriteString(fmt.Sprintf("$date %s $end\n", time.Now().Format(time.RFC1123)))
	vrsn, rev := version.Version()
	s.WriteString(fmt.Sprintf("$version %s %s (%s) $end\n", version.ApplicationName, vrsn, rev))
	s.WriteString("$timescale 1us $end\n")
	s.WriteString("$scope module gopic $end\n")

	for _, ch := range rec.channels {
		typ := "wire"
		if ch.src.Symbolic() {
			typ = "string"
		}
		s.WriteString(fmt.Sprintf("$var %s 1 %s %s $end\n", typ, ch.id, vcdString(ch.src.Label())))
	}

	s.WriteString("$upscope $end\n")
	s.WriteString("$enddefinitions $end\n")

	return s.String()
}

// identifiers and string values must not contain whitespace
func vcdString(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}
