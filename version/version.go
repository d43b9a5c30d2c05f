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

// Package version records the version number of the application as a whole.
package version

import (
	"runtime/debug"
)

// The name to use when referring to the application.
const ApplicationName = "GoPIC"

// revision contains the vcs revision. if the source has been modified but has
// not been committed then the revision string is suffixed with "+dirty".
var revision string

// Version returns the version string and the revision string. If the project
// was built outside of version control both strings will be "unknown".
func Version() (string, string) {
	version := "unknown"
	if revision == "" {
		return version, "unknown"
	}
	return version, revision
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	var vcsRevision string
	var vcsModified bool

	for _, v := range info.Settings {
		switch v.Key {
		case "vcs.revision":
			vcsRevision = v.Value
		case "vcs.modified":
			vcsModified = v.Value == "true"
		}
	}

	if vcsRevision != "" {
		revision = vcsRevision
		if vcsModified {
			revision += "+dirty"
		}
	}
}
