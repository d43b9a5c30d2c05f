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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like the Errorf()
// function in the fmt package it takes a formatting pattern and placeholder
// values, and returns an error.
//
// The Is() function can be used to check whether an error was created by
// Errorf() with a specific pattern. The Has() function is similar but checks
// whether the pattern occurs somewhere in the error chain. Sentinel patterns
// should be stored as a const string in the package that raises them,
// suitably named and commented. For example:
//
//	if curated.Is(err, icsp.FaultyWrite) {
//		...
//	}
//
// The IsAny() function answers whether the error was created by Errorf() at
// all. We can think of the difference between curated and uncurated errors as
// the difference between 'expected' and 'unexpected' errors, depending on how
// we choose to handle the result of a function call.
//
// The Error() function implementation for curated errors normalises the error
// chain such that it never contains duplicate adjacent parts. The practical
// advantage of this is that it alleviates the problem of when and how to wrap
// errors as they propagate. For the purposes of this package a chain is
// composed of parts separated by the sub-string ': '.
package curated
