/*
Copyright © 2026 the RasterEval authors.
This file is part of RasterEval.

RasterEval is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RasterEval is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RasterEval.  If not, see <http://www.gnu.org/licenses/>.
*/

package rastereval

import "fmt"

// ShapeMismatchError is returned when two grids that are being compared
// do not have identical dimensions.
type ShapeMismatchError struct {
	RefShape, CandShape []int
}

func (e ShapeMismatchError) Error() string {
	return fmt.Sprintf("rastereval: grid shape mismatch: reference %v, candidate %v",
		e.RefShape, e.CandShape)
}

// InvalidThresholdError is returned when a wetness threshold is not a
// finite number.
type InvalidThresholdError struct {
	Threshold float64
}

func (e InvalidThresholdError) Error() string {
	return fmt.Sprintf("rastereval: invalid wetness threshold %v", e.Threshold)
}
