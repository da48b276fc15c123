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

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Normalization specifies the reference-grid statistic that the root mean
// square error is divided by to obtain the NRMSE.
type Normalization int

const (
	// NormRange normalizes by max(ref) - min(ref). This is the default.
	NormRange Normalization = iota
	// NormMean normalizes by the mean of the valid reference values.
	NormMean
	// NormStdDev normalizes by the population standard deviation of the
	// valid reference values.
	NormStdDev
	// NormRMS normalizes by the root mean square of the valid reference
	// values.
	NormRMS
)

func (n Normalization) String() string {
	switch n {
	case NormRange:
		return "range"
	case NormMean:
		return "mean"
	case NormStdDev:
		return "stddev"
	case NormRMS:
		return "rms"
	default:
		return fmt.Sprintf("unknown(%d)", int(n))
	}
}

// ParseNormalization converts a configuration string to a Normalization.
func ParseNormalization(s string) (Normalization, error) {
	switch s {
	case "range":
		return NormRange, nil
	case "mean":
		return NormMean, nil
	case "stddev", "std":
		return NormStdDev, nil
	case "rms":
		return NormRMS, nil
	default:
		return 0, fmt.Errorf("rastereval: invalid normalization method '%s'; options are 'range', 'mean', 'stddev', and 'rms'", s)
	}
}

// NRMSE returns the normalized root mean square error between a reference
// grid and a candidate grid of identical shape, as a dimensionless
// fraction. Only cells holding valid data in both grids contribute.
//
// The normalization basis is calculated from the reference values only,
// so in general NRMSE(ref, cand, n) != NRMSE(cand, ref, n).
//
// The result is NaN when no cells are valid in both grids or when the
// normalization basis is zero.
func NRMSE(ref, cand *Grid, norm Normalization) (float64, error) {
	refVals, candVals, err := ValidPairs(ref, cand)
	if err != nil {
		return 0, err
	}
	if len(refVals) == 0 {
		return math.NaN(), nil
	}
	n := float64(len(refVals))
	var sumsq float64
	for i, r := range refVals {
		d := candVals[i] - r
		sumsq += d * d
	}
	rmse := math.Sqrt(sumsq / n)

	var basis float64
	switch norm {
	case NormRange:
		basis = floats.Max(refVals) - floats.Min(refVals)
	case NormMean:
		basis = floats.Sum(refVals) / n
	case NormStdDev:
		mean := floats.Sum(refVals) / n
		var ss float64
		for _, r := range refVals {
			d := r - mean
			ss += d * d
		}
		basis = math.Sqrt(ss / n)
	case NormRMS:
		basis = math.Sqrt(floats.Dot(refVals, refVals) / n)
	default:
		return 0, fmt.Errorf("rastereval: invalid normalization method %v", norm)
	}
	if basis == 0 {
		return math.NaN(), nil
	}
	return rmse / basis, nil
}
