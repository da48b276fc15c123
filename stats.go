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
	"math"

	"github.com/GaryBoone/GoStats/stats"
)

// PairStats summarizes pixel-by-pixel agreement between a reference grid
// and a candidate grid beyond the single NRMSE number.
type PairStats struct {
	// N is the number of cells holding valid data in both grids.
	N int

	// MB and ME are the mean bias and mean error of the candidate values
	// relative to the reference values.
	MB, ME float64

	// MFB and MFE are the mean fractional bias and mean fractional error.
	MFB, MFE float64

	// Slope, Intercept, and RSquared describe the least-squares fit of
	// the candidate values against the reference values.
	Slope, Intercept, RSquared float64
}

// ComputePairStats calculates agreement statistics over the cells where
// both grids hold valid data. Statistics that are undefined for the
// number of valid cells are NaN.
func ComputePairStats(ref, cand *Grid) (*PairStats, error) {
	refVals, candVals, err := ValidPairs(ref, cand)
	if err != nil {
		return nil, err
	}
	s := &PairStats{
		N:         len(refVals),
		MB:        math.NaN(),
		ME:        math.NaN(),
		MFB:       math.NaN(),
		MFE:       math.NaN(),
		Slope:     math.NaN(),
		Intercept: math.NaN(),
		RSquared:  math.NaN(),
	}
	if s.N == 0 {
		return s, nil
	}
	s.MB = mb(refVals, candVals)
	s.ME = me(refVals, candVals)
	s.MFB = mfb(refVals, candVals)
	s.MFE = mfe(refVals, candVals)
	if s.N >= 2 {
		s.Slope, s.Intercept, s.RSquared, _, _, _ =
			stats.LinearRegression(refVals, candVals)
	}
	return s, nil
}

func mfb(a, b []float64) float64 {
	r := 0.
	for i, v1 := range a {
		v2 := b[i]
		r += 2 * (v2 - v1) / (v1 + v2)
	}
	return r / float64(len(a))
}

func mfe(a, b []float64) float64 {
	r := 0.
	for i, v1 := range a {
		v2 := b[i]
		r += 2 * math.Abs(v2-v1) / math.Abs(v1+v2)
	}
	return r / float64(len(a))
}

func mb(a, b []float64) float64 {
	r := 0.
	for i, v1 := range a {
		v2 := b[i]
		r += (v2 - v1)
	}
	return r / float64(len(a))
}

func me(a, b []float64) float64 {
	r := 0.
	for i, v1 := range a {
		v2 := b[i]
		r += math.Abs(v2 - v1)
	}
	return r / float64(len(a))
}
