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

// Pair is one reference/candidate grid pair to be compared, identified by
// the physical variable it holds and the time or resolution step of the
// candidate.
type Pair struct {
	Variable string
	Step     string
	Ref      *Grid
	Cand     *Grid
}

// Options selects which metrics Compare calculates for each pair.
type Options struct {
	// NRMSE enables normalized root mean square error calculation using
	// Normalization.
	NRMSE         bool
	Normalization Normalization

	// Classify enables wet/dry classification using Threshold.
	Classify  bool
	Threshold float64

	// Stats enables pairwise agreement statistics.
	Stats bool
}

// Result holds the metrics for one pair. If any metric failed, Err holds
// the first error encountered and the remaining fields for that pair are
// unset.
type Result struct {
	Variable string
	Step     string

	// N is the number of cells holding valid data in both grids.
	N int

	NRMSE          float64
	Normalization  Normalization
	Classification *Classification
	Stats          *PairStats

	Err error
}

// Compare applies the metrics selected in o to each pair in order,
// returning one Result per pair. A failure on one pair is recorded in its
// Result and does not stop the remaining pairs from being processed.
// Compare does not modify its inputs, so re-running it over the same
// pairs produces identical results.
func Compare(pairs []Pair, o Options) []Result {
	results := make([]Result, len(pairs))
	for i, p := range pairs {
		r := Result{
			Variable:      p.Variable,
			Step:          p.Step,
			Normalization: o.Normalization,
		}
		results[i] = comparePair(p, o, r)
	}
	return results
}

func comparePair(p Pair, o Options, r Result) Result {
	refVals, _, err := ValidPairs(p.Ref, p.Cand)
	if err != nil {
		r.Err = err
		return r
	}
	r.N = len(refVals)
	if o.NRMSE {
		r.NRMSE, r.Err = NRMSE(p.Ref, p.Cand, o.Normalization)
		if r.Err != nil {
			return r
		}
	}
	if o.Classify {
		r.Classification, r.Err = Classify(p.Ref, p.Cand, o.Threshold)
		if r.Err != nil {
			return r
		}
	}
	if o.Stats {
		r.Stats, r.Err = ComputePairStats(p.Ref, p.Cand)
		if r.Err != nil {
			return r
		}
	}
	return r
}
