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
	"testing"
)

func TestCompareEmpty(t *testing.T) {
	results := Compare(nil, Options{NRMSE: true})
	if len(results) != 0 {
		t.Errorf("empty input: want no results, got %d", len(results))
	}
}

func TestCompare(t *testing.T) {
	ref := newTestGrid(t, []float64{0, 1, 2, 3}, 2, 2)
	cand := newTestGrid(t, []float64{1, 2, 3, 4}, 2, 2)
	mismatched := newTestGrid(t, make([]float64, 9), 3, 3)

	pairs := []Pair{
		{Variable: "depth", Step: "N15m", Ref: ref, Cand: cand},
		{Variable: "depth", Step: "N20m", Ref: ref, Cand: mismatched},
		{Variable: "speed", Step: "N15m", Ref: ref, Cand: ref},
	}
	results := Compare(pairs, Options{
		NRMSE:         true,
		Normalization: NormRange,
		Classify:      true,
		Stats:         true,
	})
	if len(results) != len(pairs) {
		t.Fatalf("want %d results, got %d", len(pairs), len(results))
	}

	r := results[0]
	if r.Err != nil {
		t.Fatal(r.Err)
	}
	if r.Variable != "depth" || r.Step != "N15m" {
		t.Errorf("result 0 identity: got %s/%s", r.Variable, r.Step)
	}
	if math.Abs(r.NRMSE-1./3.) > testTolerance {
		t.Errorf("result 0 NRMSE: want 1/3, got %g", r.NRMSE)
	}
	if r.N != 4 {
		t.Errorf("result 0 N: want 4, got %d", r.N)
	}
	if r.Classification == nil || r.Stats == nil {
		t.Error("result 0: missing classification or stats")
	}

	// The mismatched pair fails without stopping the batch.
	if results[1].Err == nil {
		t.Error("result 1: expected shape mismatch error")
	} else if _, ok := results[1].Err.(ShapeMismatchError); !ok {
		t.Errorf("result 1: expected ShapeMismatchError, got %T", results[1].Err)
	}
	if results[1].Classification != nil {
		t.Error("result 1: failed pair must not carry partial results")
	}

	if results[2].Err != nil {
		t.Fatal(results[2].Err)
	}
	if results[2].NRMSE != 0 {
		t.Errorf("result 2 NRMSE: want 0, got %g", results[2].NRMSE)
	}
}

func TestCompareDeterministic(t *testing.T) {
	ref := newTestGrid(t, []float64{0, 1, 2, 3}, 2, 2)
	cand := newTestGrid(t, []float64{1, 2, 3, 4}, 2, 2)
	pairs := []Pair{{Variable: "depth", Step: "N15m", Ref: ref, Cand: cand}}
	o := Options{NRMSE: true, Normalization: NormMean, Classify: true}

	first := Compare(pairs, o)
	second := Compare(pairs, o)
	if first[0].NRMSE != second[0].NRMSE {
		t.Errorf("re-run NRMSE differs: %g and %g", first[0].NRMSE, second[0].NRMSE)
	}
	if first[0].Classification.Table != second[0].Classification.Table {
		t.Errorf("re-run counts differ: %+v and %+v",
			first[0].Classification.Table, second[0].Classification.Table)
	}
	if ref.Data.Get(1, 1) != 3 || cand.Data.Get(1, 1) != 4 {
		t.Error("Compare modified its inputs")
	}
}
