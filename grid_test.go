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

const testTolerance = 1.e-8

func newTestGrid(t *testing.T, elements []float64, ny, nx int) *Grid {
	g, err := NewGrid(elements, ny, nx)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewGrid(t *testing.T) {
	g := newTestGrid(t, []float64{0, 1, 2, 3, 4, 5}, 2, 3)
	if g.Ny() != 2 || g.Nx() != 3 {
		t.Errorf("shape: want [2, 3], got [%d, %d]", g.Ny(), g.Nx())
	}
	if v := g.Data.Get(1, 2); v != 5 {
		t.Errorf("element [1, 2]: want 5, got %g", v)
	}
	if _, err := NewGrid([]float64{0, 1, 2}, 2, 2); err == nil {
		t.Error("expected error for element count mismatch")
	}
}

func TestCheckShape(t *testing.T) {
	a := newTestGrid(t, make([]float64, 9), 3, 3)
	b := newTestGrid(t, make([]float64, 16), 4, 4)
	err := a.CheckShape(b)
	if err == nil {
		t.Fatal("expected shape mismatch error")
	}
	if _, ok := err.(ShapeMismatchError); !ok {
		t.Fatalf("expected ShapeMismatchError, got %T", err)
	}
	if err := a.CheckShape(a); err != nil {
		t.Errorf("identical shapes: %v", err)
	}
}

func TestValidPairs(t *testing.T) {
	ref := newTestGrid(t, []float64{1, -9999, 3, 4}, 2, 2)
	cand := newTestGrid(t, []float64{2, 2, math.NaN(), 5}, 2, 2)
	refVals, candVals, err := ValidPairs(ref, cand)
	if err != nil {
		t.Fatal(err)
	}
	wantRef := []float64{1, 4}
	wantCand := []float64{2, 5}
	if len(refVals) != len(wantRef) {
		t.Fatalf("valid cells: want %d, got %d", len(wantRef), len(refVals))
	}
	for i := range wantRef {
		if refVals[i] != wantRef[i] || candVals[i] != wantCand[i] {
			t.Errorf("pair %d: want (%g, %g), got (%g, %g)",
				i, wantRef[i], wantCand[i], refVals[i], candVals[i])
		}
	}
}

func TestCellPolygon(t *testing.T) {
	g := newTestGrid(t, make([]float64, 4), 2, 2)
	g.Xo, g.Yo, g.Dx, g.Dy = 100, 200, 10, 10

	// Row 0 is the northernmost row, so cell [0, 0] sits above cell [1, 0].
	p := g.CellPolygon(0, 0)
	if p[0][0].X != 100 || p[0][0].Y != 210 {
		t.Errorf("cell [0, 0] corner: want (100, 210), got (%g, %g)",
			p[0][0].X, p[0][0].Y)
	}
	p = g.CellPolygon(1, 0)
	if p[0][0].X != 100 || p[0][0].Y != 200 {
		t.Errorf("cell [1, 0] corner: want (100, 200), got (%g, %g)",
			p[0][0].X, p[0][0].Y)
	}
}

func TestCellArea(t *testing.T) {
	g := newTestGrid(t, make([]float64, 4), 2, 2)
	g.Dx, g.Dy = 10, 15
	if a := g.CellArea(); a != 150 {
		t.Errorf("cell area: want 150, got %g", a)
	}
}
