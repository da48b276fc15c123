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
	"bytes"
	"strings"
	"testing"
)

const testASCII = `ncols 3
nrows 2
xllcorner 100
yllcorner 200
cellsize 10
NODATA_value -9999
0 1 2
-9999 4 5
`

func TestReadASCII(t *testing.T) {
	g, err := ReadASCII(strings.NewReader(testASCII))
	if err != nil {
		t.Fatal(err)
	}
	if g.Ny() != 2 || g.Nx() != 3 {
		t.Fatalf("shape: want [2, 3], got [%d, %d]", g.Ny(), g.Nx())
	}
	if g.Xo != 100 || g.Yo != 200 || g.Dx != 10 || g.Dy != 10 {
		t.Errorf("georeference: got Xo=%g Yo=%g Dx=%g Dy=%g", g.Xo, g.Yo, g.Dx, g.Dy)
	}
	if g.NoData != -9999 {
		t.Errorf("nodata: want -9999, got %g", g.NoData)
	}
	if v := g.Data.Get(0, 2); v != 2 {
		t.Errorf("element [0, 2]: want 2, got %g", v)
	}
	if g.valid1d(g.Data.Index1d(1, 0)) {
		t.Error("element [1, 0] holds the nodata value but is reported valid")
	}
}

func TestReadASCIIErrors(t *testing.T) {
	missingHeader := `ncols 2
nrows 2
cellsize 10
0 1 2 3
`
	if _, err := ReadASCII(strings.NewReader(missingHeader)); err == nil {
		t.Error("expected error for missing header fields")
	}

	truncated := `ncols 2
nrows 2
xllcorner 0
yllcorner 0
cellsize 10
0 1 2
`
	if _, err := ReadASCII(strings.NewReader(truncated)); err == nil {
		t.Error("expected error for missing values")
	}

	garbage := `ncols 2
nrows 2
xllcorner 0
yllcorner 0
cellsize 10
0 1 two 3
`
	if _, err := ReadASCII(strings.NewReader(garbage)); err == nil {
		t.Error("expected error for unparseable value")
	}
}

func TestWriteASCIIRoundTrip(t *testing.T) {
	g := newTestGrid(t, []float64{0, 1, 2, -9999, 4, 5}, 2, 3)
	g.Xo, g.Yo, g.Dx, g.Dy = 100, 200, 10, 10

	var buf bytes.Buffer
	if err := WriteASCII(&buf, g); err != nil {
		t.Fatal(err)
	}
	g2, err := ReadASCII(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if g2.Ny() != g.Ny() || g2.Nx() != g.Nx() {
		t.Fatalf("shape: want [%d, %d], got [%d, %d]", g.Ny(), g.Nx(), g2.Ny(), g2.Nx())
	}
	if g2.Xo != g.Xo || g2.Yo != g.Yo || g2.Dx != g.Dx || g2.NoData != g.NoData {
		t.Errorf("georeference not preserved: %+v", g2)
	}
	for k, v := range g.Data.Elements {
		if g2.Data.Elements[k] != v {
			t.Errorf("element %d: want %g, got %g", k, v, g2.Data.Elements[k])
		}
	}
}

func TestWriteClassificationASCII(t *testing.T) {
	r := newTestGrid(t, []float64{1, 0, -9999, 0}, 2, 2)
	c := newTestGrid(t, []float64{1, 1, 0, 0}, 2, 2)
	r.Dx, r.Dy = 10, 10
	cls, err := Classify(r, c, 0)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteClassificationASCII(&buf, r, cls); err != nil {
		t.Fatal(err)
	}
	want := `ncols 2
nrows 2
xllcorner 0
yllcorner 0
cellsize 10
NODATA_value 255
0 2
255 3
`
	if buf.String() != want {
		t.Errorf("classification raster:\nwant:\n%s\ngot:\n%s", want, buf.String())
	}
}
