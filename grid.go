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

// Package rastereval calculates pixel-by-pixel agreement metrics between
// gridded simulation outputs, such as flood or debris-flow model results
// produced at different grid resolutions.
package rastereval

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// Version is the version of this program.
const Version = "0.1.0"

// DefaultNoData is the no-data sentinel assigned to grids when the data
// source doesn't specify one.
const DefaultNoData = -9999.

// Grid is a georeferenced raster of floating-point values on a regular
// 2-dimensional mesh. Row 0 is the northernmost row, so (Xo, Yo) is the
// corner below and to the left of cell [Ny-1, 0].
type Grid struct {
	Data *sparse.DenseArray

	// Xo and Yo are the coordinates of the lower-left corner of the grid,
	// and Dx and Dy are the cell edge lengths in the x and y directions,
	// in the units of the grid's spatial projection.
	Xo, Yo, Dx, Dy float64

	// NoData is the sentinel value marking cells without valid data.
	// NaN cells are always considered invalid, whether or not NoData
	// is set to NaN.
	NoData float64
}

// NewGrid creates a grid with ny rows and nx columns from row-major
// elements, with unit cell size and the default no-data sentinel.
func NewGrid(elements []float64, ny, nx int) (*Grid, error) {
	if len(elements) != ny*nx {
		return nil, fmt.Errorf("rastereval: grid has %d elements but shape [%d, %d] requires %d",
			len(elements), ny, nx, ny*nx)
	}
	data := sparse.ZerosDense(ny, nx)
	copy(data.Elements, elements)
	return &Grid{Data: data, Dx: 1, Dy: 1, NoData: DefaultNoData}, nil
}

// NewGridFrom wraps an existing 2-dimensional dense array.
func NewGridFrom(data *sparse.DenseArray) (*Grid, error) {
	if len(data.Shape) != 2 {
		return nil, fmt.Errorf("rastereval: grid requires a 2-dimensional array but got shape %v", data.Shape)
	}
	return &Grid{Data: data, Dx: 1, Dy: 1, NoData: DefaultNoData}, nil
}

// Ny returns the number of rows in the grid.
func (g *Grid) Ny() int { return g.Data.Shape[0] }

// Nx returns the number of columns in the grid.
func (g *Grid) Nx() int { return g.Data.Shape[1] }

// CellArea returns the area of a single grid cell.
func (g *Grid) CellArea() float64 { return math.Abs(g.Dx * g.Dy) }

// valid1d reports whether the cell at flattened index k holds valid data.
func (g *Grid) valid1d(k int) bool {
	v := g.Data.Elements[k]
	return v != g.NoData && !math.IsNaN(v)
}

// CheckShape returns a ShapeMismatchError if o does not have the same
// shape as the receiver.
func (g *Grid) CheckShape(o *Grid) error {
	if g.Ny() != o.Ny() || g.Nx() != o.Nx() {
		return ShapeMismatchError{
			RefShape:  []int{g.Ny(), g.Nx()},
			CandShape: []int{o.Ny(), o.Nx()},
		}
	}
	return nil
}

// CellPolygon returns the outline of cell [j, i] (row j, column i) in grid
// coordinates.
func (g *Grid) CellPolygon(j, i int) geom.Polygon {
	x := g.Xo + float64(i)*g.Dx
	y := g.Yo + float64(g.Ny()-1-j)*g.Dy
	return geom.Polygon([]geom.Path{{
		{X: x, Y: y}, {X: x + g.Dx, Y: y},
		{X: x + g.Dx, Y: y + g.Dy}, {X: x, Y: y + g.Dy},
		{X: x, Y: y},
	}})
}

// ValidPairs returns the values of the two grids at the cells where both
// hold valid data, in row-major order. The two returned slices are always
// the same length.
func ValidPairs(ref, cand *Grid) (refVals, candVals []float64, err error) {
	if err := ref.CheckShape(cand); err != nil {
		return nil, nil, err
	}
	for k, v := range ref.Data.Elements {
		if !ref.valid1d(k) || !cand.valid1d(k) {
			continue
		}
		refVals = append(refVals, v)
		candVals = append(candVals, cand.Data.Elements[k])
	}
	return refVals, candVals, nil
}
