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

	"github.com/ctessum/sparse"
)

// Category is the agreement outcome between the wet/dry states of a
// reference cell and the corresponding candidate cell.
type Category int

const (
	// Hit means both the reference and candidate cells are wet.
	Hit Category = iota
	// Miss means the reference cell is wet but the candidate cell is dry.
	Miss
	// FalseAlarm means the reference cell is dry but the candidate cell
	// is wet.
	FalseAlarm
	// CorrectNegative means both cells are dry.
	CorrectNegative

	numCategories
)

// CategoryNoData marks cells excluded from classification in the derived
// category grid, following the uint8 no-data convention of classification
// rasters.
const CategoryNoData = 255

func (c Category) String() string {
	switch c {
	case Hit:
		return "Hit"
	case Miss:
		return "Miss"
	case FalseAlarm:
		return "FalseAlarm"
	case CorrectNegative:
		return "CorrectNegative"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Categories lists the four classification outcomes in report order.
func Categories() []Category {
	return []Category{Hit, Miss, FalseAlarm, CorrectNegative}
}

// ContingencyTable holds the number of cells classified into each
// category.
type ContingencyTable struct {
	Hits, Misses, FalseAlarms, CorrectNegatives int
}

// Count returns the number of cells classified as c.
func (t ContingencyTable) Count(c Category) int {
	switch c {
	case Hit:
		return t.Hits
	case Miss:
		return t.Misses
	case FalseAlarm:
		return t.FalseAlarms
	case CorrectNegative:
		return t.CorrectNegatives
	default:
		panic(c)
	}
}

// Valid returns the total number of classified cells.
func (t ContingencyTable) Valid() int {
	return t.Hits + t.Misses + t.FalseAlarms + t.CorrectNegatives
}

// ReferenceWet returns the number of classified cells that are wet in the
// reference grid.
func (t ContingencyTable) ReferenceWet() int {
	return t.Hits + t.Misses
}

// HitRate returns Hits / (Hits + Misses), or NaN if the reference grid
// has no wet cells.
func (t ContingencyTable) HitRate() float64 {
	return ratio(t.Hits, t.Hits+t.Misses)
}

// FalseAlarmRatio returns FalseAlarms / (Hits + FalseAlarms), or NaN if
// the candidate grid has no wet cells.
func (t ContingencyTable) FalseAlarmRatio() float64 {
	return ratio(t.FalseAlarms, t.Hits+t.FalseAlarms)
}

// CriticalSuccessIndex returns Hits / (Hits + Misses + FalseAlarms), or
// NaN if neither grid has any wet cells.
func (t ContingencyTable) CriticalSuccessIndex() float64 {
	return ratio(t.Hits, t.Hits+t.Misses+t.FalseAlarms)
}

// FractionOfReferenceWet returns the count in category c as a fraction of
// the reference-wet cell count, or NaN if the reference grid has no wet
// cells.
func (t ContingencyTable) FractionOfReferenceWet(c Category) float64 {
	return ratio(t.Count(c), t.ReferenceWet())
}

func ratio(num, denom int) float64 {
	if denom == 0 {
		return math.NaN()
	}
	return float64(num) / float64(denom)
}

// Classification is the result of comparing the wet/dry states of two
// grids.
type Classification struct {
	// Categories holds one Category per cell, or CategoryNoData where
	// either input cell is invalid.
	Categories *sparse.DenseArrayInt

	// Table counts the classified cells per category.
	Table ContingencyTable

	// Threshold is the wetness threshold the classification was made with.
	Threshold float64

	// CellArea is the area of a single cell, taken from the reference grid.
	CellArea float64
}

// Area returns the total area of the cells classified as c.
func (c *Classification) Area(cat Category) float64 {
	return float64(c.Table.Count(cat)) * c.CellArea
}

// Classify compares the wet/dry state of every valid cell of the
// reference and candidate grids. A cell is wet when its value exceeds
// threshold. Cells that are invalid in either grid are marked
// CategoryNoData and excluded from the counts.
func Classify(ref, cand *Grid, threshold float64) (*Classification, error) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, InvalidThresholdError{Threshold: threshold}
	}
	if err := ref.CheckShape(cand); err != nil {
		return nil, err
	}
	c := &Classification{
		Categories: sparse.ZerosDenseInt(ref.Ny(), ref.Nx()),
		Threshold:  threshold,
		CellArea:   ref.CellArea(),
	}
	for k := range ref.Data.Elements {
		if !ref.valid1d(k) || !cand.valid1d(k) {
			c.Categories.Elements[k] = CategoryNoData
			continue
		}
		refWet := ref.Data.Elements[k] > threshold
		candWet := cand.Data.Elements[k] > threshold
		var cat Category
		switch {
		case refWet && candWet:
			cat = Hit
			c.Table.Hits++
		case refWet && !candWet:
			cat = Miss
			c.Table.Misses++
		case !refWet && candWet:
			cat = FalseAlarm
			c.Table.FalseAlarms++
		default:
			cat = CorrectNegative
			c.Table.CorrectNegatives++
		}
		c.Categories.Elements[k] = int(cat)
	}
	return c, nil
}
