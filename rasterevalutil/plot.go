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

package rasterevalutil

import (
	"fmt"
	"image/color"

	"github.com/GaryBoone/GoStats/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func rearrangeData(x, y []float64) plotter.XYs {
	out := make(plotter.XYs, len(x))
	for i, yy := range y {
		out[i].X = x[i]
		out[i].Y = yy
	}
	return out
}

// writeScatterPlot writes a reference-vs-candidate scatter plot with a 1:1
// line and a least-squares fit line to a PNG file.
func writeScatterPlot(fname string, refVals, candVals []float64) error {
	allData := append([]float64{}, refVals...)
	allData = append(allData, candVals...)
	max := stats.StatsMax(allData)
	min := stats.StatsMin(allData)

	p, err := plot.New()
	if err != nil {
		return err
	}
	p.X.Label.Text = "Reference"
	p.Y.Label.Text = "Candidate"
	p.Legend = plot.Legend{
		Top:            true,
		Left:           true,
		ThumbnailWidth: .15 * vg.Inch,
		Padding:        0.75 * vg.Millimeter,
	}

	s, err := plotter.NewScatter(rearrangeData(refVals, candVals))
	if err != nil {
		return err
	}
	s.Color = color.NRGBA{0, 0, 0, 255}
	s.Radius = 0.75
	s.Shape = draw.CircleGlyph{}
	p.Add(s)

	l1, err := plotter.NewLine(plotter.XYs{{min, min}, {max, max}})
	if err != nil {
		return err
	}
	l1.Color = color.NRGBA{255, 0, 0, 255}
	p.Add(l1)
	p.Legend.Add("1:1", l1)

	if len(refVals) >= 2 {
		slope, intercept, rsquared, _, _, _ := stats.LinearRegression(refVals, candVals)
		l2, err := plotter.NewLine(plotter.XYs{{min, min*slope + intercept},
			{max, max*slope + intercept}})
		if err != nil {
			return err
		}
		l2.Color = color.NRGBA{127, 127, 127, 255}
		p.Add(l2)
		p.Legend.Add("fit", l2)
		p.Title.Text = fmt.Sprintf("slope=%.2f R²=%.2f", slope, rsquared)
	}

	p.X.Min, p.X.Max = min, max
	p.Y.Min, p.Y.Max = min, max
	return p.Save(4*vg.Inch, 4*vg.Inch, fname)
}
