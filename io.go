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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/sparse"
	goshp "github.com/jonas-p/go-shp"
)

// asciiHeaderKeys are the recognized ESRI ASCII raster header fields.
var asciiHeaderKeys = map[string]bool{
	"ncols":        true,
	"nrows":        true,
	"xllcorner":    true,
	"yllcorner":    true,
	"cellsize":     true,
	"nodata_value": true,
}

// ReadASCII reads an ESRI ASCII raster. The first data row in the file is
// the northernmost row of the grid.
func ReadASCII(r io.Reader) (*Grid, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	s.Split(bufio.ScanWords)
	next := func() (string, error) {
		if !s.Scan() {
			if err := s.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return s.Text(), nil
	}

	hdr := make(map[string]float64)
	var pending string // first data token, read while looking for header keys
	for pending == "" {
		tok, err := next()
		if err != nil {
			return nil, fmt.Errorf("rastereval: reading ascii raster header: %v", err)
		}
		key := strings.ToLower(tok)
		if !asciiHeaderKeys[key] {
			pending = tok
			break
		}
		vtok, err := next()
		if err != nil {
			return nil, fmt.Errorf("rastereval: reading ascii raster header field '%s': %v", tok, err)
		}
		v, err := strconv.ParseFloat(vtok, 64)
		if err != nil {
			return nil, fmt.Errorf("rastereval: parsing ascii raster header field '%s': %v", tok, err)
		}
		hdr[key] = v
	}
	for _, k := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize"} {
		if _, ok := hdr[k]; !ok {
			return nil, fmt.Errorf("rastereval: ascii raster header is missing field '%s'", k)
		}
	}

	nx, ny := int(hdr["ncols"]), int(hdr["nrows"])
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("rastereval: invalid ascii raster dimensions [%d, %d]", ny, nx)
	}
	data := sparse.ZerosDense(ny, nx)
	for k := 0; k < ny*nx; k++ {
		tok := pending
		if tok == "" {
			var err error
			tok, err = next()
			if err != nil {
				return nil, fmt.Errorf("rastereval: ascii raster has %d values but shape [%d, %d] requires %d: %v",
					k, ny, nx, ny*nx, err)
			}
		}
		pending = ""
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("rastereval: parsing ascii raster value %d: %v", k, err)
		}
		data.Elements[k] = v
	}

	g := &Grid{
		Data:   data,
		Xo:     hdr["xllcorner"],
		Yo:     hdr["yllcorner"],
		Dx:     hdr["cellsize"],
		Dy:     hdr["cellsize"],
		NoData: DefaultNoData,
	}
	if v, ok := hdr["nodata_value"]; ok {
		g.NoData = v
	}
	return g, nil
}

// ReadASCIIFile reads the ESRI ASCII raster stored at filename.
func ReadASCIIFile(filename string) (*Grid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("rastereval: opening ascii raster: %v", err)
	}
	defer f.Close()
	return ReadASCII(f)
}

// WriteASCII writes g as an ESRI ASCII raster.
func WriteASCII(w io.Writer, g *Grid) error {
	if g.Dx != g.Dy {
		return fmt.Errorf("rastereval: ascii rasters require square cells but got dx=%g, dy=%g", g.Dx, g.Dy)
	}
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "ncols %d\n", g.Nx())
	fmt.Fprintf(b, "nrows %d\n", g.Ny())
	fmt.Fprintf(b, "xllcorner %g\n", g.Xo)
	fmt.Fprintf(b, "yllcorner %g\n", g.Yo)
	fmt.Fprintf(b, "cellsize %g\n", g.Dx)
	fmt.Fprintf(b, "NODATA_value %g\n", g.NoData)
	for j := 0; j < g.Ny(); j++ {
		for i := 0; i < g.Nx(); i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "%g", g.Data.Get(j, i))
		}
		b.WriteByte('\n')
	}
	if err := b.Flush(); err != nil {
		return fmt.Errorf("rastereval: writing ascii raster: %v", err)
	}
	return nil
}

// WriteClassificationASCII writes the category grid of c as an ESRI ASCII
// raster of integers, using the georeference of g and CategoryNoData as
// the no-data value.
func WriteClassificationASCII(w io.Writer, g *Grid, c *Classification) error {
	if g.Dx != g.Dy {
		return fmt.Errorf("rastereval: ascii rasters require square cells but got dx=%g, dy=%g", g.Dx, g.Dy)
	}
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "ncols %d\n", g.Nx())
	fmt.Fprintf(b, "nrows %d\n", g.Ny())
	fmt.Fprintf(b, "xllcorner %g\n", g.Xo)
	fmt.Fprintf(b, "yllcorner %g\n", g.Yo)
	fmt.Fprintf(b, "cellsize %g\n", g.Dx)
	fmt.Fprintf(b, "NODATA_value %d\n", CategoryNoData)
	for j := 0; j < g.Ny(); j++ {
		for i := 0; i < g.Nx(); i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "%d", c.Categories.Get(j, i))
		}
		b.WriteByte('\n')
	}
	if err := b.Flush(); err != nil {
		return fmt.Errorf("rastereval: writing classification raster: %v", err)
	}
	return nil
}

// ReadNetCDF reads the named variable from a NetCDF file into a grid.
// 2-dimensional variables are read whole; for 3-dimensional variables,
// index selects the slice along the first (usually time) dimension. The
// georeference of the returned grid is left at its defaults.
func ReadNetCDF(ff *cdf.File, name string, index int) (*Grid, error) {
	dims := ff.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("rastereval: read netcdf: variable %v not in file", name)
	}
	var start, end []int
	var ny, nx int
	switch len(dims) {
	case 2:
		ny, nx = dims[0], dims[1]
	case 3:
		ny, nx = dims[1], dims[2]
		start, end = make([]int, 3), make([]int, 3)
		start[0], end[0] = index, index+1
	default:
		return nil, fmt.Errorf("rastereval: read netcdf: variable %v has %d dimensions; expected 2 or 3",
			name, len(dims))
	}
	r := ff.Reader(name, start, end)
	buf := r.Zero(ny * nx)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("rastereval: read netcdf variable %s: %v", name, err)
	}
	data := sparse.ZerosDense(ny, nx)
	switch b := buf.(type) {
	case []float32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	case []float64:
		copy(data.Elements, b)
	default:
		return nil, fmt.Errorf("rastereval: read netcdf variable %s: unsupported type %T", name, buf)
	}
	return NewGridFrom(data)
}

// ReadNetCDFFile reads the named variable from the NetCDF file stored at
// filename.
func ReadNetCDFFile(filename, name string, index int) (*Grid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("rastereval: opening netcdf file: %v", err)
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("rastereval: opening netcdf file %s: %v", filename, err)
	}
	return ReadNetCDF(ff, name, index)
}

// WriteClassificationShapefile writes one polygon per classified cell of
// c to a shapefile, with numeric category and text label fields. Cells
// marked CategoryNoData are omitted. If proj4 is not empty it is written
// to a .prj sidecar file.
func WriteClassificationShapefile(fileName string, g *Grid, c *Classification, proj4 string) error {
	fields := []goshp.Field{
		goshp.NumberField("category", 3),
		goshp.StringField("label", 16),
	}
	fileBase := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	fileName = fileBase + ".shp"
	shape, err := shp.NewEncoderFromFields(fileName, goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("rastereval: creating classification shapefile: %v", err)
	}
	for j := 0; j < g.Ny(); j++ {
		for i := 0; i < g.Nx(); i++ {
			cat := c.Categories.Get(j, i)
			if cat == CategoryNoData {
				continue
			}
			err = shape.EncodeFields(g.CellPolygon(j, i), cat, Category(cat).String())
			if err != nil {
				shape.Close()
				return fmt.Errorf("rastereval: writing classification shapefile: %v", err)
			}
		}
	}
	shape.Close()

	if proj4 != "" {
		f, err := os.Create(fileBase + ".prj")
		if err != nil {
			return fmt.Errorf("rastereval: creating prj file: %v", err)
		}
		fmt.Fprint(f, proj4)
		f.Close()
	}
	return nil
}
