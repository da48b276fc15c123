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

// Command rastereval is a command-line interface for comparing raster
// simulation outputs.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/rastereval/rasterevalutil"
)

func main() {
	if err := rasterevalutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
