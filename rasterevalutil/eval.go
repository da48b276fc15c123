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
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spatialmodel/rastereval"
)

// EvalConfig holds the configuration shared by the nrmse and inundation
// commands.
type EvalConfig struct {
	// DataDir holds one folder per variable; OutputDir receives the
	// result files.
	DataDir, OutputDir string

	// Variables maps variable folder names to raster file name prefixes.
	Variables map[string]string

	// FilePattern is the raster file name pattern, with [VAR] and [STEP]
	// placeholders.
	FilePattern string

	// ReferenceStep is the resolution step of the reference raster and
	// Steps are the candidate resolution steps.
	ReferenceStep string
	Steps         []string

	// TimeIndex selects the time slice of 3-dimensional NetCDF variables.
	TimeIndex int
}

// NRMSEConfig configures the nrmse command.
type NRMSEConfig struct {
	EvalConfig
	Norm    rastereval.Normalization
	Scatter bool
}

// InundationConfig configures the inundation command.
type InundationConfig struct {
	EvalConfig
	Threshold float64
	Shapefile bool
	GridProj  string
}

// rasterPath returns the path of the raster for the given variable prefix
// and resolution step.
func (c *EvalConfig) rasterPath(folder, prefix, step string) string {
	name := strings.Replace(c.FilePattern, "[VAR]", prefix, -1)
	name = strings.Replace(name, "[STEP]", step, -1)
	return filepath.Join(c.DataDir, folder, name)
}

// loadGrid reads the raster stored at path, choosing the reader by file
// extension.
func (c *EvalConfig) loadGrid(path, varName string) (*rastereval.Grid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".asc", ".txt":
		return rastereval.ReadASCIIFile(path)
	case ".nc", ".ncf":
		return rastereval.ReadNetCDFFile(path, varName, c.TimeIndex)
	default:
		return nil, fmt.Errorf("rastereval: unsupported raster file type '%s'", filepath.Ext(path))
	}
}

// collectPairs loads the reference and candidate rasters for every
// configured variable, in sorted variable order. Missing files are logged
// and skipped rather than aborting the run.
func (c *EvalConfig) collectPairs() ([]rastereval.Pair, error) {
	folders := make([]string, 0, len(c.Variables))
	for folder := range c.Variables {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	var pairs []rastereval.Pair
	for _, folder := range folders {
		prefix := c.Variables[folder]
		refPath := c.rasterPath(folder, prefix, c.ReferenceStep)
		if _, err := os.Stat(refPath); err != nil {
			log.WithField("file", refPath).Warn("reference raster not found; skipping variable")
			continue
		}
		ref, err := c.loadGrid(refPath, prefix)
		if err != nil {
			return nil, err
		}
		for _, step := range c.Steps {
			candPath := c.rasterPath(folder, prefix, step)
			if _, err := os.Stat(candPath); err != nil {
				log.WithField("file", candPath).Warn("candidate raster not found; skipping")
				continue
			}
			cand, err := c.loadGrid(candPath, prefix)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, rastereval.Pair{
				Variable: folder,
				Step:     step,
				Ref:      ref,
				Cand:     cand,
			})
		}
	}
	return pairs, nil
}

// RunNRMSE calculates one NRMSE per variable and candidate resolution
// step and writes the results to nrmse_results.csv in the output
// directory.
func RunNRMSE(c *NRMSEConfig) error {
	if err := checkOutputDir(c.OutputDir); err != nil {
		return err
	}
	pairs, err := c.collectPairs()
	if err != nil {
		return err
	}
	results := rastereval.Compare(pairs, rastereval.Options{
		NRMSE:         true,
		Normalization: c.Norm,
	})

	f, err := os.Create(filepath.Join(c.OutputDir, "nrmse_results.csv"))
	if err != nil {
		return fmt.Errorf("rastereval: creating nrmse results file: %v", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"variable", "candidate", "nrmse", "normalization", "valid_cells"})
	for i, r := range results {
		if r.Err != nil {
			log.WithFields(log.Fields{
				"variable":  r.Variable,
				"candidate": r.Step,
			}).Error(r.Err)
			continue
		}
		log.WithFields(log.Fields{
			"variable":  r.Variable,
			"candidate": r.Step,
			"nrmse":     fmtPercent(r.NRMSE),
		}).Info("calculated NRMSE")
		w.Write([]string{
			r.Variable,
			r.Step,
			fmtPercent(r.NRMSE),
			r.Normalization.String(),
			fmt.Sprintf("%d", r.N),
		})
		if c.Scatter {
			refVals, candVals, err := rastereval.ValidPairs(pairs[i].Ref, pairs[i].Cand)
			if err != nil {
				return err
			}
			fname := filepath.Join(c.OutputDir,
				fmt.Sprintf("scatter_%s_%s.png", r.Variable, r.Step))
			if err := writeScatterPlot(fname, refVals, candVals); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// RunInundation classifies wet/dry agreement for every variable and
// candidate resolution step, writes one classification raster per
// comparison, and writes contingency statistics to inundation_stats.csv
// in the output directory.
func RunInundation(c *InundationConfig) error {
	if err := checkOutputDir(c.OutputDir); err != nil {
		return err
	}
	pairs, err := c.collectPairs()
	if err != nil {
		return err
	}
	results := rastereval.Compare(pairs, rastereval.Options{
		Classify:  true,
		Threshold: c.Threshold,
	})

	f, err := os.Create(filepath.Join(c.OutputDir, "inundation_stats.csv"))
	if err != nil {
		return fmt.Errorf("rastereval: creating inundation stats file: %v", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{
		"variable", "candidate",
		"hits", "misses", "false_alarms", "correct_negatives",
		"hit_area", "miss_area", "false_alarm_area",
		"hit_pct", "miss_pct", "false_alarm_pct",
		"hit_rate", "false_alarm_ratio", "csi",
	})
	for i, r := range results {
		if r.Err != nil {
			log.WithFields(log.Fields{
				"variable":  r.Variable,
				"candidate": r.Step,
			}).Error(r.Err)
			continue
		}
		cls := r.Classification
		t := cls.Table

		base := fmt.Sprintf("classification_%s_%s", r.Variable, r.Step)
		af, err := os.Create(filepath.Join(c.OutputDir, base+".asc"))
		if err != nil {
			return fmt.Errorf("rastereval: creating classification raster: %v", err)
		}
		err = rastereval.WriteClassificationASCII(af, pairs[i].Ref, cls)
		af.Close()
		if err != nil {
			return err
		}
		if c.Shapefile {
			err = rastereval.WriteClassificationShapefile(
				filepath.Join(c.OutputDir, base+".shp"), pairs[i].Ref, cls, c.GridProj)
			if err != nil {
				return err
			}
		}

		log.WithFields(log.Fields{
			"variable":  r.Variable,
			"candidate": r.Step,
			"csi":       fmtFloat(t.CriticalSuccessIndex()),
		}).Info("classified wet/dry agreement")
		w.Write([]string{
			r.Variable,
			r.Step,
			fmt.Sprintf("%d", t.Hits),
			fmt.Sprintf("%d", t.Misses),
			fmt.Sprintf("%d", t.FalseAlarms),
			fmt.Sprintf("%d", t.CorrectNegatives),
			fmtFloat(cls.Area(rastereval.Hit)),
			fmtFloat(cls.Area(rastereval.Miss)),
			fmtFloat(cls.Area(rastereval.FalseAlarm)),
			fmtPercent(t.FractionOfReferenceWet(rastereval.Hit)),
			fmtPercent(t.FractionOfReferenceWet(rastereval.Miss)),
			fmtPercent(t.FractionOfReferenceWet(rastereval.FalseAlarm)),
			fmtFloat(t.HitRate()),
			fmtFloat(t.FalseAlarmRatio()),
			fmtFloat(t.CriticalSuccessIndex()),
		})
	}
	w.Flush()
	return w.Error()
}

// fmtPercent formats a fraction as a percentage with two decimal places.
func fmtPercent(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// fmtFloat formats a metric value with two decimal places.
func fmtFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", v)
}
