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

// Package rasterevalutil holds the configuration and command-line
// interface for the RasterEval raster comparison tool.
package rasterevalutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/rastereval"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to RasterEval.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "DataDir",
			usage: `
              DataDir is the directory holding one folder per output variable,
              each folder containing the reference raster and the candidate
              rasters for that variable. It can include environment variables.`,
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{nrmseCmd.Flags(), inundationCmd.Flags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir is the directory where result files are written. It is
              created if it doesn't exist and can include environment variables.`,
			defaultVal: "output",
			flagsets:   []*pflag.FlagSet{nrmseCmd.Flags(), inundationCmd.Flags()},
		},
		{
			name: "Variables",
			usage: `
              Variables maps each variable folder name to the file name prefix
              used within that folder, for example depth to depth or
              time to Inundation_time.`,
			defaultVal: map[string]string{
				"depth":      "depth",
				"speed":      "speed",
				"solid_frac": "solids_frac",
				"time":       "Inundation_time",
				"erosion":    "erosion",
				"IP":         "impact_pressure",
			},
			flagsets: []*pflag.FlagSet{nrmseCmd.Flags(), inundationCmd.Flags()},
		},
		{
			name: "FilePattern",
			usage: `
              FilePattern is the raster file name pattern within each variable
              folder. [VAR] stands in for the variable file prefix and [STEP]
              for the resolution step. Files ending in .asc are read as ESRI
              ASCII rasters; .nc and .ncf files are read as NetCDF.`,
			defaultVal: "Max_[VAR]_[STEP].asc",
			flagsets:   []*pflag.FlagSet{nrmseCmd.Flags(), inundationCmd.Flags()},
		},
		{
			name: "ReferenceStep",
			usage: `
              ReferenceStep is the resolution step of the reference raster.`,
			defaultVal: "N10m",
			flagsets:   []*pflag.FlagSet{nrmseCmd.Flags(), inundationCmd.Flags()},
		},
		{
			name: "Steps",
			usage: `
              Steps lists the resolution steps of the candidate rasters to be
              compared against the reference.`,
			defaultVal: []string{"N15m", "N20m", "N30m"},
			flagsets:   []*pflag.FlagSet{nrmseCmd.Flags(), inundationCmd.Flags()},
		},
		{
			name: "TimeIndex",
			usage: `
              TimeIndex selects the time slice to read from 3-dimensional
              NetCDF variables. It is ignored for ASCII rasters.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{nrmseCmd.Flags(), inundationCmd.Flags()},
		},
		{
			name: "NRMSE.Normalization",
			usage: `
              NRMSE.Normalization chooses the reference statistic the root
              mean square error is divided by. Options are 'range', 'mean',
              'stddev', and 'rms'.`,
			shorthand:  "n",
			defaultVal: "range",
			flagsets:   []*pflag.FlagSet{nrmseCmd.Flags()},
		},
		{
			name: "NRMSE.ScatterPlots",
			usage: `
              NRMSE.ScatterPlots specifies whether to write one
              reference-vs-candidate scatter plot PNG per comparison.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{nrmseCmd.Flags()},
		},
		{
			name: "Inundation.Threshold",
			usage: `
              Inundation.Threshold is the wetness threshold: a cell is wet
              when its value exceeds this number.`,
			shorthand:  "t",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{inundationCmd.Flags()},
		},
		{
			name: "Inundation.Shapefile",
			usage: `
              Inundation.Shapefile specifies whether to also export each
              classification as a polygon shapefile.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{inundationCmd.Flags()},
		},
		{
			name: "Inundation.GridProj",
			usage: `
              Inundation.GridProj gives the projection of the rasters in WKT
              format; when set it is written as the .prj sidecar of exported
              shapefiles.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{inundationCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("RASTEREVAL")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(nrmseCmd)
	Root.AddCommand(inundationCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("rastereval: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "rastereval",
	Short: "A raster simulation output comparison tool.",
	Long: `RasterEval compares gridded simulation outputs, such as flood or
debris-flow model results produced at different grid resolutions, against a
fine-resolution reference. Use the subcommands specified below to access the
comparison functionality.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'RASTEREVAL_var' where 'var' is the name of the variable to be set. Many
configuration variables are additionally allowed to contain environment
variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of RasterEval.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("RasterEval v%s\n", rastereval.Version)
	},
	DisableAutoGenTag: true,
}

// nrmseCmd is a command that calculates NRMSE values for every variable
// and candidate resolution step.
var nrmseCmd = &cobra.Command{
	Use:   "nrmse",
	Short: "Calculate normalized root mean square errors.",
	Long: `nrmse compares each candidate raster against the reference raster of
its variable and writes one normalized root mean square error per comparison
to a CSV file, expressed as a percentage of the chosen reference statistic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		norm, err := rastereval.ParseNormalization(Cfg.GetString("NRMSE.Normalization"))
		if err != nil {
			return err
		}
		return RunNRMSE(&NRMSEConfig{
			EvalConfig: evalConfigFromCfg(),
			Norm:       norm,
			Scatter:    Cfg.GetBool("NRMSE.ScatterPlots"),
		})
	},
	DisableAutoGenTag: true,
}

// inundationCmd is a command that classifies wet/dry agreement for every
// variable and candidate resolution step.
var inundationCmd = &cobra.Command{
	Use:   "inundation",
	Short: "Classify wet/dry agreement.",
	Long: `inundation classifies every cell of each candidate raster as a hit,
miss, false alarm, or correct negative relative to the reference raster,
writes the classification rasters, and writes a CSV of per-comparison
contingency statistics (counts, areas, percentages, hit rate, false alarm
ratio, and critical success index).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInundation(&InundationConfig{
			EvalConfig: evalConfigFromCfg(),
			Threshold:  Cfg.GetFloat64("Inundation.Threshold"),
			Shapefile:  Cfg.GetBool("Inundation.Shapefile"),
			GridProj:   Cfg.GetString("Inundation.GridProj"),
		})
	},
	DisableAutoGenTag: true,
}

// evalConfigFromCfg collects the configuration shared by both commands.
func evalConfigFromCfg() EvalConfig {
	return EvalConfig{
		DataDir:       os.ExpandEnv(Cfg.GetString("DataDir")),
		OutputDir:     os.ExpandEnv(Cfg.GetString("OutputDir")),
		Variables:     GetStringMapString("Variables", Cfg),
		FilePattern:   Cfg.GetString("FilePattern"),
		ReferenceStep: Cfg.GetString("ReferenceStep"),
		Steps:         expandStringSlice(Cfg.GetStringSlice("Steps")),
		TimeIndex:     Cfg.GetInt("TimeIndex"),
	}
}
