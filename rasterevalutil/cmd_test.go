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
	"os"
	"testing"

	"github.com/BurntSushi/toml"
)

type exampleConfig struct {
	DataDir       string
	OutputDir     string
	FilePattern   string
	ReferenceStep string
	Steps         []string
	Variables     map[string]string
}

func TestConfigExample(t *testing.T) {
	b, err := os.Open("../cmd/rastereval/configExample.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	cfg := new(exampleConfig)
	if _, err := toml.DecodeReader(b, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.ReferenceStep != "N10m" {
		t.Errorf("ReferenceStep: want N10m, got %s", cfg.ReferenceStep)
	}
	if len(cfg.Steps) != 3 {
		t.Errorf("Steps: want 3 entries, got %d", len(cfg.Steps))
	}
	if cfg.Variables["time"] != "Inundation_time" {
		t.Errorf("Variables[time]: want Inundation_time, got %s", cfg.Variables["time"])
	}
}

func TestGetStringMapString(t *testing.T) {
	// The console default for Variables is a JSON-encoded string.
	vars := GetStringMapString("Variables", Cfg)
	if vars["depth"] != "depth" {
		t.Errorf("Variables[depth]: want depth, got %s", vars["depth"])
	}
	if vars["IP"] != "impact_pressure" {
		t.Errorf("Variables[IP]: want impact_pressure, got %s", vars["IP"])
	}
}

func TestSetConfig(t *testing.T) {
	if err := Root.PersistentFlags().Set("config", "../cmd/rastereval/configExample.toml"); err != nil {
		t.Fatal(err)
	}
	defer Root.PersistentFlags().Set("config", "")
	if err := setConfig(); err != nil {
		t.Fatal(err)
	}
	if got := Cfg.GetString("DataDir"); got != "testdata" {
		t.Errorf("DataDir: want testdata, got %s", got)
	}
	if got := Cfg.GetString("NRMSE.Normalization"); got != "range" {
		t.Errorf("NRMSE.Normalization: want range, got %s", got)
	}
}
