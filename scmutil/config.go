/*
Copyright © 2026 the SCM authors.
This file is part of SCM.

SCM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SCM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SCM.  If not, see <http://www.gnu.org/licenses/>.
*/

package scmutil

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/scm"
	"github.com/spf13/cast"
)

// ConfigData holds information about an SCM simulation.
type ConfigData struct {
	// Model holds the model constants. Any constant left unset in the
	// configuration file keeps its reference default.
	Model scm.Config

	// EmissionsFile is the path to the emissions table: one line per
	// year with CO2 [PgC/yr], CH4 [Tg/yr], N2O [Tg/yr], and SOx [TgS/yr]
	// emissions. Missing years are interpolated. The path can include
	// environment variables.
	EmissionsFile string

	// OutputFile is the path to the desired output file location. It can
	// include environment variables.
	OutputFile string

	// LogFile is the path to the desired logfile location. It can include
	// environment variables. If LogFile is left blank, status messages
	// are only written to standard output.
	LogFile string

	// OutputVariables specifies which model variables should be included
	// in the output file, as a map from column name to an expression over
	// the model variables (for example
	// "TemperatureChange" = "TemperatureChange" or
	// "CO2AboveBaseline" = "CO2Concentration - 278.305").
	OutputVariables map[string]string

	// PlotFiles maps model variable names to image file locations
	// (.png, .pdf, or .svg); a plot of each named variable is saved after
	// the simulation finishes. Paths can include environment variables.
	PlotFiles map[string]string

	// LogInterval is the number of simulated years between status lines.
	LogInterval int
}

// ReadConfigFile reads and parses a TOML configuration file.
func ReadConfigFile(filename string) (*ConfigData, error) {
	config := &ConfigData{
		Model:       *scm.DefaultConfig(),
		LogInterval: 10,
	}
	if _, err := toml.DecodeFile(filename, config); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("the configuration file you have specified, %v, does not "+
				"appear to exist. Please check the file name and location and "+
				"try again", filename)
		}
		return nil, fmt.Errorf("there has been an error parsing the configuration file: %v", err)
	}

	config.EmissionsFile = os.ExpandEnv(config.EmissionsFile)
	config.OutputFile = os.ExpandEnv(config.OutputFile)
	config.LogFile = os.ExpandEnv(config.LogFile)
	for k, v := range config.PlotFiles {
		config.PlotFiles[k] = os.ExpandEnv(v)
	}
	for k, v := range config.OutputVariables {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		config.OutputVariables[k] = os.ExpandEnv(v)
	}

	if config.EmissionsFile == "" {
		return nil, fmt.Errorf("you need to specify an emissions file in the configuration file")
	}
	if config.OutputFile == "" {
		return nil, fmt.Errorf("you need to specify an output file in the configuration file")
	}
	if len(config.OutputVariables) == 0 {
		config.OutputVariables = map[string]string{
			"CO2Concentration":  "CO2Concentration",
			"CH4Concentration":  "CH4Concentration",
			"N2OConcentration":  "N2OConcentration",
			"TotalForcing":      "TotalForcing",
			"TemperatureChange": "TemperatureChange",
			"SeaLevelChange":    "SeaLevelChange",
		}
	}
	return config, nil
}

// ApplyOverrides sets model constants from "Name=value" strings, as given on
// the command line. Names must match fields of scm.Config.
func (c *ConfigData) ApplyOverrides(overrides []string) error {
	v := reflect.ValueOf(&c.Model).Elem()
	for _, o := range overrides {
		parts := strings.SplitN(o, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("scm: invalid override %q; use Name=value", o)
		}
		name, val := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		f := v.FieldByName(name)
		if !f.IsValid() {
			return fmt.Errorf("scm: unknown model constant %q in override", name)
		}
		switch f.Kind() {
		case reflect.Int:
			i, err := cast.ToIntE(val)
			if err != nil {
				return fmt.Errorf("scm: override %s: %v", name, err)
			}
			f.SetInt(int64(i))
		case reflect.Float64:
			x, err := cast.ToFloat64E(val)
			if err != nil {
				return fmt.Errorf("scm: override %s: %v", name, err)
			}
			f.SetFloat(x)
		default:
			return fmt.Errorf("scm: model constant %q cannot be overridden", name)
		}
	}
	return nil
}
