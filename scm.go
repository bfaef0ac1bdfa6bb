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

// Package scm implements a simple climate model: a deterministic,
// annual-timestep simulator that converts time series of greenhouse-gas and
// aerosol emissions into global mean surface temperature change and sea level
// change. Carbon-cycle and climate responses follow the pulse-response
// formulation of Joos et al. (1996), radiative forcing follows the IPCC TAR
// closed-form expressions, and the temperature and sea-level responses are
// double-exponential impulse response functions fit to a HadCM3 4×CO2 run.
package scm

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Version gives the model version number.
const Version = "1.0.0"

// ModelManipulator is a function that operates on the model state.
type ModelManipulator func(m *SCM) error

// SCM holds the simulation state: the configuration, the input emissions, the
// precomputed response-function kernels, and the year-indexed output series.
// Simulations are composed from manipulator functions, which are run in order
// by Init, Run, and Cleanup. All series are owned by the SCM for the lifetime
// of the run and are appended to only at the current year boundary, so a
// value for year t never depends on information from years after t.
type SCM struct {
	// Config holds the model constants. It must be set before calling Init.
	Config *Config

	// Emissions holds the input emissions, one record per year. It must
	// cover the simulated year range.
	Emissions *Emissions

	// InitFuncs are the functions for initializing the model, such as
	// generating the response-function kernels and validating the
	// emissions inputs.
	InitFuncs []ModelManipulator

	// RunFuncs are the functions that advance the model by one year. They
	// are run, in order, once for every simulated year.
	RunFuncs []ModelManipulator

	// CleanupFuncs are the functions that write or plot the results after
	// the simulation finishes.
	CleanupFuncs []ModelManipulator

	// Done specifies whether the simulation is finished.
	Done bool

	// Response-function kernels, generated once by ResponseFunctions().
	oceanResponse       []float64 // surface-ocean carbon remaining after a unit pulse [µmol/kg per ppm]
	biosphereResponse   []float64 // fraction of an NPP pulse decayed back to the atmosphere
	temperatureResponse []float64
	seaLevelResponse    []float64

	// Year-indexed series. Concentrations are stored as perturbations
	// from the pre-industrial baselines, as in Joos et al. (1996);
	// Results converts them to absolute concentrations.
	co2      []float64 // [ppm above baseline]
	ch4      []float64 // [ppb above baseline]
	n2o      []float64 // [ppb above baseline]
	forcing  []float64 // [W/m²]
	deltaT   []float64 // [°C]
	seaLevel []float64 // [cm]

	yearIndex int
}

// Init initializes the simulation by checking the configuration and running
// the InitFuncs in order.
func (m *SCM) Init() error {
	if m.Config == nil {
		return fmt.Errorf("scm: model configuration is not specified")
	}
	if err := m.Config.Check(); err != nil {
		return err
	}
	if m.Emissions == nil {
		return fmt.Errorf("scm: model emissions are not specified")
	}
	for _, f := range m.InitFuncs {
		if err := f(m); err != nil {
			return err
		}
	}
	return nil
}

// Run carries out the simulation, running the RunFuncs once for each year
// from the configured start year through the end year, inclusive.
func (m *SCM) Run() error {
	for !m.Done {
		for _, f := range m.RunFuncs {
			if err := f(m); err != nil {
				return err
			}
		}
		m.yearIndex++
		if m.yearIndex >= m.Config.numYears() {
			m.Done = true
		}
	}
	return nil
}

// Cleanup runs the CleanupFuncs in order.
func (m *SCM) Cleanup() error {
	for _, f := range m.CleanupFuncs {
		if err := f(m); err != nil {
			return err
		}
	}
	return nil
}

// YearIndex returns the zero-based index of the year currently being
// simulated.
func (m *SCM) YearIndex() int { return m.yearIndex }

// Year returns the calendar year currently being simulated.
func (m *SCM) Year() int { return m.Config.StartYear + m.yearIndex }

// currentEmissions returns the emissions record for the year currently
// being simulated.
func (m *SCM) currentEmissions() (*EmisRecord, error) {
	return m.Emissions.Record(m.Year())
}

// OutputOptions returns the names of the model variables that can be
// requested from Results or used in output expressions.
func (m *SCM) OutputOptions() []string {
	return []string{
		"Year",
		"CO2Concentration",
		"CH4Concentration",
		"N2OConcentration",
		"TotalForcing",
		"TemperatureChange",
		"SeaLevelChange",
		"CO2Emissions",
		"CH4Emissions",
		"N2OEmissions",
		"SOxEmissions",
	}
}

// Results returns the simulation results for the requested variables, one
// value per simulated year. Concentrations are reported as absolute values
// (baseline plus the computed perturbation); forcing, temperature, and sea
// level are reported as changes relative to the pre-industrial state.
func (m *SCM) Results(variables ...string) (map[string][]float64, error) {
	out := make(map[string][]float64, len(variables))
	for _, v := range variables {
		d, err := m.outputData(v)
		if err != nil {
			return nil, err
		}
		out[v] = d
	}
	return out, nil
}

func (m *SCM) outputData(variable string) ([]float64, error) {
	n := m.Config.numYears()
	switch variable {
	case "Year":
		d := make([]float64, n)
		for i := range d {
			d[i] = float64(m.Config.StartYear + i)
		}
		return d, nil
	case "CO2Concentration":
		d := make([]float64, len(m.co2))
		copy(d, m.co2)
		floats.AddConst(m.Config.BaselineCO2, d)
		return d, nil
	case "CH4Concentration":
		d := make([]float64, len(m.ch4))
		copy(d, m.ch4)
		floats.AddConst(m.Config.BaselineCH4, d)
		return d, nil
	case "N2OConcentration":
		d := make([]float64, len(m.n2o))
		copy(d, m.n2o)
		floats.AddConst(m.Config.BaselineN2O, d)
		return d, nil
	case "TotalForcing":
		d := make([]float64, len(m.forcing))
		copy(d, m.forcing)
		return d, nil
	case "TemperatureChange":
		d := make([]float64, len(m.deltaT))
		copy(d, m.deltaT)
		return d, nil
	case "SeaLevelChange":
		d := make([]float64, len(m.seaLevel))
		copy(d, m.seaLevel)
		return d, nil
	case "CO2Emissions", "CH4Emissions", "N2OEmissions", "SOxEmissions":
		d := make([]float64, n)
		for i := range d {
			r, err := m.Emissions.Record(m.Config.StartYear + i)
			if err != nil {
				return nil, err
			}
			switch variable {
			case "CO2Emissions":
				d[i] = r.CO2
			case "CH4Emissions":
				d[i] = r.CH4
			case "N2OEmissions":
				d[i] = r.N2O
			case "SOxEmissions":
				d[i] = r.SOx
			}
		}
		return d, nil
	default:
		return nil, fmt.Errorf("scm: undefined variable name '%s'", variable)
	}
}

// outputUnits gives the physical units of each model variable,
// for output-file headers and plot axis labels.
var outputUnits = map[string]string{
	"Year":              "yr",
	"CO2Concentration":  "ppm",
	"CH4Concentration":  "ppb",
	"N2OConcentration":  "ppb",
	"TotalForcing":      "W/m²",
	"TemperatureChange": "°C",
	"SeaLevelChange":    "cm",
	"CO2Emissions":      "PgC/yr",
	"CH4Emissions":      "Tg/yr",
	"N2OEmissions":      "Tg/yr",
	"SOxEmissions":      "TgS/yr",
}

// DefaultInitFuncs returns the initialization functions that are used in
// typical simulations.
func DefaultInitFuncs() []ModelManipulator {
	return []ModelManipulator{
		ResponseFunctions(),
		CheckEmissions(),
	}
}

// DefaultRunFuncs returns the science functions that are run in typical
// simulations, in causal order: emissions to concentrations, concentrations
// to forcing, forcing to temperature, and temperature to sea level.
func DefaultRunFuncs() []ModelManipulator {
	return []ModelManipulator{
		CarbonCycle(),
		TraceGases(),
		RadiativeForcing(),
		Temperature(),
		SeaLevel(),
	}
}
