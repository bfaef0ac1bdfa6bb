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

package scm

import (
	"math"
	"testing"
)

const testTolerance = 1.e-8

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func absDifferent(a, b float64) bool {
	return math.Abs(a-b) > testTolerance
}

// constantEmissions creates an emissions holder covering [startYear,
// endYear] with the same record every year.
func constantEmissions(startYear, endYear int, r EmisRecord) *Emissions {
	e := NewEmissions(startYear)
	for y := startYear; y <= endYear; y++ {
		rec := r
		e.Add(&rec)
	}
	return e
}

func testModel(cfg *Config, emis *Emissions) *SCM {
	return &SCM{
		Config:    cfg,
		Emissions: emis,
		InitFuncs: DefaultInitFuncs(),
		RunFuncs:  DefaultRunFuncs(),
	}
}

func runModel(t *testing.T, cfg *Config, emis *Emissions) *SCM {
	t.Helper()
	m := testModel(cfg, emis)
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	return m
}

// With zero emissions everywhere, every series must stay exactly at its
// pre-industrial value for the whole run.
func TestZeroEmissions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartYear, cfg.EndYear = 1750, 1950
	cfg.NumYearsResponse = 300
	m := runModel(t, cfg, constantEmissions(cfg.StartYear, cfg.EndYear, EmisRecord{}))

	for i := range m.co2 {
		if m.co2[i] != 0 || m.ch4[i] != 0 || m.n2o[i] != 0 {
			t.Fatalf("year index %d: concentration perturbations %g, %g, %g are nonzero",
				i, m.co2[i], m.ch4[i], m.n2o[i])
		}
		if m.forcing[i] != 0 {
			t.Fatalf("year index %d: forcing %g is nonzero", i, m.forcing[i])
		}
		if m.deltaT[i] != 0 || m.seaLevel[i] != 0 {
			t.Fatalf("year index %d: temperature %g or sea level %g is nonzero",
				i, m.deltaT[i], m.seaLevel[i])
		}
	}

	results, err := m.Results("CO2Concentration")
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range results["CO2Concentration"] {
		if absDifferent(v, cfg.BaselineCO2) {
			t.Errorf("year index %d: CO2 concentration %g should equal the baseline %g",
				i, v, cfg.BaselineCO2)
		}
	}
}

// A constant positive CO2 emission must produce monotonically increasing
// CO2 concentration, forcing, temperature, and sea level over the first
// several decades.
func TestConstantCO2Emission(t *testing.T) {
	const emission = 10. // [PgC/yr]

	cfg := DefaultConfig()
	cfg.StartYear, cfg.EndYear = 1750, 1850
	cfg.NumYearsResponse = 200
	m := runModel(t, cfg, constantEmissions(cfg.StartYear, cfg.EndYear,
		EmisRecord{CO2: emission}))

	for i := 1; i <= 60; i++ {
		if m.co2[i] <= m.co2[i-1] {
			t.Fatalf("year index %d: CO2 %g did not increase from %g",
				i, m.co2[i], m.co2[i-1])
		}
		if m.forcing[i] <= m.forcing[i-1] {
			t.Fatalf("year index %d: forcing %g did not increase from %g",
				i, m.forcing[i], m.forcing[i-1])
		}
	}
	if !(m.deltaT[10] > 0) || !(m.deltaT[25] > m.deltaT[10]) || !(m.deltaT[50] > m.deltaT[25]) {
		t.Errorf("temperature change is not increasing: %g, %g, %g",
			m.deltaT[10], m.deltaT[25], m.deltaT[50])
	}
	if !(m.seaLevel[10] > 0) || !(m.seaLevel[50] > m.seaLevel[10]) {
		t.Errorf("sea level change is not increasing: %g, %g",
			m.seaLevel[10], m.seaLevel[50])
	}
	for i := range m.co2 {
		for _, v := range []float64{m.co2[i], m.forcing[i], m.deltaT[i], m.seaLevel[i]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("year index %d: non-finite model output %g", i, v)
			}
		}
	}
}

// The first years of the constant-emission trajectory are checked against
// values computed independently from the model equations.
func TestConstantCO2EmissionReference(t *testing.T) {
	const emission = 10. // [PgC/yr]

	cfg := DefaultConfig()
	cfg.StartYear, cfg.EndYear = 1750, 1760
	cfg.NumYearsResponse = 50
	m := runModel(t, cfg, constantEmissions(cfg.StartYear, cfg.EndYear,
		EmisRecord{CO2: emission}))

	ocean := OceanResponse(cfg.NumYearsResponse, cfg.OceanMixedLayerDepth, cfg.PgCPerPPM)
	bio := BiosphereResponse(cfg.NumYearsResponse)
	load := emission / cfg.PgCPerPPM
	fert := cfg.BiosphereNPP * cfg.FertilizationFactor / cfg.PgCPerPPM

	// Year 1: no flux history yet, so the concentration rises by the
	// emission loading alone.
	c1 := load
	// Year 2: the year-1 air-sea and fertilization fluxes act.
	fas1 := cfg.GasExchangeCoeff * c1
	x1 := fert * math.Log(1+c1/cfg.BaselineCO2)
	c2 := c1 + load - fas1 - x1
	// Year 3: the year-1 fluxes are felt through the response kernels.
	dic2 := fas1 * ocean[1]
	fas2 := cfg.GasExchangeCoeff * (c2 - deltaPCO2FromOcean(dic2))
	x2 := fert * math.Log(1+c2/cfg.BaselineCO2)
	c3 := c2 + load - fas2 - (x2 - x1*bio[1])

	for i, want := range []float64{0, c1, c2, c3} {
		if absDifferent(m.co2[i], want) {
			t.Errorf("year index %d: CO2 perturbation %g, want %g", i, m.co2[i], want)
		}
	}
}

// Extending the simulated year range must reproduce all previously computed
// values exactly: each year depends only on earlier years.
func TestPrefixStability(t *testing.T) {
	emis := EmisRecord{CO2: 8, CH4: 300, N2O: 10, SOx: 60}

	cfg1 := DefaultConfig()
	cfg1.StartYear, cfg1.EndYear = 1750, 1850
	cfg1.NumYearsResponse = 400
	m1 := runModel(t, cfg1, constantEmissions(1750, 1850, emis))

	cfg2 := DefaultConfig()
	cfg2.StartYear, cfg2.EndYear = 1750, 1950
	cfg2.NumYearsResponse = 400
	m2 := runModel(t, cfg2, constantEmissions(1750, 1950, emis))

	for i := range m1.co2 {
		if m1.co2[i] != m2.co2[i] || m1.ch4[i] != m2.ch4[i] || m1.n2o[i] != m2.n2o[i] {
			t.Fatalf("year index %d: concentrations changed when the run was extended", i)
		}
		if m1.forcing[i] != m2.forcing[i] {
			t.Fatalf("year index %d: forcing changed when the run was extended", i)
		}
		if m1.deltaT[i] != m2.deltaT[i] || m1.seaLevel[i] != m2.seaLevel[i] {
			t.Fatalf("year index %d: temperature or sea level changed when the run was extended", i)
		}
	}
}

// Missing emissions for a simulated year must abort the run before any
// computation.
func TestMissingEmissions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartYear, cfg.EndYear = 1750, 1850
	cfg.NumYearsResponse = 100
	m := testModel(cfg, constantEmissions(1750, 1800, EmisRecord{CO2: 1}))
	if err := m.Init(); err == nil {
		t.Error("initializing with incomplete emissions should have failed")
	}
}

// Physically impossible emissions that drive the CO2 concentration below
// zero must abort the run rather than being clamped.
func TestCarbonCycleDomainViolation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartYear, cfg.EndYear = 1750, 1760
	cfg.NumYearsResponse = 50
	m := testModel(cfg, constantEmissions(1750, 1760, EmisRecord{CO2: -1000}))
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	if err := m.Run(); err == nil {
		t.Error("a CO2 concentration below zero should have aborted the run")
	}
}

func TestResultsUndefinedVariable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartYear, cfg.EndYear = 1750, 1755
	cfg.NumYearsResponse = 10
	m := runModel(t, cfg, constantEmissions(1750, 1755, EmisRecord{}))
	if _, err := m.Results("NotAVariable"); err == nil {
		t.Error("requesting an undefined variable should have failed")
	}
}
