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
	"fmt"
	"math"
)

// Config holds the model constants. Every field has a default matching the
// published reference values; zero or negative values that are physically
// impossible are rejected by Check before any computation begins.
type Config struct {
	// StartYear and EndYear give the simulated year range, inclusive.
	StartYear int
	EndYear   int

	// OceanMixedLayerDepth is the depth of the well-mixed surface ocean
	// layer [m]. It controls how much CO2 the surface ocean can absorb
	// per unit time.
	OceanMixedLayerDepth float64

	// NumYearsResponse is the number of years the response-function
	// kernels are evaluated for. Kernel values beyond this horizon are
	// treated as zero by the convolutions.
	NumYearsResponse int

	// Pre-industrial concentrations: CO2 [ppm], CH4 and N2O [ppb].
	BaselineCO2 float64
	BaselineCH4 float64
	BaselineN2O float64

	// PgCPerPPM converts petagrams of carbon to ppm of atmospheric CO2.
	PgCPerPPM float64

	// GasExchangeCoeff is the air-sea gas exchange coefficient
	// [kg m⁻² yr⁻¹] (Joos et al. 1996).
	GasExchangeCoeff float64

	// FertilizationFactor is the logarithmic CO2 fertilization factor β.
	// 0.287 balances a land-use-change emission of 1.1 PgC/yr in the
	// 1980s (Joos et al. 1996); 0.380 balances 1.6 PgC/yr (IPCC 1994).
	FertilizationFactor float64

	// BiosphereNPP is the pre-industrial net primary production [GtC/yr].
	BiosphereNPP float64

	// Atmospheric lifetimes [yr].
	LifetimeCH4 float64
	LifetimeN2O float64

	// Mass-to-mixing-ratio scales [Tg per ppb]
	// (IPCC TAR report, chapter 4).
	ScaleCH4 float64
	ScaleN2O float64

	// Direct and indirect aerosol radiative forcing factors [(W/m²)/TgS].
	AerosolDirectFactor   float64
	AerosolIndirectFactor float64

	// ClimateSensitivity is the equilibrium temperature change for a
	// doubling of atmospheric equivalent CO2, expressed as ΔT₂ₓ/Q₂ₓ.
	ClimateSensitivity float64
}

// DefaultConfig returns a configuration with all model constants set to the
// reference values. Callers normally only change the year range, the
// emissions file, the mixed layer depth, and the response horizon.
func DefaultConfig() *Config {
	return &Config{
		StartYear:             1750,
		EndYear:               2100,
		OceanMixedLayerDepth:  75,
		NumYearsResponse:      400,
		BaselineCO2:           278.305,
		BaselineCH4:           700,
		BaselineN2O:           270,
		PgCPerPPM:             2.123,
		GasExchangeCoeff:      0.1042,
		FertilizationFactor:   0.287,
		BiosphereNPP:          60,
		LifetimeCH4:           10,
		LifetimeN2O:           114,
		ScaleCH4:              2.78,
		ScaleN2O:              4.8,
		AerosolDirectFactor:   -0.002265226,
		AerosolIndirectFactor: -0.013558119,
		ClimateSensitivity:    1.1, // 4.114/3.74
	}
}

// Check returns an error if any configuration value is invalid. It is run by
// Init before any computation begins.
func (c *Config) Check() error {
	if c.EndYear <= c.StartYear {
		return fmt.Errorf("scm: end year %d is not after start year %d",
			c.EndYear, c.StartYear)
	}
	if !(c.OceanMixedLayerDepth > 0) {
		return fmt.Errorf("scm: ocean mixed layer depth must be positive but is %g",
			c.OceanMixedLayerDepth)
	}
	if c.NumYearsResponse < 1 {
		return fmt.Errorf("scm: response function horizon must be at least 1 year but is %d",
			c.NumYearsResponse)
	}
	for name, v := range map[string]float64{
		"BaselineCO2":  c.BaselineCO2,
		"BaselineCH4":  c.BaselineCH4,
		"BaselineN2O":  c.BaselineN2O,
		"PgCPerPPM":    c.PgCPerPPM,
		"LifetimeCH4":  c.LifetimeCH4,
		"LifetimeN2O":  c.LifetimeN2O,
		"ScaleCH4":     c.ScaleCH4,
		"ScaleN2O":     c.ScaleN2O,
		"BiosphereNPP": c.BiosphereNPP,
	} {
		if !(v > 0) {
			return fmt.Errorf("scm: %s must be positive but is %g", name, v)
		}
	}
	for name, v := range map[string]float64{
		"OceanMixedLayerDepth":  c.OceanMixedLayerDepth,
		"GasExchangeCoeff":      c.GasExchangeCoeff,
		"FertilizationFactor":   c.FertilizationFactor,
		"AerosolDirectFactor":   c.AerosolDirectFactor,
		"AerosolIndirectFactor": c.AerosolIndirectFactor,
		"ClimateSensitivity":    c.ClimateSensitivity,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("scm: %s is not finite (%g)", name, v)
		}
	}
	return nil
}

// numYears returns the number of simulated years.
func (c *Config) numYears() int { return c.EndYear - c.StartYear + 1 }
