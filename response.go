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

// Constants used for scaling the ocean mixed-layer response
// (Joos et al. 1996, pg. 400).
const (
	oceanArea       = 3.62e14  // ocean area [m²]
	gCPerMole       = 12.0113  // molar mass of carbon [g/mol]
	seaWaterDensity = 1.0265e3 // sea water density [kg/m³]
)

// ResponseFunctions returns a function that generates the four
// response-function kernels from the model configuration. Each kernel is a
// pure function of the year offset and fixed fit coefficients; they are
// computed once at initialization and shared read-only by every year's
// convolution.
func ResponseFunctions() ModelManipulator {
	return func(m *SCM) error {
		n := m.Config.NumYearsResponse
		if n < 1 {
			return fmt.Errorf("scm: cannot generate response functions for a %d-year horizon", n)
		}
		m.oceanResponse = OceanResponse(n, m.Config.OceanMixedLayerDepth, m.Config.PgCPerPPM)
		m.biosphereResponse = BiosphereResponse(n)
		m.temperatureResponse = TemperatureResponse(n)
		m.seaLevelResponse = SeaLevelResponse(n)
		return nil
	}
}

// OceanResponse evaluates the ocean mixed-layer pulse response function of
// the HILDA model (Joos et al. 1996, Appendix A.2.2): the amount of carbon
// remaining in the surface ocean layer τ years after a unit pulse input from
// the atmosphere, scaled to µmol/kg of dissolved inorganic carbon per ppm.
func OceanResponse(numYears int, mixedLayerDepth, pgCPerPPM float64) []float64 {
	scale := (1e21 * pgCPerPPM / gCPerMole) /
		(seaWaterDensity * mixedLayerDepth * oceanArea)
	r := make([]float64, numYears)
	for yr := range r {
		τ := float64(yr)
		var v float64
		if τ < 2 {
			v = 0.12935 +
				0.21898*math.Exp(-τ/0.034569) +
				0.17003*math.Exp(-τ/0.26936) +
				0.24071*math.Exp(-τ/0.96083) +
				0.24093*math.Exp(-τ/4.9792)
		} else {
			v = 0.022936 +
				0.24278*math.Exp(-τ/1.2679) +
				0.13963*math.Exp(-τ/5.2528) +
				0.089318*math.Exp(-τ/18.601) +
				0.037820*math.Exp(-τ/68.736) +
				0.035549*math.Exp(-τ/232.30)
		}
		r[yr] = v * scale
	}
	return r
}

// BiosphereResponse evaluates the biosphere decay response function
// (Joos et al. 1996, pg. 416): the rate at which carbon taken up by enhanced
// plant growth is returned to the atmosphere τ years after the uptake. Its
// integral over all τ is 1, so an NPP pulse is eventually returned in full.
func BiosphereResponse(numYears int) []float64 {
	r := make([]float64, numYears)
	for yr := range r {
		τ := float64(yr)
		r[yr] = 0.7021*math.Exp(-0.35*τ) +
			0.01341*math.Exp(-τ/20) -
			0.7185*math.Exp(-0.4583*τ) +
			0.002932*math.Exp(-0.01*τ)
	}
	return r
}

// TemperatureResponse evaluates the surface temperature impulse response
// function: a double exponential, l₁/τ₁·e^(-τ/τ₁) + l₂/τ₂·e^(-τ/τ₂), with
// coefficients fit to a HadCM3 4×CO2 simulation.
func TemperatureResponse(numYears int) []float64 {
	return doubleExponential(numYears, 0.59557, 8.4007, 0.40443, 409.54)
}

// SeaLevelResponse evaluates the sea level impulse response function, fit to
// the same HadCM3 4×CO2 simulation as TemperatureResponse. It accounts only
// for thermal expansion of the ocean, not for melting glaciers or grounded
// ice sheets.
func SeaLevelResponse(numYears int) []float64 {
	return doubleExponential(numYears, 0.03323, 33.788, 0.96677, 1700.2)
}

func doubleExponential(numYears int, l1, τ1, l2, τ2 float64) []float64 {
	r := make([]float64, numYears)
	for yr := range r {
		τ := float64(yr)
		r[yr] = l1/τ1*math.Exp(-τ/τ1) + l2/τ2*math.Exp(-τ/τ2)
	}
	return r
}
