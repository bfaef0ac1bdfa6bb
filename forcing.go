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

// ForcingInputs are the per-year inputs to the radiative forcing
// calculation. Concentrations are perturbations from the pre-industrial
// baselines; the SOx emission is the instantaneous emission for the year.
type ForcingInputs struct {
	CO2 float64 // [ppm above baseline]
	CH4 float64 // [ppb above baseline]
	N2O float64 // [ppb above baseline]
	SOx float64 // [TgS/yr]
}

// TotalForcing calculates the change in radiative forcing [W/m²] relative to
// the pre-industrial state from the given concentration perturbations and
// aerosol emission, using the closed-form expressions of IPCC TAR chapter 6.
// It is a pure function: identical inputs always give identical output.
func TotalForcing(c *Config, in ForcingInputs) (float64, error) {
	for name, v := range map[string]float64{
		"CO2": in.CO2, "CH4": in.CH4, "N2O": in.N2O, "SOx": in.SOx,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("scm: %s forcing input is not finite (%g)", name, v)
		}
	}
	co2 := c.BaselineCO2 + in.CO2
	ch4 := c.BaselineCH4 + in.CH4
	n2o := c.BaselineN2O + in.N2O
	if !(co2 > 0) || !(ch4 > 0) || !(n2o > 0) {
		return 0, fmt.Errorf("scm: non-positive concentration in forcing calculation (CO2=%g ppm, CH4=%g ppb, N2O=%g ppb)",
			co2, ch4, n2o)
	}

	// CO2: logarithmic in the concentration ratio.
	fCO2 := 5.35 * math.Log(co2/c.BaselineCO2)

	// CH4 and N2O have overlapping absorption bands, so higher
	// concentrations of one gas reduce the effective absorption by the
	// other. The overlap term is evaluated at the current concentration
	// and at the baseline, and the difference subtracted.
	fCH4 := 0.036*(math.Sqrt(ch4)-math.Sqrt(c.BaselineCH4)) -
		(bandOverlap(ch4, c.BaselineN2O) - bandOverlap(c.BaselineCH4, c.BaselineN2O))
	fN2O := 0.12*(math.Sqrt(n2o)-math.Sqrt(c.BaselineN2O)) -
		(bandOverlap(c.BaselineCH4, n2o) - bandOverlap(c.BaselineCH4, c.BaselineN2O))

	// Direct and indirect aerosol forcing, both proportional to the
	// instantaneous sulfate emission.
	fAer := (c.AerosolDirectFactor + c.AerosolIndirectFactor) * in.SOx

	return fCO2 + fCH4 + fN2O + fAer, nil
}

// bandOverlap is the CH4/N2O absorption band overlap term f(M,N) from IPCC
// TAR table 6.2, with M the CH4 concentration [ppb] and N the N2O
// concentration [ppb].
func bandOverlap(m, n float64) float64 {
	return 0.47 * math.Log(1+2.01e-5*math.Pow(m*n, 0.75)+
		5.31e-15*m*math.Pow(m*n, 1.52))
}

// RadiativeForcing returns a function that computes the total radiative
// forcing for the year currently being simulated from that year's
// concentrations and SOx emission.
func RadiativeForcing() ModelManipulator {
	return func(m *SCM) error {
		emis, err := m.currentEmissions()
		if err != nil {
			return err
		}
		f, err := TotalForcing(m.Config, ForcingInputs{
			CO2: m.co2[m.yearIndex],
			CH4: m.ch4[m.yearIndex],
			N2O: m.n2o[m.yearIndex],
			SOx: emis.SOx,
		})
		if err != nil {
			return err
		}
		m.forcing = append(m.forcing, f)
		return nil
	}
}
