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

// carbonCycle converts CO2 emissions into atmospheric CO2 concentration
// perturbations using the pulse-response carbon cycle of Joos et al. (1996):
// an ocean mixed-layer pulse response for air-sea exchange and a decaying
// biospheric fertilization feedback. Flux pulses are appended to the history
// once per year and never changed afterwards; each year's state is a
// kernel-weighted sum over that history.
type carbonCycle struct {
	cfg *Config

	ocean     []float64 // ocean mixed-layer pulse response kernel
	biosphere []float64 // biosphere decay response kernel

	// Flux history. seaFlux[t] is the air-sea flux pulse emitted in year
	// t [ppm]; bioPulse[t] is the cumulative perturbation to biospheric
	// carbon stock after year t's uptake [ppm]. Both are append-only.
	seaFlux  []float64
	bioPulse []float64

	// xAtmosBio is the running perturbation to the biospheric carbon
	// stock: carbon removed from the atmosphere by CO2-stimulated plant
	// growth that has not yet decayed back [ppm].
	xAtmosBio float64
}

// step computes the CO2 concentration perturbation for year index t from the
// perturbation at t-1 and the emission during year t-1 [PgC/yr]. Fluxes for
// year t-1 are committed to the history as a side effect.
func (c *carbonCycle) step(t int, prev, emission float64) (float64, error) {
	if math.IsNaN(emission) || math.IsInf(emission, 0) {
		return 0, fmt.Errorf("scm: CO2 emission for year index %d is not finite (%g)", t-1, emission)
	}
	tm := t - 1 // the year whose fluxes are being committed

	// Surface-ocean dissolved inorganic carbon from committed past
	// air-sea flux pulses [µmol/kg], and the corresponding seawater pCO2
	// perturbation (Joos et al. 1996, eq. 6b).
	var dic float64
	for tp := 0; tp < tm; tp++ {
		if lag := tm - tp; lag < len(c.ocean) {
			dic += c.seaFlux[tp] * c.ocean[lag]
		}
	}
	seaWaterPCO2 := deltaPCO2FromOcean(dic)

	airSeaFlux := c.cfg.GasExchangeCoeff * (prev - seaWaterPCO2)

	// NPP perturbation from logarithmic CO2 fertilization, minus what has
	// already been taken up [ppm/yr].
	arg := 1 + prev/c.cfg.BaselineCO2
	if !(arg > 0) {
		return 0, fmt.Errorf("scm: CO2 concentration %g ppm at year index %d is outside the physical domain",
			c.cfg.BaselineCO2+prev, tm)
	}
	delta := c.cfg.BiosphereNPP*c.cfg.FertilizationFactor*math.Log(arg)/c.cfg.PgCPerPPM - c.xAtmosBio
	c.xAtmosBio += delta

	// Carbon returned to the atmosphere by decay of earlier uptake.
	var decayReturn float64
	for tp := 0; tp < tm; tp++ {
		if lag := tm - tp; lag < len(c.biosphere) {
			decayReturn += c.bioPulse[tp] * c.biosphere[lag]
		}
	}
	bioFlux := c.xAtmosBio - decayReturn

	c.seaFlux = append(c.seaFlux, airSeaFlux)
	c.bioPulse = append(c.bioPulse, c.xAtmosBio)

	return prev + emission/c.cfg.PgCPerPPM - airSeaFlux - bioFlux, nil
}

// deltaPCO2FromOcean computes the change in seawater pCO2 from equilibrium
// [ppm] corresponding to a change in mixed-layer dissolved inorganic carbon
// [µmol/kg], using the carbonate chemistry polynomial of Joos et al. (1996,
// pg. 402) at an effective ocean temperature of 18.1716 °C.
func deltaPCO2FromOcean(dic float64) float64 {
	const tc = 18.1716 // effective ocean temperature [°C]
	a1 := 1.5568 - 1.3993e-2*tc
	a2 := (7.4706 - 0.20207*tc) * 1e-3
	a3 := -(1.2748 - 0.12015*tc) * 1e-5
	a4 := (2.4491 - 0.12639*tc) * 1e-7
	a5 := -(1.5468 - 0.15326*tc) * 1e-10
	return dic * (a1 + dic*(a2+dic*(a3+dic*(a4+dic*a5))))
}

// CarbonCycle returns a function that advances the CO2 concentration by one
// year. The first simulated year is fixed at the pre-industrial baseline
// with no flux history.
func CarbonCycle() ModelManipulator {
	var c *carbonCycle
	return func(m *SCM) error {
		if m.yearIndex == 0 {
			c = &carbonCycle{
				cfg:       m.Config,
				ocean:     m.oceanResponse,
				biosphere: m.biosphereResponse,
			}
			m.co2 = append(m.co2, 0)
			return nil
		}
		prevEmis, err := m.Emissions.Record(m.Year() - 1)
		if err != nil {
			return err
		}
		conc, err := c.step(m.yearIndex, m.co2[m.yearIndex-1], prevEmis.CO2)
		if err != nil {
			return err
		}
		m.co2 = append(m.co2, conc)
		return nil
	}
}
