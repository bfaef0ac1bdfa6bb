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
	"io"
	"time"
)

// SimulationStatus holds the model state for one simulated year, for
// logging.
type SimulationStatus struct {
	Year        int
	CO2         float64 // [ppm]
	CH4         float64 // [ppb]
	N2O         float64 // [ppb]
	Forcing     float64 // [W/m²]
	Temperature float64 // [°C]
	SeaLevel    float64 // [cm]
	Walltime    time.Duration
}

func (s *SimulationStatus) String() string {
	return fmt.Sprintf("year=%d  CO2=%7.2f ppm  CH4=%7.1f ppb  N2O=%6.1f ppb  "+
		"RF=%6.3f W/m²  ΔT=%6.3f °C  ΔSL=%6.2f cm  walltime=%v",
		s.Year, s.CO2, s.CH4, s.N2O, s.Forcing, s.Temperature, s.SeaLevel,
		s.Walltime.Round(time.Millisecond))
}

// Status returns the model state for the year most recently simulated.
func (m *SCM) Status() *SimulationStatus {
	i := m.yearIndex
	if i >= len(m.co2) {
		i = len(m.co2) - 1
	}
	if i < 0 {
		return &SimulationStatus{Year: m.Config.StartYear}
	}
	s := &SimulationStatus{Year: m.Config.StartYear + i}
	s.CO2 = m.Config.BaselineCO2 + m.co2[i]
	if i < len(m.ch4) {
		s.CH4 = m.Config.BaselineCH4 + m.ch4[i]
		s.N2O = m.Config.BaselineN2O + m.n2o[i]
	}
	if i < len(m.forcing) {
		s.Forcing = m.forcing[i]
	}
	if i < len(m.deltaT) {
		s.Temperature = m.deltaT[i]
	}
	if i < len(m.seaLevel) {
		s.SeaLevel = m.seaLevel[i]
	}
	return s
}

// Log returns a function that writes a simulation status line to w every
// interval simulated years, and for the final year. It should be placed
// after the science functions in RunFuncs.
func Log(w io.Writer, interval int) ModelManipulator {
	if interval < 1 {
		interval = 1
	}
	startTime := time.Now()
	return func(m *SCM) error {
		if m.yearIndex%interval != 0 && m.yearIndex != m.Config.numYears()-1 {
			return nil
		}
		s := m.Status()
		s.Walltime = time.Since(startTime)
		_, err := fmt.Fprintln(w, s.String())
		return err
	}
}
