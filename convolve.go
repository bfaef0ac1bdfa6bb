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

import "fmt"

// Convolve computes scale · Σ_{t'=0}^{t} driving[t']·kernel[t-t'] with
// t = len(driving)-1: the response at the latest year to the whole driving
// history. The kernel is treated as zero beyond its length. The summation
// runs left to right over increasing t', matching the reference trajectories
// bit for bit; do not reorder it.
//
// The result depends only on driving values at or before t, so extending the
// driving series later reproduces all earlier values unchanged.
func Convolve(driving, kernel []float64, scale float64) (float64, error) {
	if len(kernel) == 0 {
		return 0, fmt.Errorf("scm: cannot convolve against an empty kernel")
	}
	t := len(driving) - 1
	var sum float64
	for tp := 0; tp <= t; tp++ {
		if lag := t - tp; lag < len(kernel) {
			sum += driving[tp] * kernel[lag]
		}
	}
	return scale * sum, nil
}

// Temperature returns a function that computes the surface temperature
// change for the year currently being simulated by convolving the
// temperature response kernel against the forcing history, scaled by the
// climate sensitivity.
func Temperature() ModelManipulator {
	return func(m *SCM) error {
		v, err := Convolve(m.forcing[:m.yearIndex+1], m.temperatureResponse,
			m.Config.ClimateSensitivity)
		if err != nil {
			return err
		}
		m.deltaT = append(m.deltaT, v)
		return nil
	}
}

// SeaLevel returns a function that computes the sea level change for the
// year currently being simulated by convolving the sea level response kernel
// against the temperature history. Only thermal expansion is represented.
func SeaLevel() ModelManipulator {
	return func(m *SCM) error {
		v, err := Convolve(m.deltaT[:m.yearIndex+1], m.seaLevelResponse, 1)
		if err != nil {
			return err
		}
		m.seaLevel = append(m.seaLevel, v)
		return nil
	}
}
