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

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePlot writes a line plot of the named model variable against the
// simulation years to the given file. The output format is determined by the
// file extension (e.g. .png, .pdf, .svg).
func (m *SCM) SavePlot(variable, filename string) error {
	d, err := m.outputData(variable)
	if err != nil {
		return err
	}
	if len(d) == 0 {
		return fmt.Errorf("scm: no data to plot for %s", variable)
	}

	pts := make(plotter.XYs, len(d))
	for i, v := range d {
		pts[i].X = float64(m.Config.StartYear + i)
		pts[i].Y = v
	}

	p := plot.New()
	p.Title.Text = variable
	p.X.Label.Text = "Year"
	p.Y.Label.Text = variable
	if u, ok := outputUnits[variable]; ok {
		p.Y.Label.Text = fmt.Sprintf("%s [%s]", variable, u)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("scm: plotting %s: %v", variable, err)
	}
	p.Add(line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("scm: saving plot for %s: %v", variable, err)
	}
	return nil
}

// SavePlots returns a function that writes a plot for each entry in files,
// which maps model variable names to output file names. It is normally used
// as a cleanup function.
func SavePlots(files map[string]string) ModelManipulator {
	return func(m *SCM) error {
		for variable, filename := range files {
			if err := m.SavePlot(variable, filename); err != nil {
				return err
			}
		}
		return nil
	}
}
