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

	"github.com/ctessum/unit"
)

var yearDim unit.Dimension

func init() {
	yearDim = unit.NewDimension("yr")
}

// massPerYear is the dimension set of an emission rate.
var massPerYear = unit.Dimensions{
	unit.MassDim: 1,
	yearDim:      -1,
}

// Mass-unit magnitudes [kg].
const (
	kgPerPg = 1e12
	kgPerTg = 1e9
)

// PgCPerYear returns an emission rate of v petagrams of carbon per year as a
// dimensioned quantity [kg/yr].
func PgCPerYear(v float64) *unit.Unit { return unit.New(v*kgPerPg, massPerYear) }

// TgPerYear returns an emission rate of v teragrams per year as a
// dimensioned quantity [kg/yr].
func TgPerYear(v float64) *unit.Unit { return unit.New(v*kgPerTg, massPerYear) }

// TgSPerYear returns an emission rate of v teragrams of sulfur per year as a
// dimensioned quantity [kg/yr].
func TgSPerYear(v float64) *unit.Unit { return unit.New(v*kgPerTg, massPerYear) }

// EmisRecord holds the emissions for one year in the model's working units:
// CO2 [PgC/yr], CH4 [Tg/yr], N2O [Tg/yr], and SOx [TgS/yr]. Records are
// immutable once added to an Emissions holder.
type EmisRecord struct {
	CO2 float64 // [PgC/yr]
	CH4 float64 // [Tg/yr]
	N2O float64 // [Tg/yr]
	SOx float64 // [TgS/yr]
}

// NewEmisRecord creates an emissions record from dimensioned quantities,
// checking that each is a mass rate before converting it to the model's
// working units.
func NewEmisRecord(co2, ch4, n2o, sox *unit.Unit) (*EmisRecord, error) {
	for name, u := range map[string]*unit.Unit{
		"CO2": co2, "CH4": ch4, "N2O": n2o, "SOx": sox,
	} {
		if err := u.Check(massPerYear); err != nil {
			return nil, fmt.Errorf("scm: %s emission: %v", name, err)
		}
	}
	return &EmisRecord{
		CO2: co2.Value() / kgPerPg,
		CH4: ch4.Value() / kgPerTg,
		N2O: n2o.Value() / kgPerTg,
		SOx: sox.Value() / kgPerTg,
	}, nil
}

// Emissions is a holder for input emissions data: one record per year
// starting at StartYear, with no gaps.
type Emissions struct {
	StartYear int
	records   []*EmisRecord
}

// NewEmissions initializes an emissions holder beginning at the given year.
func NewEmissions(startYear int) *Emissions {
	return &Emissions{StartYear: startYear}
}

// Add appends an emissions record for the year following the last one added.
func (e *Emissions) Add(r *EmisRecord) {
	e.records = append(e.records, r)
}

// EndYear returns the last year for which a record is present.
func (e *Emissions) EndYear() int { return e.StartYear + len(e.records) - 1 }

// Record returns the emissions record for the given year. Requesting a year
// outside the covered range is a fatal data error.
func (e *Emissions) Record(year int) (*EmisRecord, error) {
	i := year - e.StartYear
	if i < 0 || i >= len(e.records) {
		return nil, fmt.Errorf("scm: no emissions data for year %d (have %d–%d)",
			year, e.StartYear, e.EndYear())
	}
	return e.records[i], nil
}

// CheckEmissions returns a function that verifies, before any computation
// begins, that the emissions cover the simulated year range and contain only
// finite values. The run never substitutes defaults for missing data.
func CheckEmissions() ModelManipulator {
	return func(m *SCM) error {
		for year := m.Config.StartYear; year <= m.Config.EndYear; year++ {
			r, err := m.Emissions.Record(year)
			if err != nil {
				return err
			}
			for name, v := range map[string]float64{
				"CO2": r.CO2, "CH4": r.CH4, "N2O": r.N2O, "SOx": r.SOx,
			} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("scm: %s emission for year %d is not finite (%g)",
						name, year, v)
				}
			}
		}
		return nil
	}
}
