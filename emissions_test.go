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

	"github.com/ctessum/unit"
)

func TestNewEmisRecord(t *testing.T) {
	r, err := NewEmisRecord(
		PgCPerYear(8.5),
		TgPerYear(300),
		TgPerYear(10),
		TgSPerYear(65),
	)
	if err != nil {
		t.Fatal(err)
	}
	if absDifferent(r.CO2, 8.5) || absDifferent(r.CH4, 300) ||
		absDifferent(r.N2O, 10) || absDifferent(r.SOx, 65) {
		t.Errorf("record %+v does not round-trip the working units", r)
	}
}

// Quantities with the wrong dimensions must be rejected rather than
// silently converted.
func TestNewEmisRecordDimensions(t *testing.T) {
	mass := unit.New(1, unit.Dimensions{unit.MassDim: 1})
	rate := PgCPerYear(1)
	if _, err := NewEmisRecord(mass, rate, rate, rate); err == nil {
		t.Error("a bare mass should have been rejected as a CO2 emission rate")
	}
	length := unit.New(1, unit.Dimensions{unit.LengthDim: 1})
	if _, err := NewEmisRecord(rate, rate, length, rate); err == nil {
		t.Error("a length should have been rejected as an N2O emission rate")
	}
}

func TestEmissionsRecord(t *testing.T) {
	e := NewEmissions(2000)
	e.Add(&EmisRecord{CO2: 1})
	e.Add(&EmisRecord{CO2: 2})
	if e.EndYear() != 2001 {
		t.Errorf("end year is %d, want 2001", e.EndYear())
	}
	r, err := e.Record(2001)
	if err != nil {
		t.Fatal(err)
	}
	if r.CO2 != 2 {
		t.Errorf("year 2001: CO2 emission %g, want 2", r.CO2)
	}
	for _, year := range []int{1999, 2002} {
		if _, err := e.Record(year); err == nil {
			t.Errorf("year %d: requesting an uncovered year should have failed", year)
		}
	}
}

func TestCheckEmissionsNonFinite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartYear, cfg.EndYear = 1750, 1760
	cfg.NumYearsResponse = 20
	emis := constantEmissions(1750, 1760, EmisRecord{CO2: 1})
	emis.records[5].CH4 = math.NaN()
	m := testModel(cfg, emis)
	if err := m.Init(); err == nil {
		t.Error("a NaN emission should have aborted initialization")
	}
}
