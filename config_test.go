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

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Check(); err != nil {
		t.Fatal(err)
	}
	if n := cfg.numYears(); n != 351 {
		t.Errorf("default configuration simulates %d years, want 351", n)
	}
}

func TestConfigCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"reversed years", func(c *Config) { c.StartYear, c.EndYear = 2100, 1750 }},
		{"equal years", func(c *Config) { c.EndYear = c.StartYear }},
		{"zero mixed layer depth", func(c *Config) { c.OceanMixedLayerDepth = 0 }},
		{"negative mixed layer depth", func(c *Config) { c.OceanMixedLayerDepth = -75 }},
		{"zero response horizon", func(c *Config) { c.NumYearsResponse = 0 }},
		{"zero baseline CO2", func(c *Config) { c.BaselineCO2 = 0 }},
		{"negative baseline CH4", func(c *Config) { c.BaselineCH4 = -700 }},
		{"zero CH4 lifetime", func(c *Config) { c.LifetimeCH4 = 0 }},
		{"zero N2O scale", func(c *Config) { c.ScaleN2O = 0 }},
		{"NaN PgCPerPPM", func(c *Config) { c.PgCPerPPM = math.NaN() }},
		{"NaN climate sensitivity", func(c *Config) { c.ClimateSensitivity = math.NaN() }},
		{"infinite aerosol factor", func(c *Config) { c.AerosolDirectFactor = math.Inf(-1) }},
	}
	for _, test := range tests {
		cfg := DefaultConfig()
		test.mutate(cfg)
		if err := cfg.Check(); err == nil {
			t.Errorf("%s: the configuration should have been rejected", test.name)
		}
	}
}

func TestInitNilConfig(t *testing.T) {
	m := &SCM{Emissions: NewEmissions(1750)}
	if err := m.Init(); err == nil {
		t.Error("initializing without a configuration should have failed")
	}
}

func TestInitNilEmissions(t *testing.T) {
	m := &SCM{Config: DefaultConfig()}
	if err := m.Init(); err == nil {
		t.Error("initializing without emissions should have failed")
	}
}
