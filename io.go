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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// ReadEmissions reads an emissions table covering at least the years
// startYear through endYear. Each data line holds a year followed by CO2
// [PgC/yr], CH4 [Tg/yr], N2O [Tg/yr], and SOx [TgS/yr] emissions; lines that
// do not begin with a year (headers, comments) are skipped. Years may be
// given sparsely: missing years within the table are filled by linear
// interpolation, years before the first entry are interpolated from zero
// emissions at startYear, and years after the last entry hold its value.
func ReadEmissions(r io.Reader, startYear, endYear int) (*Emissions, error) {
	if endYear <= startYear {
		return nil, fmt.Errorf("scm: end year %d is not after start year %d", endYear, startYear)
	}
	n := endYear - startYear + 1
	known := make(map[int][4]float64)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		year, err := strconv.Atoi(fields[0])
		if err != nil {
			continue // header or comment line
		}
		if len(fields) != 5 {
			return nil, fmt.Errorf("scm: emissions line %d: expected year and 4 values but got %d fields",
				line, len(fields)-1)
		}
		var vals [4]float64
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("scm: emissions line %d: %v", line, err)
			}
			vals[i] = v
		}
		if year < startYear || year > endYear {
			continue
		}
		known[year-startYear] = vals
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scm: reading emissions: %v", err)
	}
	if len(known) == 0 {
		return nil, fmt.Errorf("scm: no emissions data within years %d–%d", startYear, endYear)
	}

	e := NewEmissions(startYear)
	for i := 0; i < n; i++ {
		e.Add(&EmisRecord{
			CO2: interpolateYear(known, i, 0),
			CH4: interpolateYear(known, i, 1),
			N2O: interpolateYear(known, i, 2),
			SOx: interpolateYear(known, i, 3),
		})
	}
	return e, nil
}

// interpolateYear fills a missing year by linear interpolation between the
// surrounding given years. An implicit zero at index 0 anchors the left
// edge, and values beyond the last given year hold flat, matching the
// behavior of the reference implementation.
func interpolateYear(known map[int][4]float64, i, col int) float64 {
	if v, ok := known[i]; ok && i != 0 {
		return v[col]
	}
	indices := make([]int, 0, len(known)+1)
	indices = append(indices, 0)
	for k := range known {
		if k != 0 {
			indices = append(indices, k)
		}
	}
	sort.Ints(indices)

	valueAt := func(k int) float64 {
		if v, ok := known[k]; ok {
			return v[col]
		}
		return 0 // implicit left anchor
	}

	if i <= indices[0] {
		return valueAt(indices[0])
	}
	last := indices[len(indices)-1]
	if i >= last {
		return valueAt(last)
	}
	hi := sort.SearchInts(indices, i)
	if indices[hi] == i {
		return valueAt(i)
	}
	lo := hi - 1
	x0, x1 := indices[lo], indices[hi]
	y0, y1 := valueAt(x0), valueAt(x1)
	return y0 + (y1-y0)*float64(i-x0)/float64(x1-x0)
}

// ReadEmissionsFile reads an emissions table from the named file.
func ReadEmissionsFile(filename string, startYear, endYear int) (*Emissions, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("scm: problem loading emissions data: %v", err)
	}
	defer f.Close()
	return ReadEmissions(f, startYear, endYear)
}

// An Outputter writes simulation results to a tab-delimited text file, one
// row per simulated year.
//
// outputVariables maps the names of the columns to be written to expressions
// defining how they are calculated. Expressions can use the model variables
// listed by OutputOptions and the functions defined in outputFunctions.
type Outputter struct {
	fileName        string
	outputVariables map[string]string
	outputFunctions map[string]govaluate.ExpressionFunction
	expressions     map[string]*govaluate.EvaluableExpression
	names           []string
}

// NewOutputter initializes a new Outputter and adds a set of default
// expression functions: 'exp(x)', 'log(x)', and 'sqrt(x)'.
func NewOutputter(fileName string, outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	if fileName == "" {
		return nil, fmt.Errorf("scm: output file name is not specified")
	}
	if len(outputVariables) == 0 {
		return nil, fmt.Errorf("scm: no output variables specified")
	}
	defaultOutputFuncs := map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("scm: got %d arguments for function 'exp', but need 1", len(arg))
			}
			return math.Exp(arg[0].(float64)), nil
		},
		"log": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("scm: got %d arguments for function 'log', but need 1", len(arg))
			}
			return math.Log(arg[0].(float64)), nil
		},
		"sqrt": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("scm: got %d arguments for function 'sqrt', but need 1", len(arg))
			}
			return math.Sqrt(arg[0].(float64)), nil
		},
	}
	for key, val := range outputFunctions {
		defaultOutputFuncs[key] = val
	}

	vars := make(map[string]string, len(outputVariables))
	names := make([]string, 0, len(outputVariables))
	for k, v := range outputVariables {
		vars[k] = v
		names = append(names, k)
	}
	sort.Strings(names)

	return &Outputter{
		fileName:        fileName,
		outputVariables: vars,
		outputFunctions: defaultOutputFuncs,
		names:           names,
	}, nil
}

// CheckOutputVars returns a function that compiles the output expressions
// and verifies that every variable they reference is a model variable, so
// that misspelled names are rejected before the simulation starts.
func (o *Outputter) CheckOutputVars() ModelManipulator {
	return func(m *SCM) error {
		available := make(map[string]struct{})
		for _, v := range m.OutputOptions() {
			available[v] = struct{}{}
		}
		o.expressions = make(map[string]*govaluate.EvaluableExpression, len(o.outputVariables))
		for name, exprStr := range o.outputVariables {
			expr, err := govaluate.NewEvaluableExpressionWithFunctions(exprStr, o.outputFunctions)
			if err != nil {
				return fmt.Errorf("scm: output variable %s: %v", name, err)
			}
			for _, v := range expr.Vars() {
				if _, ok := available[v]; !ok {
					return fmt.Errorf("scm: undefined variable name '%s' in output variable %s", v, name)
				}
			}
			o.expressions[name] = expr
		}
		return nil
	}
}

// Output returns a function that evaluates the output expressions for every
// simulated year and writes the results as tab-delimited text. It is
// normally used as a cleanup function, after the simulation has finished.
func (o *Outputter) Output() ModelManipulator {
	return func(m *SCM) error {
		if o.expressions == nil {
			if err := o.CheckOutputVars()(m); err != nil {
				return err
			}
		}

		// Gather the model series the expressions need.
		series := make(map[string][]float64)
		for name, expr := range o.expressions {
			for _, v := range expr.Vars() {
				if _, ok := series[v]; ok {
					continue
				}
				d, err := m.outputData(v)
				if err != nil {
					return fmt.Errorf("scm: output variable %s: %v", name, err)
				}
				series[v] = d
			}
		}

		f, err := os.Create(o.fileName)
		if err != nil {
			return fmt.Errorf("scm: problem creating output file: %v", err)
		}
		defer f.Close()
		w := bufio.NewWriter(f)

		fmt.Fprintf(w, "Year")
		for _, name := range o.names {
			fmt.Fprintf(w, "\t%s", name)
		}
		fmt.Fprintln(w)

		n := m.Config.numYears()
		params := make(map[string]interface{}, len(series))
		for i := 0; i < n; i++ {
			for v, d := range series {
				if i >= len(d) {
					return fmt.Errorf("scm: model variable %s has no value for year %d",
						v, m.Config.StartYear+i)
				}
				params[v] = d[i]
			}
			fmt.Fprintf(w, "%d", m.Config.StartYear+i)
			for _, name := range o.names {
				result, err := o.expressions[name].Evaluate(params)
				if err != nil {
					return fmt.Errorf("scm: output variable %s: %v", name, err)
				}
				v, ok := result.(float64)
				if !ok {
					return fmt.Errorf("scm: output variable %s is not numeric", name)
				}
				fmt.Fprintf(w, "\t%g", v)
			}
			fmt.Fprintln(w)
		}
		return w.Flush()
	}
}
