// Package dataset holds the cross-sectional observation table consumed by the
// salary estimator. A table pairs one labeled row per player with a numeric
// feature matrix and a salary target. Row identity is the positional index
// within the table.
package dataset

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoObservations    = errors.New("no observations")
	ErrNoColumns         = errors.New("no feature columns")
	ErrRowLenMismatch    = errors.New("row has a different length than the column labels")
	ErrTargetLenMismatch = errors.New("target has a different length than the observations")
	ErrNameLenMismatch   = errors.New("names has a different length than the observations")
	ErrNonNumericValue   = errors.New("non-numeric value in observation table")
)

// Table represents an observation table storing one row per player along with
// the salary target being estimated. All slices share the same row order.
type Table struct {
	Names   []string
	Columns []string
	X       [][]float64
	Y       []float64
}

// New returns an instance of a Table after validating that names, features,
// and target line up row for row and that every value is finite. The inputs
// are deep copied so the caller cannot mutate the table afterwards.
func New(names, columns []string, x [][]float64, y []float64) (*Table, error) {
	if len(x) == 0 {
		return nil, ErrNoObservations
	}
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	if len(y) != len(x) {
		return nil, fmt.Errorf(
			"target has length of %d, but observations has a length of %d, %w",
			len(y), len(x), ErrTargetLenMismatch,
		)
	}
	if len(names) != len(x) {
		return nil, fmt.Errorf(
			"names has length of %d, but observations has a length of %d, %w",
			len(names), len(x), ErrNameLenMismatch,
		)
	}

	rows := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(columns) {
			return nil, fmt.Errorf(
				"row %d has %d values for %d columns, %w",
				i, len(row), len(columns), ErrRowLenMismatch,
			)
		}
		for j, val := range row {
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, fmt.Errorf("row %d column %q, %w", i, columns[j], ErrNonNumericValue)
			}
		}
		rows[i] = make([]float64, len(row))
		copy(rows[i], row)
	}
	for i, val := range y {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("row %d target, %w", i, ErrNonNumericValue)
		}
	}

	td := &Table{
		Names:   make([]string, len(names)),
		Columns: make([]string, len(columns)),
		X:       rows,
		Y:       make([]float64, len(y)),
	}
	copy(td.Names, names)
	copy(td.Columns, columns)
	copy(td.Y, y)
	return td, nil
}

// NumRows returns the number of observations in the table.
func (td *Table) NumRows() int {
	return len(td.X)
}

// NumFeatures returns the number of feature columns in the table.
func (td *Table) NumFeatures() int {
	return len(td.Columns)
}

// Row returns the feature values of row i.
func (td *Table) Row(i int) []float64 {
	return td.X[i]
}

func (td *Table) Copy() *Table {
	rows := make([][]float64, len(td.X))
	for i, row := range td.X {
		rows[i] = make([]float64, len(row))
		copy(rows[i], row)
	}
	names := make([]string, len(td.Names))
	columns := make([]string, len(td.Columns))
	y := make([]float64, len(td.Y))
	copy(names, td.Names)
	copy(columns, td.Columns)
	copy(y, td.Y)
	return &Table{
		Names:   names,
		Columns: columns,
		X:       rows,
		Y:       y,
	}
}

// Standardize returns a new table with every feature column scaled to zero
// mean and unit variance. The target is left in its original units. A
// constant column scales to all zeros instead of dividing by a zero standard
// deviation.
func (td *Table) Standardize() *Table {
	out := td.Copy()
	col := make([]float64, td.NumRows())
	for j := 0; j < td.NumFeatures(); j++ {
		for i := 0; i < td.NumRows(); i++ {
			col[i] = td.X[i][j]
		}
		mean, stddev := stat.MeanStdDev(col, nil)
		for i := 0; i < td.NumRows(); i++ {
			if stddev == 0 || math.IsNaN(stddev) {
				out.X[i][j] = 0.0
				continue
			}
			out.X[i][j] = (td.X[i][j] - mean) / stddev
		}
	}
	return out
}

// FeatureMatrix returns the feature values as a dense row-major matrix for
// model consumption.
func (td *Table) FeatureMatrix() mat.Matrix {
	m := td.NumRows()
	n := td.NumFeatures()
	obs := make([]float64, m*n)
	for i, row := range td.X {
		copy(obs[n*i:n*i+n], row)
	}
	return mat.NewDense(m, n, obs)
}

// TargetMatrix returns the salary target as a single column matrix.
func (td *Table) TargetMatrix() mat.Matrix {
	y := make([]float64, len(td.Y))
	copy(y, td.Y)
	return mat.NewDense(len(y), 1, y)
}
