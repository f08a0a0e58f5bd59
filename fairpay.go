// Package fairpay estimates fair salaries for professional basketball
// players. Each player's salary is re-estimated by a k-nearest-neighbors
// regression fitted on every other player, and the gap between the actual and
// estimated salary ranks the most overpaid and underpaid players.
package fairpay

import (
	"errors"
	"fmt"

	"github.com/hoopstats/go-fairpay/dataset"
)

var (
	ErrEmptyTable  = errors.New("no observation table or uninitialized")
	ErrNotFitted   = errors.New("estimator has not been fitted")
	ErrInvalidTopN = errors.New("ranking size must be a positive integer")
)

// Estimator produces leave-one-out salary estimates over an observation
// table and can be used to generate over/underpaid rankings
type Estimator struct {
	opt *Options

	table   *dataset.Table
	results *Results
}

// New creates a new instance of an Estimator using the provided options. If
// no options are provided a default is used.
func New(opt *Options) (*Estimator, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Estimator{
		opt: opt,
	}, nil
}

// Fit standardizes the table's feature columns and computes one leave-one-out
// estimate per player. Features are standardized once over the full table
// before evaluation; targets stay in their original units. The input table is
// copied and never modified.
func (e *Estimator) Fit(table *dataset.Table) error {
	if table == nil || table.NumRows() == 0 {
		return ErrEmptyTable
	}
	e.table = table.Copy()

	estimates, err := LeaveOneOut(e.table.Standardize(), e.opt.Neighbors)
	if err != nil {
		return fmt.Errorf("unable to compute leave-one-out estimates, %w", err)
	}

	residual := make([]float64, len(estimates))
	for i, est := range estimates {
		residual[i] = e.table.Y[i] - est
	}

	scores, err := NewScores(estimates, e.table.Y)
	if err != nil {
		return fmt.Errorf("unable to score estimates, %w", err)
	}

	names := make([]string, len(e.table.Names))
	actual := make([]float64, len(e.table.Y))
	copy(names, e.table.Names)
	copy(actual, e.table.Y)

	e.results = &Results{
		Names:    names,
		Actual:   actual,
		Estimate: estimates,
		Residual: residual,
		Scores:   scores,
	}
	return nil
}

// Results returns the estimates, residuals, and fit scores of the last Fit.
func (e *Estimator) Results() (*Results, error) {
	if e.results == nil {
		return nil, ErrNotFitted
	}
	return e.results, nil
}

// TrainingData returns the observation table used to fit the estimator.
func (e *Estimator) TrainingData() *dataset.Table {
	return e.table
}
