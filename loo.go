package fairpay

import (
	"fmt"
	"runtime"

	"github.com/hoopstats/go-fairpay/dataset"
	"github.com/hoopstats/go-fairpay/models"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// LeaveOneOut produces one target estimate per table row where row i's
// estimate comes from a k-nearest-neighbors regression fitted on every row
// except i. Refitting the model per row removes the degenerate zero-distance
// self match that a single fit over the full table would produce.
//
// The output has exactly one entry per input row in input row order. Row
// evaluations are independent so they run across a bounded worker group; the
// first failing row aborts the batch since a partial estimate vector cannot
// back a ranking report. The input table is never modified.
func LeaveOneOut(table *dataset.Table, neighbors int) ([]float64, error) {
	if table == nil || table.NumRows() == 0 {
		return nil, dataset.ErrNoObservations
	}
	n := table.NumRows()
	if n <= neighbors {
		return nil, fmt.Errorf("got %d observations with neighbor count of %d, %w", n, neighbors, models.ErrInsufficientData)
	}

	estimates := make([]float64, n)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			est, err := estimateRow(table, i, neighbors)
			if err != nil {
				return fmt.Errorf("unable to estimate row %d (%s), %w", i, table.Names[i], err)
			}
			estimates[i] = est
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return estimates, nil
}

// estimateRow fits a fresh model on all rows except i and queries it with row
// i's features. The training subset keeps the table's row order so neighbor
// tie-breaks stay deterministic.
func estimateRow(table *dataset.Table, i, neighbors int) (float64, error) {
	m := table.NumRows() - 1
	n := table.NumFeatures()

	xTrain := mat.NewDense(m, n, nil)
	yTrain := mat.NewDense(m, 1, nil)
	var r int
	for j := 0; j < table.NumRows(); j++ {
		if j == i {
			continue
		}
		xTrain.SetRow(r, table.Row(j))
		yTrain.Set(r, 0, table.Y[j])
		r++
	}

	model, err := models.NewKNNRegression(&models.KNNOptions{Neighbors: neighbors})
	if err != nil {
		return 0, err
	}
	if err := model.Fit(xTrain, yTrain); err != nil {
		return 0, err
	}

	query := make([]float64, n)
	copy(query, table.Row(i))
	res, err := model.Predict(mat.NewDense(1, n, query))
	if err != nil {
		return 0, err
	}
	return res[0], nil
}
