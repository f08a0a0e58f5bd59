package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

type KNNOptions struct {
	Neighbors int
}

func NewDefaultKNNOptions() *KNNOptions {
	return &KNNOptions{
		Neighbors: 5,
	}
}

func (opt *KNNOptions) Validate() (*KNNOptions, error) {
	if opt == nil {
		return NewDefaultKNNOptions(), nil
	}
	if opt.Neighbors < 1 {
		return nil, fmt.Errorf("got neighbor count of %d, %w", opt.Neighbors, ErrInvalidNeighborCount)
	}
	return opt, nil
}

// KNNRegression estimates a target value as the mean of the targets of the k
// nearest training observations under Euclidean distance. Fitting only stores
// the training data. Distance ties are broken by training row order where a
// later row displaces a buffered neighbor only on a strictly smaller
// distance, keeping predictions deterministic across runs.
type KNNRegression struct {
	opt *KNNOptions

	x [][]float64
	y []float64
}

func NewKNNRegression(opt *KNNOptions) (*KNNRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &KNNRegression{
		opt: opt,
	}, nil
}

// Fit validates and stores the training matrix along with the single column
// target matrix.
func (k *KNNRegression) Fit(x, y mat.Matrix) error {
	if k.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	m, n := x.Dims()

	ym, _ := y.Dims()
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}
	if m < k.opt.Neighbors {
		return fmt.Errorf("got %d observations with neighbor count of %d, %w", m, k.opt.Neighbors, ErrInsufficientData)
	}

	rows := make([][]float64, m)
	targets := make([]float64, m)
	for i := 0; i < m; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			val := x.At(i, j)
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return fmt.Errorf("training row %d column %d, %w", i, j, ErrNonNumericValue)
			}
			row[j] = val
		}
		rows[i] = row

		target := y.At(i, 0)
		if math.IsNaN(target) || math.IsInf(target, 0) {
			return fmt.Errorf("target row %d, %w", i, ErrNonNumericValue)
		}
		targets[i] = target
	}

	k.x = rows
	k.y = targets
	return nil
}

// Predict computes one estimate per design matrix row from the mean target of
// the row's k nearest training observations.
func (k *KNNRegression) Predict(x mat.Matrix) ([]float64, error) {
	if k.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	if len(k.x) == 0 {
		return nil, ErrNotFitted
	}

	m, n := x.Dims()
	if n != len(k.x[0]) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(k.x[0]), ErrFeatureLenMismatch)
	}

	res := make([]float64, m)
	query := make([]float64, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			val := x.At(i, j)
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, fmt.Errorf("design row %d column %d, %w", i, j, ErrNonNumericValue)
			}
			query[j] = val
		}
		res[i] = k.predict(query)
	}
	return res, nil
}

type neighbor struct {
	dist   float64
	target float64
}

func (k *KNNRegression) predict(query []float64) float64 {
	nbrs := make([]neighbor, 0, k.opt.Neighbors)
	for i, row := range k.x {
		dist := floats.Distance(query, row, 2)
		if len(nbrs) < k.opt.Neighbors {
			nbrs = append(nbrs, neighbor{dist: dist, target: k.y[i]})
			siftUp(nbrs)
			continue
		}
		if dist < nbrs[len(nbrs)-1].dist {
			nbrs[len(nbrs)-1] = neighbor{dist: dist, target: k.y[i]}
			siftUp(nbrs)
		}
	}

	var sum float64
	for _, nbr := range nbrs {
		sum += nbr.target
	}
	return sum / float64(len(nbrs))
}

// siftUp restores ascending distance order after the last element changed.
// Swapping only on a strictly greater predecessor keeps equidistant neighbors
// in insertion order.
func siftUp(nbrs []neighbor) {
	for i := len(nbrs) - 1; i > 0; i-- {
		if nbrs[i-1].dist <= nbrs[i].dist {
			return
		}
		nbrs[i-1], nbrs[i] = nbrs[i], nbrs[i-1]
	}
}

// Score computes the coefficient of determination of the predictions on the
// design matrix against the provided target.
func (k *KNNRegression) Score(x, y mat.Matrix) (float64, error) {
	if k.opt == nil {
		return 0.0, ErrNoOptions
	}
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}

	m, _ := x.Dims()
	ym, _ := y.Dims()
	if m != ym {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	res, err := k.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ySlice := mat.Col(nil, 0, y)
	return stat.RSquaredFrom(res, ySlice, nil), nil
}
