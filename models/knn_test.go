package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestKNNOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *KNNOptions
		err      error
		expected *KNNOptions
	}{
		"nil": {nil, nil, NewDefaultKNNOptions()},
		"valid": {
			&KNNOptions{Neighbors: 3}, nil,
			&KNNOptions{Neighbors: 3},
		},
		"zero neighbors": {
			&KNNOptions{}, ErrInvalidNeighborCount, nil,
		},
		"negative neighbors": {
			&KNNOptions{Neighbors: -2}, ErrInvalidNeighborCount, nil,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestKNNRegressionFit(t *testing.T) {
	testData := map[string]struct {
		x   mat.Matrix
		y   mat.Matrix
		opt *KNNOptions
		err error
	}{
		"no training matrix": {
			y:   mat.NewDense(2, 1, []float64{1, 2}),
			err: ErrNoTrainingMatrix,
		},
		"no target matrix": {
			x:   mat.NewDense(2, 1, []float64{1, 2}),
			err: ErrNoTargetMatrix,
		},
		"target length mismatch": {
			x:   mat.NewDense(2, 1, []float64{1, 2}),
			y:   mat.NewDense(3, 1, []float64{1, 2, 3}),
			err: ErrTargetLenMismatch,
		},
		"insufficient observations": {
			x:   mat.NewDense(2, 1, []float64{1, 2}),
			y:   mat.NewDense(2, 1, []float64{1, 2}),
			opt: &KNNOptions{Neighbors: 3},
			err: ErrInsufficientData,
		},
		"non-numeric feature": {
			x:   mat.NewDense(2, 1, []float64{1, math.NaN()}),
			y:   mat.NewDense(2, 1, []float64{1, 2}),
			opt: &KNNOptions{Neighbors: 1},
			err: ErrNonNumericValue,
		},
		"non-numeric target": {
			x:   mat.NewDense(2, 1, []float64{1, 2}),
			y:   mat.NewDense(2, 1, []float64{1, math.Inf(-1)}),
			opt: &KNNOptions{Neighbors: 1},
			err: ErrNonNumericValue,
		},
		"valid": {
			x:   mat.NewDense(3, 1, []float64{1, 2, 3}),
			y:   mat.NewDense(3, 1, []float64{10, 20, 30}),
			opt: &KNNOptions{Neighbors: 3},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			model, err := NewKNNRegression(td.opt)
			require.Nil(t, err)

			err = model.Fit(td.x, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
		})
	}
}

func TestKNNRegressionPredict(t *testing.T) {
	testData := map[string]struct {
		x        [][]float64
		y        []float64
		opt      *KNNOptions
		query    [][]float64
		expected []float64
	}{
		"single nearest neighbor": {
			x:        [][]float64{{1}, {2}, {10}},
			y:        []float64{10, 20, 100},
			opt:      &KNNOptions{Neighbors: 1},
			query:    [][]float64{{1.4}, {9}},
			expected: []float64{10, 100},
		},
		"mean of two neighbors": {
			x:        [][]float64{{1}, {2}, {10}},
			y:        []float64{10, 20, 100},
			opt:      &KNNOptions{Neighbors: 2},
			query:    [][]float64{{0}},
			expected: []float64{15},
		},
		"tie prefers earlier training row": {
			x:        [][]float64{{-1}, {1}},
			y:        []float64{10, 20},
			opt:      &KNNOptions{Neighbors: 1},
			query:    [][]float64{{0}},
			expected: []float64{10},
		},
		"duplicate points keep first target": {
			x:        [][]float64{{3}, {3}},
			y:        []float64{10, 20},
			opt:      &KNNOptions{Neighbors: 1},
			query:    [][]float64{{3}},
			expected: []float64{10},
		},
		"two features": {
			x:        [][]float64{{0, 0}, {3, 4}, {6, 8}},
			y:        []float64{10, 20, 30},
			opt:      &KNNOptions{Neighbors: 1},
			query:    [][]float64{{3, 3}},
			expected: []float64{20},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			model, err := NewKNNRegression(td.opt)
			require.Nil(t, err)

			x := mat.NewDense(len(td.x), len(td.x[0]), nil)
			y := mat.NewDense(len(td.y), 1, td.y)
			for i, row := range td.x {
				x.SetRow(i, row)
			}
			require.Nil(t, model.Fit(x, y))

			query := mat.NewDense(len(td.query), len(td.query[0]), nil)
			for i, row := range td.query {
				query.SetRow(i, row)
			}
			res, err := model.Predict(query)
			require.Nil(t, err)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestKNNRegressionPredictErrors(t *testing.T) {
	model, err := NewKNNRegression(&KNNOptions{Neighbors: 1})
	require.Nil(t, err)

	_, err = model.Predict(mat.NewDense(1, 1, []float64{1}))
	assert.ErrorIs(t, err, ErrNotFitted)

	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	y := mat.NewDense(2, 1, []float64{10, 20})
	require.Nil(t, model.Fit(x, y))

	_, err = model.Predict(nil)
	assert.ErrorIs(t, err, ErrNoDesignMatrix)

	_, err = model.Predict(mat.NewDense(1, 3, []float64{1, 2, 3}))
	assert.ErrorIs(t, err, ErrFeatureLenMismatch)

	_, err = model.Predict(mat.NewDense(1, 2, []float64{1, math.NaN()}))
	assert.ErrorIs(t, err, ErrNonNumericValue)
}

func TestKNNRegressionScore(t *testing.T) {
	x := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{10, 20, 30, 40})

	model, err := NewKNNRegression(&KNNOptions{Neighbors: 1})
	require.Nil(t, err)
	require.Nil(t, model.Fit(x, y))

	// each training point is its own nearest neighbor
	score, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, score, 1e-12)

	_, err = model.Score(x, mat.NewDense(3, 1, []float64{1, 2, 3}))
	assert.ErrorIs(t, err, ErrTargetLenMismatch)
}
