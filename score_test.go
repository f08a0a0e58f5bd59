package fairpay

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScores(t *testing.T) {
	estimated := []float64{2, 4, 6, 8}
	actual := []float64{1, 4, 6, 10}

	scores, err := NewScores(estimated, actual)
	require.Nil(t, err)

	assert.InDelta(t, 1.25, scores.MSE, 1e-12)
	assert.InDelta(t, 0.3, scores.MAPE, 1e-12)
	assert.Greater(t, scores.R2, 0.0)
}

func TestNewScoresLenMismatch(t *testing.T) {
	_, err := NewScores([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrResLenMismatch)
}

func TestMSESkipsNaN(t *testing.T) {
	mse, err := MSE([]float64{2, math.NaN()}, []float64{1, 5})
	require.Nil(t, err)
	assert.InDelta(t, 0.5, mse, 1e-12)
}

func TestMAPESkipsZeroActual(t *testing.T) {
	mape, err := MAPE([]float64{2, 3}, []float64{1, 0})
	require.Nil(t, err)
	assert.InDelta(t, 0.5, mape, 1e-12)
}
