package fairpay

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var ErrResLenMismatch = errors.New("estimated and actual have different lengths")

type Scores struct {
	MSE  float64 `json:"mse"`  // mean squared error
	MAPE float64 `json:"mape"` // mean average percent error
	R2   float64 `json:"r2"`   // coefficient of determination
}

func NewScores(estimated, actual []float64) (*Scores, error) {
	mse, err := MSE(estimated, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean squared error, %w", err)
	}
	mape, err := MAPE(estimated, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean average percent error, %w", err)
	}
	return &Scores{
		MSE:  mse,
		MAPE: mape,
		R2:   stat.RSquaredFrom(estimated, actual, nil),
	}, nil
}

func MSE(estimated, actual []float64) (float64, error) {
	if len(estimated) != len(actual) {
		return 0, ErrResLenMismatch
	}

	mse := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(estimated[i]) {
			continue
		}
		mse += math.Pow(actual[i]-estimated[i], 2.0)
	}
	mse /= float64(len(actual))
	return mse, nil
}

func MAPE(estimated, actual []float64) (float64, error) {
	if len(estimated) != len(actual) {
		return 0, ErrResLenMismatch
	}

	mape := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(estimated[i]) || actual[i] == 0 {
			continue
		}
		mape += math.Abs((actual[i] - estimated[i]) / actual[i])
	}
	mape /= float64(len(actual))
	return mape, nil
}
