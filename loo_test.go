package fairpay

import (
	"testing"

	"github.com/hoopstats/go-fairpay/dataset"
	"github.com/hoopstats/go-fairpay/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, x []float64, y []float64) *dataset.Table {
	t.Helper()
	names := make([]string, len(x))
	rows := make([][]float64, len(x))
	for i, val := range x {
		names[i] = string(rune('a' + i))
		rows[i] = []float64{val}
	}
	tbl, err := dataset.New(names, []string{"x"}, rows, y)
	require.Nil(t, err)
	return tbl
}

func TestLeaveOneOut(t *testing.T) {
	testData := map[string]struct {
		x         []float64
		y         []float64
		neighbors int
		expected  []float64
		err       error
	}{
		"single nearest neighbor": {
			// row 1 ties between features 1 and 3 and resolves to the
			// earlier training row, as does row 2 between 2 and 4
			x:         []float64{1, 2, 3, 4, 5, 6},
			y:         []float64{1, 2, 3, 4, 5, 6},
			neighbors: 1,
			expected:  []float64{2, 1, 2, 3, 4, 5},
		},
		"duplicate rows neighbor each other": {
			// identical features with distinct targets stay legal
			// zero-distance neighbors, only self-exclusion is forbidden
			x:         []float64{1, 1, 5},
			y:         []float64{10, 20, 50},
			neighbors: 1,
			expected:  []float64{20, 10, 10},
		},
		"boundary n equals k plus one": {
			x:         []float64{1, 2, 3},
			y:         []float64{10, 20, 30},
			neighbors: 2,
			expected:  []float64{25, 20, 15},
		},
		"insufficient observations": {
			x:         []float64{1, 2, 3},
			y:         []float64{10, 20, 30},
			neighbors: 3,
			err:       models.ErrInsufficientData,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			tbl := newTestTable(t, td.x, td.y)

			estimates, err := LeaveOneOut(tbl, td.neighbors)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			require.Len(t, estimates, len(td.x))
			assert.Equal(t, td.expected, estimates)
		})
	}
}

func TestLeaveOneOutNoTable(t *testing.T) {
	_, err := LeaveOneOut(nil, 1)
	assert.ErrorIs(t, err, dataset.ErrNoObservations)
}

func TestLeaveOneOutIdempotent(t *testing.T) {
	tbl := newTestTable(
		t,
		[]float64{3, 1, 4, 1.5, 9, 2.6, 5.3, 5.8},
		[]float64{30, 10, 40, 15, 90, 26, 53, 58},
	)

	first, err := LeaveOneOut(tbl, 3)
	require.Nil(t, err)
	second, err := LeaveOneOut(tbl, 3)
	require.Nil(t, err)
	assert.Equal(t, first, second)
}

func TestLeaveOneOutInputUnchanged(t *testing.T) {
	tbl := newTestTable(t, []float64{1, 2, 3, 4}, []float64{10, 20, 30, 40})
	orig := tbl.Copy()

	_, err := LeaveOneOut(tbl, 2)
	require.Nil(t, err)
	assert.Equal(t, orig, tbl)
}
