package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestFreemanTukey(t *testing.T) {
	d, err := FreemanTukey([]float64{4, 9}, []float64{1, 4})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d, 1e-12)

	d, err = FreemanTukey([]float64{1, 4, 9}, []float64{4})
	require.NoError(t, err)
	assert.InDelta(t, 1.0+0.0+1.0, d, 1e-12)

	_, err = FreemanTukey([]float64{1, 2, 3}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = FreemanTukey([]float64{1, -2}, []float64{1})
	assert.ErrorIs(t, err, ErrNegativeValue)
}

func TestDiscrepancySharedExpected(t *testing.T) {
	observed := []float64{0, 1, 3, 5}
	simulated := [][]float64{
		{0, 1, 3, 5},
		{1, 2, 2, 4},
	}
	expected := ExpectedShared([]float64{0.5, 1, 3, 4.5})

	result, err := Discrepancy(observed, simulated, expected)
	require.NoError(t, err)

	dObs := 0.5 + math.Pow(math.Sqrt(5)-math.Sqrt(4.5), 2)
	require.Len(t, result.Observed, 2)
	assert.InDelta(t, dObs, result.Observed[0], 1e-12)
	assert.InDelta(t, dObs, result.Observed[1], 1e-12)

	// The first replicate reproduces the data, so its discrepancy ties.
	assert.InDelta(t, dObs, result.Simulated[0], 1e-12)
	assert.Less(t, result.Simulated[1], dObs)
	assert.Equal(t, 0.0, result.PValue)
}

func TestDiscrepancyPerDrawExpected(t *testing.T) {
	observed := []float64{1, 1}
	simulated := [][]float64{{1, 1}, {4, 4}, {9, 0}}
	expected := ExpectedPerDraw([]float64{1, 4, 4})

	result, err := Discrepancy(observed, simulated, expected)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 2, 2}, result.Observed, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 0, 5}, result.Simulated, 1e-12)
	assert.InDelta(t, 1.0/3, result.PValue, 1e-12)
}

func TestDiscrepancyPerDrawRows(t *testing.T) {
	observed := []float64{2, 3}
	simulated := [][]float64{{2, 3}, {2, 3}}
	expected := [][]float64{{2, 3}, {0, 0}}

	result, err := Discrepancy(observed, simulated, expected)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 5}, result.Observed, 1e-12)
	assert.Equal(t, result.Observed, result.Simulated)
	assert.Equal(t, 0.0, result.PValue)
}

func TestDiscrepancyShapeErrors(t *testing.T) {
	tests := []struct {
		name      string
		observed  []float64
		simulated [][]float64
		expected  [][]float64
	}{
		{"no observations", nil, [][]float64{{1}}, [][]float64{{1}}},
		{"no replicates", []float64{1}, nil, [][]float64{{1}}},
		{"short replicate", []float64{1, 2}, [][]float64{{1, 2}, {1}}, [][]float64{{1}}},
		{"expected rows", []float64{1}, [][]float64{{1}, {2}}, [][]float64{{1}, {1}, {1}}},
		{"expected width", []float64{1, 2}, [][]float64{{1, 2}}, [][]float64{{1, 2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Discrepancy(tt.observed, tt.simulated, tt.expected)
			assert.ErrorIs(t, err, ErrShapeMismatch)
		})
	}
}

func TestDiscrepancyNegativeValues(t *testing.T) {
	tests := []struct {
		name      string
		observed  []float64
		simulated [][]float64
		expected  [][]float64
	}{
		{"observed", []float64{1, -1}, [][]float64{{1, 1}}, [][]float64{{1}}},
		{"simulated", []float64{1, 1}, [][]float64{{1, 1}, {-3, 1}}, [][]float64{{1}}},
		{"expected", []float64{1, 1}, [][]float64{{1, 1}}, [][]float64{{1, -0.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Discrepancy(tt.observed, tt.simulated, tt.expected)
			assert.ErrorIs(t, err, ErrNegativeValue)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestBayesianPValue(t *testing.T) {
	p, err := BayesianPValue([]float64{1, 2, 3, 4}, []float64{2, 2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.5, p)

	_, err = BayesianPValue([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = BayesianPValue(nil, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

// Data drawn from the model itself should give p-values centred on 1/2.
func TestDiscrepancyCalibrated(t *testing.T) {
	const (
		datasets = 300
		n        = 20
		r        = 200
		lambda   = 5.0
	)
	poisson := distuv.Poisson{Lambda: lambda, Src: rand.NewPCG(7, 11)}
	draw := func() []float64 {
		v := make([]float64, n)
		for i := range v {
			v[i] = poisson.Rand()
		}
		return v
	}

	expected := ExpectedShared([]float64{lambda})
	pvalues := make([]float64, datasets)
	for d := range pvalues {
		observed := draw()
		simulated := make([][]float64, r)
		for i := range simulated {
			simulated[i] = draw()
		}
		result, err := Discrepancy(observed, simulated, expected)
		require.NoError(t, err)
		pvalues[d] = result.PValue
	}

	mean := stat.Mean(pvalues, nil)
	t.Logf("mean p-value %.4f", mean)
	assert.GreaterOrEqual(t, mean, 0.42)
	assert.LessOrEqual(t, mean, 0.58)
}
