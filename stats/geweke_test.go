package stats

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestDefaultGewekeConfig(t *testing.T) {
	config := DefaultGewekeConfig()

	assert.Equal(t, 0.1, config.First)
	assert.Equal(t, 0.5, config.Last)
	assert.Equal(t, 20, config.Intervals)
	assert.Equal(t, BartlettEstimator{}, config.Estimator)
}

func TestGewekeWindowLayout(t *testing.T) {
	c := mustChain(normalSample(1000, 10))

	result, err := Geweke(c, nil)
	require.NoError(t, err)

	assert.Equal(t, 100, result.EarlyLength)
	assert.Equal(t, 500, result.LateLength)
	require.Len(t, result.Scores, 20)

	assert.Equal(t, 0, result.Scores[0].Start)
	assert.Equal(t, 400, result.Scores[19].Start)
	for i, s := range result.Scores {
		assert.InDelta(t, float64(s.Start)/1000, s.StartFraction, 1e-12)
		// Early windows stay clear of the late window.
		assert.LessOrEqual(t, s.Start+result.EarlyLength, 1000-result.LateLength)
		if i > 0 {
			assert.Greater(t, s.Start, result.Scores[i-1].Start)
		}
	}
}

func TestGewekeSingleInterval(t *testing.T) {
	c := mustChain(normalSample(500, 11))

	config := DefaultGewekeConfig()
	config.Intervals = 1

	result, err := Geweke(c, config)
	require.NoError(t, err)
	require.Len(t, result.Scores, 1)
	assert.Equal(t, 0, result.Scores[0].Start)
}

// Over many independent white-noise chains the z-scores should follow a
// standard normal distribution.
func TestGewekeWhiteNoiseIsStandardNormal(t *testing.T) {
	const chains = 200

	var all []float64
	first := make([]float64, 0, chains)
	for i := 0; i < chains; i++ {
		c := mustChain(normalSample(1000, uint64(100+i)))
		result, err := Geweke(c, nil)
		require.NoError(t, err)

		first = append(first, result.Scores[0].ZScore)
		for _, s := range result.Scores {
			all = append(all, s.ZScore)
		}
	}

	mean, variance := stat.MeanVariance(all, nil)
	t.Logf("z mean %.4f variance %.4f over %d scores", mean, variance, len(all))
	assert.InDelta(t, 0, mean, 0.15)
	assert.InDelta(t, 1, variance, 0.25)

	// Kolmogorov-Smirnov distance against a dense standard normal grid.
	const grid = 2000
	reference := make([]float64, grid)
	for i := range reference {
		reference[i] = distuv.UnitNormal.Quantile((float64(i) + 0.5) / grid)
	}
	sort.Float64s(first)
	d := stat.KolmogorovSmirnov(first, nil, reference, nil)
	t.Logf("KS distance %.4f", d)
	assert.Less(t, d, 0.15)
}

func TestGewekeDetectsDrift(t *testing.T) {
	values := normalSample(1000, 12)
	// Early samples sit well above the stationary mean.
	for i := 0; i < 300; i++ {
		values[i] += 3 * float64(300-i) / 300
	}

	result, err := Geweke(mustChain(values), nil)
	require.NoError(t, err)
	assert.Greater(t, result.MaxAbsZ(), 2.0)
	assert.Greater(t, result.Scores[0].ZScore, 2.0)
}

func TestGewekeAlternativeEstimators(t *testing.T) {
	c := mustChain(ar1Sample(2000, 0.5, 0, 13))

	for _, est := range []SpectralEstimator{ARSpectralEstimator{}, BatchMeansEstimator{}} {
		config := DefaultGewekeConfig()
		config.Estimator = est
		result, err := Geweke(c, config)
		require.NoError(t, err)
		assert.Len(t, result.Scores, 20)
	}
}

func TestGewekeInvalidWindow(t *testing.T) {
	c := mustChain(normalSample(1000, 14))

	tests := []struct {
		name      string
		first     float64
		last      float64
		intervals int
	}{
		{"zero first", 0, 0.5, 20},
		{"first of one", 1, 0.5, 20},
		{"negative last", 0.1, -0.5, 20},
		{"overlapping", 0.5, 0.5, 20},
		{"no intervals", 0.1, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &GewekeConfig{First: tt.first, Last: tt.last, Intervals: tt.intervals}
			_, err := Geweke(c, config)
			assert.ErrorIs(t, err, ErrInvalidWindow)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestGewekeShortChain(t *testing.T) {
	// 10% of 50 samples is below the estimator minimum.
	_, err := Geweke(mustChain(normalSample(50, 15)), nil)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestGewekeConstantChain(t *testing.T) {
	_, err := Geweke(mustChain(constant(500, 2)), nil)
	assert.ErrorIs(t, err, ErrDegenerateVariance)
}
