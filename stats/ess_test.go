package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveSampleSizeIndependent(t *testing.T) {
	c := mustChain(normalSample(5000, 200))

	result, err := EffectiveSampleSize(c, nil)
	require.NoError(t, err)

	assert.InEpsilon(t, 5000, result.ESS, 0.3)
	assert.InDelta(t, math.Sqrt(result.S0/5000), result.MCSE, 1e-12)
	assert.InDelta(t, 1/math.Sqrt(5000), result.MCSE, 0.003)
}

func TestEffectiveSampleSizeCorrelated(t *testing.T) {
	c := mustChain(ar1Sample(20000, 0.9, 0, 201))

	for _, est := range []SpectralEstimator{nil, ARSpectralEstimator{}, BatchMeansEstimator{}} {
		result, err := EffectiveSampleSize(c, est)
		require.NoError(t, err)
		t.Logf("%T: ESS %.1f", est, result.ESS)
		assert.Less(t, result.ESS, 20000.0/5)
		assert.Greater(t, result.ESS, 0.0)
	}
}

func TestEffectiveSampleSizeConstant(t *testing.T) {
	_, err := EffectiveSampleSize(mustChain(constant(100, 1)), nil)
	assert.ErrorIs(t, err, ErrDegenerateVariance)
}

func TestEffectiveSampleSizeShortChain(t *testing.T) {
	_, err := EffectiveSampleSize(mustChain([]float64{1, 2, 3}), nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
