package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectralEstimatorsWhiteNoise(t *testing.T) {
	x := normalSample(20000, 1)

	estimators := map[string]SpectralEstimator{
		"bartlett": BartlettEstimator{},
		"ar":       ARSpectralEstimator{},
		"batch":    BatchMeansEstimator{Batches: 1000},
	}

	for name, est := range estimators {
		t.Run(name, func(t *testing.T) {
			s0, err := est.Estimate(x)
			require.NoError(t, err)
			// White noise with unit variance has S(0) = 1.
			assert.InDelta(t, 1.0, s0, 0.15, "S(0) = %f", s0)
		})
	}
}

func TestSpectralEstimatorsAR1(t *testing.T) {
	phi := 0.5
	x := ar1Sample(50000, phi, 0, 2)
	want := 1 / ((1 - phi) * (1 - phi))

	estimators := map[string]SpectralEstimator{
		"bartlett": BartlettEstimator{},
		"ar":       ARSpectralEstimator{},
		"batch":    BatchMeansEstimator{Batches: 500},
	}

	for name, est := range estimators {
		t.Run(name, func(t *testing.T) {
			s0, err := est.Estimate(x)
			require.NoError(t, err)
			t.Logf("%s: S(0) = %f, true %f", name, s0, want)
			assert.InEpsilon(t, want, s0, 0.25)
		})
	}
}

func TestSpectralEstimatorARRecoversOrder(t *testing.T) {
	phi := 0.8
	x := ar1Sample(20000, phi, 0, 3)
	want := 1 / ((1 - phi) * (1 - phi))

	s0, err := ARSpectralEstimator{}.Estimate(x)
	require.NoError(t, err)
	assert.InEpsilon(t, want, s0, 0.2)
}

func TestSpectralEstimatorsShortInput(t *testing.T) {
	x := normalSample(MinSpectralLength-1, 4)

	for _, est := range []SpectralEstimator{BartlettEstimator{}, ARSpectralEstimator{}, BatchMeansEstimator{}} {
		_, err := est.Estimate(x)
		assert.ErrorIs(t, err, ErrInsufficientData)
	}
}

func TestSpectralEstimatorsConstant(t *testing.T) {
	x := constant(100, 3.5)

	for _, est := range []SpectralEstimator{BartlettEstimator{}, ARSpectralEstimator{}, BatchMeansEstimator{}} {
		s0, err := est.Estimate(x)
		require.NoError(t, err)
		assert.Equal(t, 0.0, s0)
	}
}

func TestSpectralEstimatorsDeterministic(t *testing.T) {
	x := ar1Sample(1000, 0.3, 0, 5)

	for _, est := range []SpectralEstimator{BartlettEstimator{}, ARSpectralEstimator{}, BatchMeansEstimator{}} {
		a, err := est.Estimate(x)
		require.NoError(t, err)
		b, err := est.Estimate(x)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestBatchMeansRejectsBadBatchCount(t *testing.T) {
	x := normalSample(100, 6)

	_, err := BatchMeansEstimator{Batches: 1}.Estimate(x)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = BatchMeansEstimator{Batches: 60}.Estimate(x)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewSpectralEstimator(t *testing.T) {
	tests := []struct {
		name string
		want SpectralEstimator
	}{
		{"", BartlettEstimator{}},
		{"bartlett", BartlettEstimator{}},
		{"Newey-West", BartlettEstimator{}},
		{"ar", ARSpectralEstimator{}},
		{"batch", BatchMeansEstimator{}},
	}

	for _, tt := range tests {
		est, err := NewSpectralEstimator(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, est)
	}

	_, err := NewSpectralEstimator("periodogram")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSelectAROrder(t *testing.T) {
	// Exact AR(1) autocovariances: gamma_k = phi^k / (1 - phi^2).
	phi := 0.6
	acov := make([]float64, 6)
	for k := range acov {
		acov[k] = math.Pow(phi, float64(k)) / (1 - phi*phi)
	}

	coeffs, sigma2 := selectAROrder(acov, 10000)
	require.Len(t, coeffs, 1)
	assert.InDelta(t, phi, coeffs[0], 1e-12)
	assert.InDelta(t, 1.0, sigma2, 1e-12)
}
