package stats

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// MinSpectralLength is the shortest sequence the built-in estimators accept.
const MinSpectralLength = 10

// SpectralEstimator estimates the spectral density of a sequence at
// frequency zero, i.e. its long-run variance. The variance of the sequence
// mean is Estimate(x)/len(x). Implementations must be deterministic.
type SpectralEstimator interface {
	Estimate(x []float64) (float64, error)
	MinLength() int
}

// NewSpectralEstimator returns the estimator registered under name:
// "bartlett" (default when empty), "ar" or "batch".
func NewSpectralEstimator(name string) (SpectralEstimator, error) {
	switch strings.ToLower(name) {
	case "", "bartlett", "newey-west":
		return BartlettEstimator{}, nil
	case "ar", "yule-walker":
		return ARSpectralEstimator{}, nil
	case "batch", "batch-means":
		return BatchMeansEstimator{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown spectral estimator %q", ErrInvalidArgument, name)
	}
}

func checkSpectralLength(x []float64, minLen int) error {
	if len(x) < minLen {
		return fmt.Errorf("%w: spectral estimate needs %d samples, got %d", ErrInsufficientData, minLen, len(x))
	}
	return nil
}

// BartlettEstimator is the Newey-West estimator: a Bartlett-weighted sum of
// autocovariances. It is non-negative by construction.
type BartlettEstimator struct {
	Lags int // Truncation lag (default: floor(4*(n/100)^(1/4)))
}

// MinLength returns the shortest accepted sequence.
func (e BartlettEstimator) MinLength() int {
	return MinSpectralLength
}

// Estimate returns the long-run variance of x.
func (e BartlettEstimator) Estimate(x []float64) (float64, error) {
	if err := checkSpectralLength(x, e.MinLength()); err != nil {
		return 0, err
	}

	n := len(x)
	nlags := e.Lags
	if nlags <= 0 {
		nlags = int(math.Floor(4 * math.Pow(float64(n)/100, 0.25)))
	}
	if nlags >= n {
		nlags = n - 1
	}

	acov := autocovariance(x, nlags)
	s2 := acov[0]
	for l := 1; l < len(acov); l++ {
		weight := 1.0 - float64(l)/float64(nlags+1)
		s2 += 2 * weight * acov[l]
	}

	if s2 < 0 {
		s2 = 0
	}
	return s2, nil
}

// ARSpectralEstimator fits an AR(p) model by Yule-Walker, choosing p by AIC,
// and evaluates the fitted spectrum at zero: sigma^2 / (1 - sum(phi))^2.
type ARSpectralEstimator struct {
	MaxOrder int // Largest order considered (default: min(10*log10(n), n/5))
}

// MinLength returns the shortest accepted sequence.
func (e ARSpectralEstimator) MinLength() int {
	return MinSpectralLength
}

// Estimate returns the long-run variance of x.
func (e ARSpectralEstimator) Estimate(x []float64) (float64, error) {
	if err := checkSpectralLength(x, e.MinLength()); err != nil {
		return 0, err
	}

	n := len(x)
	maxP := e.MaxOrder
	if maxP <= 0 {
		maxP = min(int(10*math.Log10(float64(n))), n/5)
	}
	maxP = min(maxP, n-1)

	acov := autocovariance(x, maxP)
	if acov[0] == 0 {
		return 0, nil
	}

	phi, sigma2 := selectAROrder(acov, n)

	sum := 0.0
	for _, v := range phi {
		sum += v
	}
	denom := 1 - sum
	return sigma2 / (denom * denom), nil
}

// selectAROrder runs the Levinson-Durbin recursion over acov and returns
// the AR coefficients and innovation variance of the order minimizing
// AIC = n*log(sigma^2) + 2p.
func selectAROrder(acov []float64, n int) ([]float64, float64) {
	order := len(acov) - 1

	bestPhi := []float64{}
	bestVar := acov[0]
	bestAIC := float64(n) * math.Log(acov[0])

	phi := make([]float64, 0, order)
	v := acov[0]
	for k := 1; k <= order; k++ {
		lambda := acov[k]
		for j := 0; j < k-1; j++ {
			lambda -= phi[j] * acov[k-1-j]
		}
		lambda /= v

		newPhi := make([]float64, k)
		for j := 0; j < k-1; j++ {
			newPhi[j] = phi[j] - lambda*phi[k-2-j]
		}
		newPhi[k-1] = lambda
		phi = newPhi

		v *= 1 - lambda*lambda
		if v <= 0 {
			break
		}

		aic := float64(n)*math.Log(v) + 2*float64(k)
		if aic < bestAIC {
			bestAIC = aic
			bestVar = v
			bestPhi = phi
		}
	}

	return bestPhi, bestVar
}

// BatchMeansEstimator splits the sequence into non-overlapping batches and
// scales the variance of the batch means by the batch size.
type BatchMeansEstimator struct {
	Batches int // Number of batches (default: floor(sqrt(n)))
}

// MinLength returns the shortest accepted sequence.
func (e BatchMeansEstimator) MinLength() int {
	return MinSpectralLength
}

// Estimate returns the long-run variance of x. Trailing samples that do not
// fill a batch are ignored.
func (e BatchMeansEstimator) Estimate(x []float64) (float64, error) {
	if err := checkSpectralLength(x, e.MinLength()); err != nil {
		return 0, err
	}

	n := len(x)
	batches := e.Batches
	if batches <= 0 {
		batches = int(math.Floor(math.Sqrt(float64(n))))
	}
	if batches < 2 || batches > n/2 {
		return 0, fmt.Errorf("%w: %d batches for %d samples", ErrInvalidArgument, batches, n)
	}
	size := n / batches

	means := make([]float64, batches)
	for b := range means {
		means[b] = stat.Mean(x[b*size:(b+1)*size], nil)
	}

	return float64(size) * stat.Variance(means, nil), nil
}
