package stats

import (
	"fmt"
	"math"

	"github.com/sartorproj/gomcdiag/chain"
	"gonum.org/v1/gonum/stat"
)

// EffectiveResult holds the dependence-adjusted precision of a chain mean.
type EffectiveResult struct {
	ESS  float64 `json:"ess" yaml:"ess"`   // n * var / S(0)
	MCSE float64 `json:"mcse" yaml:"mcse"` // sqrt(S(0) / n)
	S0   float64 `json:"s0" yaml:"s0"`     // Spectral density at zero
}

// EffectiveSampleSize estimates how many independent draws the chain is
// worth for estimating its mean, and the Monte Carlo standard error of that
// mean. A nil estimator selects the Bartlett estimator.
func EffectiveSampleSize(c *chain.Chain, est SpectralEstimator) (*EffectiveResult, error) {
	if est == nil {
		est = BartlettEstimator{}
	}

	x := c.Values()
	s0, err := est.Estimate(x)
	if err != nil {
		return nil, err
	}
	if s0 == 0 {
		return nil, fmt.Errorf("%w: chain %q has zero long-run variance", ErrDegenerateVariance, c.Name())
	}

	n := float64(len(x))
	variance := stat.Variance(x, nil)

	return &EffectiveResult{
		ESS:  n * variance / s0,
		MCSE: math.Sqrt(s0 / n),
		S0:   s0,
	}, nil
}
