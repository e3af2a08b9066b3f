package stats

import (
	"fmt"

	"github.com/sartorproj/gomcdiag/chain"
	"gonum.org/v1/gonum/stat/distuv"
)

// PortmanteauResult represents the result of a Ljung-Box or Box-Pierce test.
type PortmanteauResult struct {
	Statistic float64 `json:"statistic" yaml:"statistic"`
	PValue    float64 `json:"p_value" yaml:"p_value"`
	Lags      int     `json:"lags" yaml:"lags"`
}

// LjungBox performs the Ljung-Box test for autocorrelation up to lag h.
// The null hypothesis is that the draws are uncorrelated; a small p-value
// means the chain would need more thinning to pass for independent draws.
//
//	Q = n(n+2) * sum_{k=1..h} r_k^2 / (n-k)
func LjungBox(c *chain.Chain, lags int) (*PortmanteauResult, error) {
	return portmanteau(c, lags, func(r []float64, n int) float64 {
		q := 0.0
		for k := 1; k < len(r); k++ {
			q += r[k] * r[k] / float64(n-k)
		}
		return q * float64(n*(n+2))
	})
}

// BoxPierce performs the Box-Pierce test, Q = n * sum r_k^2. It is the
// large-sample form of LjungBox.
func BoxPierce(c *chain.Chain, lags int) (*PortmanteauResult, error) {
	return portmanteau(c, lags, func(r []float64, n int) float64 {
		q := 0.0
		for k := 1; k < len(r); k++ {
			q += r[k] * r[k]
		}
		return q * float64(n)
	})
}

func portmanteau(c *chain.Chain, lags int, statistic func(r []float64, n int) float64) (*PortmanteauResult, error) {
	n := c.Len()
	if lags < 1 {
		return nil, fmt.Errorf("%w: lags=%d must be at least 1", ErrInvalidArgument, lags)
	}
	if n < MinSpectralLength {
		return nil, fmt.Errorf("%w: %d samples, at least %d needed", ErrInsufficientData, n, MinSpectralLength)
	}
	if lags >= n {
		lags = n - 1
	}

	r := autocorrelation(c.Values(), lags)
	if r == nil {
		return nil, fmt.Errorf("%w: chain %q is constant", ErrDegenerateVariance, c.Name())
	}

	q := statistic(r, n)
	return &PortmanteauResult{
		Statistic: q,
		PValue:    distuv.ChiSquared{K: float64(lags)}.Survival(q),
		Lags:      lags,
	}, nil
}
