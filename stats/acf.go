package stats

import (
	"github.com/sartorproj/gomcdiag/chain"
	"gonum.org/v1/gonum/stat"
)

// autocovariance returns the biased (divide by n) autocovariances of x for
// lags 0 to maxLag. maxLag is clamped to len(x)-1.
func autocovariance(x []float64, maxLag int) []float64 {
	n := len(x)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(x, nil)
	acov := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (x[i] - mean) * (x[i-k] - mean)
		}
		acov[k] = sum / float64(n)
	}

	return acov
}

// autocorrelation normalizes autocovariance by the lag-0 term.
// Returns nil for a constant sequence.
func autocorrelation(x []float64, maxLag int) []float64 {
	acov := autocovariance(x, maxLag)
	if acov == nil || acov[0] == 0 {
		return nil
	}
	acf := make([]float64, len(acov))
	for k, v := range acov {
		acf[k] = v / acov[0]
	}
	return acf
}

// ACF calculates the autocorrelation function of a chain for lags 0 to
// maxLag. Returns nil for a constant chain.
func ACF(c *chain.Chain, maxLag int) []float64 {
	return autocorrelation(c.Values(), maxLag)
}
