package stats

import (
	"fmt"
	"math"

	"github.com/sartorproj/gomcdiag/chain"
	"gonum.org/v1/gonum/stat"
)

// GelmanRubinResult represents the potential scale reduction of one scalar
// variable across parallel chains.
type GelmanRubinResult struct {
	RHat   float64 `json:"r_hat" yaml:"r_hat"`
	B      float64 `json:"b" yaml:"b"`             // Between-chain variance
	W      float64 `json:"w" yaml:"w"`             // Mean within-chain variance
	VarHat float64 `json:"var_hat" yaml:"var_hat"` // Pooled posterior variance estimate
	Chains int     `json:"chains" yaml:"chains"`
	Length int     `json:"length" yaml:"length"`
}

// GelmanRubin computes the potential scale reduction factor R-hat for m >= 2
// chains of equal length n >= 2 sampled for the same scalar variable.
//
//	B      = n/(m-1) * sum_j (mean_j - grand)^2
//	W      = 1/m * sum_j var_j
//	VarHat = (n-1)/n * W + B/n
//	R-hat  = sqrt(VarHat / W)
//
// R-hat approaches 1 as the chains converge to a common distribution;
// values above about 1.1 indicate non-convergence.
//
// When every chain is constant (W = 0) and they agree (B = 0), R-hat is
// exactly 1. Constant chains that disagree fail with ErrDegenerateVariance.
func GelmanRubin(chains []*chain.Chain) (*GelmanRubinResult, error) {
	m := len(chains)
	if m < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientChains, m)
	}
	n := chains[0].Len()
	for j, c := range chains {
		if c.Len() != n {
			return nil, fmt.Errorf("%w: chain %d has %d samples, chain 0 has %d", ErrShapeMismatch, j, c.Len(), n)
		}
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: chains hold %d sample", ErrInsufficientLength, n)
	}

	means := make([]float64, m)
	w := 0.0
	for j, c := range chains {
		values := c.Values()
		if allEqual(values) {
			means[j] = values[0]
			continue
		}
		mean, variance := stat.MeanVariance(values, nil)
		means[j] = mean
		w += variance
	}
	w /= float64(m)

	b := 0.0
	if !allEqual(means) {
		grand := stat.Mean(means, nil)
		for _, mean := range means {
			diff := mean - grand
			b += diff * diff
		}
		b *= float64(n) / float64(m-1)
	}

	nf := float64(n)
	varHat := (nf-1)/nf*w + b/nf

	result := &GelmanRubinResult{
		B:      b,
		W:      w,
		VarHat: varHat,
		Chains: m,
		Length: n,
	}

	if w == 0 {
		if b == 0 {
			result.RHat = 1
			return result, nil
		}
		return nil, fmt.Errorf("%w: chains are constant but disagree (B=%g)", ErrDegenerateVariance, b)
	}

	result.RHat = math.Sqrt(varHat / w)
	return result, nil
}

// GelmanRubinSet computes R-hat for every variable in the set. Vector
// quantities are stored component-wise in a Set, so each component gets its
// own entry. The first failing variable aborts the computation.
func GelmanRubinSet(set *chain.Set) (map[string]*GelmanRubinResult, error) {
	results := make(map[string]*GelmanRubinResult, set.Len())
	for _, name := range set.Variables() {
		chains, err := set.Chains(name)
		if err != nil {
			return nil, err
		}
		result, err := GelmanRubin(chains)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		results[name] = result
	}
	return results, nil
}

// allEqual reports whether every value equals the first. Constant chains and
// identical chain means must contribute exactly zero variance, which
// floating-point averaging does not guarantee.
func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
