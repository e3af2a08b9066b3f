package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/sartorproj/gomcdiag/chain"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// RafteryLewisConfig holds the accuracy target of a Raftery-Lewis run-length
// estimate: the posterior q-quantile should be estimated to within ±R with
// probability S.
type RafteryLewisConfig struct {
	Q       float64 `yaml:"q" json:"q"`             // Quantile of interest (default: 0.025)
	R       float64 `yaml:"r" json:"r"`             // Half-width accuracy (default: 0.005)
	S       float64 `yaml:"s" json:"s"`             // Coverage probability (default: 0.95, 0 means default)
	Epsilon float64 `yaml:"epsilon" json:"epsilon"` // Burn-in tolerance (default: 0.001, 0 means default)
}

// DefaultRafteryLewisConfig returns the classical gibbsit settings.
func DefaultRafteryLewisConfig() *RafteryLewisConfig {
	return &RafteryLewisConfig{
		Q:       0.025,
		R:       0.005,
		S:       0.95,
		Epsilon: 0.001,
	}
}

// RafteryLewisResult represents the result of a Raftery-Lewis diagnostic.
// Iteration counts are in units of the original (unthinned) chain.
type RafteryLewisResult struct {
	ThinningInterval     int     `json:"thinning_interval" yaml:"thinning_interval"`
	BurnIn               int     `json:"burn_in" yaml:"burn_in"`
	TotalIterations      int     `json:"total_iterations" yaml:"total_iterations"`
	MinIterations        int     `json:"min_iterations" yaml:"min_iterations"` // N_min: size needed without serial dependence
	DependenceFactor     float64 `json:"dependence_factor" yaml:"dependence_factor"`
	IndependenceThinning int     `json:"independence_thinning" yaml:"independence_thinning"`
	QuantileValue        float64 `json:"quantile_value" yaml:"quantile_value"`
	Alpha                float64 `json:"alpha" yaml:"alpha"` // P(leave state 0) in the thinned chain
	Beta                 float64 `json:"beta" yaml:"beta"`   // P(leave state 1) in the thinned chain
}

// RafteryLewis estimates the burn-in, thinning interval and run length
// needed to estimate the Q-quantile of the chain's target distribution to
// within ±R with probability S.
//
// The chain is reduced to the indicator Z[j] = theta[j] <= u_q. The smallest
// thinning k at which the thinned indicator is better described as a
// first-order than a second-order Markov chain (by BIC on transition
// counts) is selected, and the two-state transition probabilities of that
// chain determine burn-in and precision. Estimates are conservative.
func RafteryLewis(c *chain.Chain, config *RafteryLewisConfig) (*RafteryLewisResult, error) {
	if config == nil {
		config = DefaultRafteryLewisConfig()
	}
	q, r, s, eps := config.Q, config.R, config.S, config.Epsilon
	if s == 0 {
		s = 0.95
	}
	if eps == 0 {
		eps = 0.001
	}

	if !(q > 0 && q < 1) {
		return nil, fmt.Errorf("%w: q=%g", ErrInvalidQuantile, q)
	}
	if !(r > 0 && r < 1) {
		return nil, fmt.Errorf("%w: accuracy r=%g must lie in (0, 1)", ErrInvalidArgument, r)
	}
	if !(s > 0 && s < 1) {
		return nil, fmt.Errorf("%w: coverage s=%g must lie in (0, 1)", ErrInvalidArgument, s)
	}
	if !(eps > 0 && eps < 1) {
		return nil, fmt.Errorf("%w: epsilon=%g must lie in (0, 1)", ErrInvalidArgument, eps)
	}

	phi := distuv.UnitNormal.Quantile((1 + s) / 2)
	nmin := int(math.Ceil(phi * phi * q * (1 - q) / (r * r)))

	n := c.Len()
	if n < nmin {
		return nil, fmt.Errorf("%w: %d samples, at least %d needed for q=%g r=%g s=%g",
			ErrInsufficientData, n, nmin, q, r, s)
	}

	sorted := c.Values()
	sort.Float64s(sorted)
	uq := stat.Quantile(q, stat.Empirical, sorted, nil)

	z := make([]int, n)
	for i := range z {
		if c.At(i) <= uq {
			z[i] = 1
		}
	}

	kthin, err := thinningForOrder(z, secondOrderBIC)
	if err != nil {
		return nil, err
	}
	kindep, err := thinningForOrder(z, independenceBIC)
	if err != nil {
		return nil, err
	}

	counts := transitionCounts(thin(z, kthin))
	if counts[0][0]+counts[0][1] == 0 || counts[1][0]+counts[1][1] == 0 {
		return nil, fmt.Errorf("%w: indicator chain never visits both states", ErrInsufficientData)
	}
	alpha := float64(counts[0][1]) / float64(counts[0][0]+counts[0][1])
	beta := float64(counts[1][0]) / float64(counts[1][0]+counts[1][1])
	if alpha == 0 || beta == 0 {
		return nil, fmt.Errorf("%w: no transitions observed out of one state (alpha=%g beta=%g)",
			ErrInsufficientData, alpha, beta)
	}

	burn, err := burnInSteps(alpha, beta, eps)
	if err != nil {
		return nil, err
	}

	psum := alpha + beta
	nprec := int(math.Ceil((2 - psum) * alpha * beta / (psum * psum * psum) * (phi / r) * (phi / r)))

	return &RafteryLewisResult{
		ThinningInterval:     kthin,
		BurnIn:               burn * kthin,
		TotalIterations:      nprec*kthin + burn*kthin,
		MinIterations:        nmin,
		DependenceFactor:     float64(nprec) / float64(nmin),
		IndependenceThinning: kindep,
		QuantileValue:        uq,
		Alpha:                alpha,
		Beta:                 beta,
	}, nil
}

// burnInSteps returns the smallest M >= 0 with rho^M <= eps*(a+b)/max(a,b),
// rho = |1-a-b|, in thinned steps.
func burnInSteps(alpha, beta, eps float64) (int, error) {
	bound := eps * (alpha + beta) / math.Max(alpha, beta)
	if bound >= 1 {
		return 0, nil
	}
	rho := math.Abs(1 - alpha - beta)
	if rho == 0 {
		return 1, nil
	}
	if rho >= 1 {
		return 0, fmt.Errorf("%w: indicator chain alternates deterministically", ErrInsufficientData)
	}

	m := int(math.Ceil(math.Log(bound) / math.Log(rho)))
	if m < 1 {
		m = 1
	}
	for m > 1 && math.Pow(rho, float64(m-1)) <= bound {
		m--
	}
	for math.Pow(rho, float64(m)) > bound {
		m++
	}
	return m, nil
}

// thinningForOrder returns the smallest k for which bic(thinned) < 0.
func thinningForOrder(z []int, bic func([]int) float64) (int, error) {
	for k := 1; len(z)/k >= 3; k++ {
		if bic(thin(z, k)) < 0 {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: no thinning interval yields a first-order indicator chain", ErrInsufficientData)
}

func thin(z []int, k int) []int {
	if k == 1 {
		return z
	}
	out := make([]int, 0, (len(z)+k-1)/k)
	for i := 0; i < len(z); i += k {
		out = append(out, z[i])
	}
	return out
}

func transitionCounts(z []int) [2][2]int {
	var counts [2][2]int
	for t := 1; t < len(z); t++ {
		counts[z[t-1]][z[t]]++
	}
	return counts
}

// secondOrderBIC compares a second-order against a first-order two-state
// Markov model. Negative values favour the first-order model.
func secondOrderBIC(z []int) float64 {
	var counts [2][2][2]float64
	for t := 2; t < len(z); t++ {
		counts[z[t-2]][z[t-1]][z[t]]++
	}

	g2 := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				if counts[i][j][k] == 0 {
					continue
				}
				ij := counts[i][j][0] + counts[i][j][1]
				jk := counts[0][j][k] + counts[1][j][k]
				mid := counts[0][j][0] + counts[0][j][1] + counts[1][j][0] + counts[1][j][1]
				fitted := ij * jk / mid
				g2 += 2 * counts[i][j][k] * math.Log(counts[i][j][k]/fitted)
			}
		}
	}

	return g2 - 2*math.Log(float64(len(z)-2))
}

// independenceBIC compares a first-order Markov model against independent
// draws. Negative values favour independence.
func independenceBIC(z []int) float64 {
	counts := transitionCounts(z)
	total := float64(len(z) - 1)

	g2 := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if counts[i][j] == 0 {
				continue
			}
			row := float64(counts[i][0] + counts[i][1])
			col := float64(counts[0][j] + counts[1][j])
			fitted := row * col / total
			g2 += 2 * float64(counts[i][j]) * math.Log(float64(counts[i][j])/fitted)
		}
	}

	return g2 - math.Log(total)
}
