package stats

import (
	"math/rand/v2"

	"github.com/sartorproj/gomcdiag/chain"
	"gonum.org/v1/gonum/stat/distuv"
)

// normalSample draws n independent N(0, 1) values.
func normalSample(n int, seed uint64) []float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(seed, 0x5eed)}
	values := make([]float64, n)
	for i := range values {
		values[i] = dist.Rand()
	}
	return values
}

// ar1Sample draws an AR(1) path x[t] = phi*x[t-1] + e[t] with unit-variance
// innovations, started at start.
func ar1Sample(n int, phi, start float64, seed uint64) []float64 {
	noise := normalSample(n, seed)
	values := make([]float64, n)
	prev := start
	for i := range values {
		values[i] = phi*prev + noise[i]
		prev = values[i]
	}
	return values
}

func constant(n int, v float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = v
	}
	return values
}

func mustChain(values []float64) *chain.Chain {
	return chain.MustNew("x", values)
}
