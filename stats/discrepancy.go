package stats

import (
	"fmt"
	"math"
)

// DiscrepancyResult holds the Freeman-Tukey discrepancies of each posterior
// draw and the resulting Bayesian p-value.
type DiscrepancyResult struct {
	Simulated []float64 `json:"simulated" yaml:"simulated"` // D(x_sim[t], e_t)
	Observed  []float64 `json:"observed" yaml:"observed"`   // D(x, e_t)
	PValue    float64   `json:"p_value" yaml:"p_value"`
}

// FreemanTukey returns sum_j (sqrt(v_j) - sqrt(e_j))^2. A single expected
// value is broadcast over all of v.
func FreemanTukey(v, e []float64) (float64, error) {
	if len(e) != len(v) && len(e) != 1 {
		return 0, fmt.Errorf("%w: %d values against %d expected", ErrShapeMismatch, len(v), len(e))
	}
	d := 0.0
	for j, x := range v {
		ej := e[0]
		if len(e) > 1 {
			ej = e[j]
		}
		if x < 0 || ej < 0 {
			return 0, fmt.Errorf("%w: index %d (value %g, expected %g)", ErrNegativeValue, j, x, ej)
		}
		diff := math.Sqrt(x) - math.Sqrt(ej)
		d += diff * diff
	}
	return d, nil
}

// ExpectedPerDraw shapes one expected value per posterior draw for
// Discrepancy.
func ExpectedPerDraw(values []float64) [][]float64 {
	out := make([][]float64, len(values))
	for t, v := range values {
		out[t] = []float64{v}
	}
	return out
}

// ExpectedShared shapes a single expected vector used by every draw.
func ExpectedShared(values []float64) [][]float64 {
	return [][]float64{values}
}

// Discrepancy compares observed data with posterior-predictive replicates.
//
// observed has n values; simulated holds r replicates of n values, one per
// posterior draw. expected holds either r rows (one per draw) or a single
// row shared by all draws; each row has n values or a single value
// broadcast across observations. For each draw t
//
//	Observed[t]  = D(observed, e_t)
//	Simulated[t] = D(simulated[t], e_t)
//
// with D the Freeman-Tukey statistic, and PValue is the share of draws with
// Simulated[t] > Observed[t]. p-values near 0 or 1 signal lack of fit.
func Discrepancy(observed []float64, simulated, expected [][]float64) (*DiscrepancyResult, error) {
	n := len(observed)
	r := len(simulated)
	if n == 0 || r == 0 {
		return nil, fmt.Errorf("%w: %d observations, %d replicates", ErrShapeMismatch, n, r)
	}
	if len(expected) != r && len(expected) != 1 {
		return nil, fmt.Errorf("%w: %d expected rows for %d replicates", ErrShapeMismatch, len(expected), r)
	}
	for t, row := range simulated {
		if len(row) != n {
			return nil, fmt.Errorf("%w: replicate %d has %d values, want %d", ErrShapeMismatch, t, len(row), n)
		}
	}
	for t, row := range expected {
		if len(row) != n && len(row) != 1 {
			return nil, fmt.Errorf("%w: expected row %d has %d values, want %d or 1", ErrShapeMismatch, t, len(row), n)
		}
	}
	if err := checkNonNegative(observed); err != nil {
		return nil, fmt.Errorf("observed: %w", err)
	}
	for t, row := range simulated {
		if err := checkNonNegative(row); err != nil {
			return nil, fmt.Errorf("replicate %d: %w", t, err)
		}
	}
	for t, row := range expected {
		if err := checkNonNegative(row); err != nil {
			return nil, fmt.Errorf("expected row %d: %w", t, err)
		}
	}

	result := &DiscrepancyResult{
		Simulated: make([]float64, r),
		Observed:  make([]float64, r),
	}
	for t := 0; t < r; t++ {
		e := expected[0]
		if len(expected) > 1 {
			e = expected[t]
		}

		dObs, err := FreemanTukey(observed, e)
		if err != nil {
			return nil, err
		}
		dSim, err := FreemanTukey(simulated[t], e)
		if err != nil {
			return nil, err
		}
		result.Observed[t] = dObs
		result.Simulated[t] = dSim
	}

	p, err := BayesianPValue(result.Simulated, result.Observed)
	if err != nil {
		return nil, err
	}
	result.PValue = p

	return result, nil
}

// BayesianPValue returns the share of draws whose simulated discrepancy
// exceeds the observed one.
func BayesianPValue(simulated, observed []float64) (float64, error) {
	if len(simulated) != len(observed) || len(simulated) == 0 {
		return 0, fmt.Errorf("%w: %d simulated against %d observed discrepancies",
			ErrShapeMismatch, len(simulated), len(observed))
	}
	count := 0
	for t := range simulated {
		if simulated[t] > observed[t] {
			count++
		}
	}
	return float64(count) / float64(len(simulated)), nil
}

func checkNonNegative(values []float64) error {
	for j, v := range values {
		if v < 0 {
			return fmt.Errorf("%w: index %d is %g", ErrNegativeValue, j, v)
		}
	}
	return nil
}
