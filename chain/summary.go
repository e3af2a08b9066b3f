package chain

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the marginal posterior summary of one chain.
type Summary struct {
	N      int     `json:"n" yaml:"n"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	Min    float64 `json:"min" yaml:"min"`
	Q025   float64 `json:"q2.5" yaml:"q2.5"`
	Median float64 `json:"median" yaml:"median"`
	Q975   float64 `json:"q97.5" yaml:"q97.5"`
	Max    float64 `json:"max" yaml:"max"`
}

// Summary computes the marginal summary of the chain.
func (c *Chain) Summary() (*Summary, error) {
	data := stats.Float64Data(c.values)

	mean, err := stats.Mean(data)
	if err != nil {
		return nil, err
	}

	std := 0.0
	if len(c.values) > 1 {
		std, err = stats.StandardDeviationSample(data)
		if err != nil {
			return nil, err
		}
	}

	minVal, err := stats.Min(data)
	if err != nil {
		return nil, err
	}

	maxVal, err := stats.Max(data)
	if err != nil {
		return nil, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return nil, err
	}

	// stats.Percentile fails when a tail holds less than one sample.
	sorted := c.Values()
	sort.Float64s(sorted)
	q025 := stat.Quantile(0.025, stat.Empirical, sorted, nil)
	q975 := stat.Quantile(0.975, stat.Empirical, sorted, nil)

	return &Summary{
		N:      len(c.values),
		Mean:   mean,
		Std:    std,
		Min:    minVal,
		Q025:   q025,
		Median: median,
		Q975:   q975,
		Max:    maxVal,
	}, nil
}
