package stats

import (
	"fmt"
	"math"

	"github.com/sartorproj/gomcdiag/chain"
	"gonum.org/v1/gonum/stat"
)

// GewekeConfig holds the window layout of a Geweke diagnostic.
type GewekeConfig struct {
	First     float64           `yaml:"first" json:"first"`         // Early window fraction (default: 0.1)
	Last      float64           `yaml:"last" json:"last"`           // Late window fraction (default: 0.5)
	Intervals int               `yaml:"intervals" json:"intervals"` // Number of early windows (default: 20)
	Estimator SpectralEstimator `yaml:"-" json:"-"`                 // Spectral estimator (default: Bartlett)
}

// DefaultGewekeConfig returns the default Geweke configuration.
func DefaultGewekeConfig() *GewekeConfig {
	return &GewekeConfig{
		First:     0.1,
		Last:      0.5,
		Intervals: 20,
		Estimator: BartlettEstimator{},
	}
}

// GewekeScore is the z-score of one early window against the late window.
type GewekeScore struct {
	Start         int     `json:"start" yaml:"start"`
	StartFraction float64 `json:"start_fraction" yaml:"start_fraction"`
	ZScore        float64 `json:"z" yaml:"z"`
}

// GewekeResult represents the result of a Geweke diagnostic.
type GewekeResult struct {
	Scores      []GewekeScore `json:"scores" yaml:"scores"`
	EarlyLength int           `json:"early_length" yaml:"early_length"`
	LateLength  int           `json:"late_length" yaml:"late_length"`
}

// MaxAbsZ returns the largest |z| across all windows.
func (r *GewekeResult) MaxAbsZ() float64 {
	m := 0.0
	for _, s := range r.Scores {
		m = math.Max(m, math.Abs(s.ZScore))
	}
	return m
}

// Geweke compares the mean of early windows of the chain with the mean of
// its final segment. Under stationarity each z-score is asymptotically
// standard normal; scores beyond ±2 suggest the early part was not yet
// drawn from the stationary distribution.
//
// Early windows hold floor(First*n) samples and start at evenly spaced
// offsets such that each lies within the first (1-Last) of the chain. The
// late window is the final floor(Last*n) samples. Each score is
//
//	z = (mean_a - mean_b) / sqrt(S_a(0)/n_a + S_b(0)/n_b)
//
// where S(0) is the spectral density at zero of the window.
func Geweke(c *chain.Chain, config *GewekeConfig) (*GewekeResult, error) {
	if config == nil {
		config = DefaultGewekeConfig()
	}
	est := config.Estimator
	if est == nil {
		est = BartlettEstimator{}
	}

	if !(config.First > 0 && config.First < 1) || !(config.Last > 0 && config.Last < 1) {
		return nil, fmt.Errorf("%w: first=%g last=%g must lie in (0, 1)", ErrInvalidWindow, config.First, config.Last)
	}
	if config.First+config.Last >= 1 {
		return nil, fmt.Errorf("%w: first+last=%g must be below 1", ErrInvalidWindow, config.First+config.Last)
	}
	if config.Intervals < 1 {
		return nil, fmt.Errorf("%w: intervals=%d must be at least 1", ErrInvalidWindow, config.Intervals)
	}

	n := c.Len()
	earlyLen := int(math.Floor(config.First * float64(n)))
	lateLen := int(math.Floor(config.Last * float64(n)))
	if earlyLen < est.MinLength() || lateLen < est.MinLength() {
		return nil, fmt.Errorf("%w: windows of %d and %d samples, estimator needs %d",
			ErrInvalidWindow, earlyLen, lateLen, est.MinLength())
	}

	late, err := c.Segment(chain.SegmentSpec{Start: n - lateLen, Length: lateLen})
	if err != nil {
		return nil, err
	}
	lateMean := stat.Mean(late, nil)
	lateS0, err := est.Estimate(late)
	if err != nil {
		return nil, err
	}
	lateVar := lateS0 / float64(lateLen)

	span := int(math.Floor((1-config.Last)*float64(n))) - earlyLen
	if span < 0 {
		span = 0
	}

	result := &GewekeResult{
		Scores:      make([]GewekeScore, 0, config.Intervals),
		EarlyLength: earlyLen,
		LateLength:  lateLen,
	}

	for i := 0; i < config.Intervals; i++ {
		start := 0
		if config.Intervals > 1 {
			start = i * span / (config.Intervals - 1)
		}

		early, err := c.Segment(chain.SegmentSpec{Start: start, Length: earlyLen})
		if err != nil {
			return nil, err
		}
		earlyS0, err := est.Estimate(early)
		if err != nil {
			return nil, err
		}

		denom := math.Sqrt(earlyS0/float64(earlyLen) + lateVar)
		if denom == 0 {
			return nil, fmt.Errorf("%w: both windows are constant at offset %d", ErrDegenerateVariance, start)
		}

		result.Scores = append(result.Scores, GewekeScore{
			Start:         start,
			StartFraction: float64(start) / float64(n),
			ZScore:        (stat.Mean(early, nil) - lateMean) / denom,
		})
	}

	return result, nil
}
