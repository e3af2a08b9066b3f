package diagnose

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sartorproj/gomcdiag/stats"
	"gopkg.in/yaml.v3"
)

// Thresholds decide when a diagnostic value counts as a convergence failure.
type Thresholds struct {
	GewekeZ    float64 `yaml:"geweke_z" json:"geweke_z"`       // Max |z| of the first window (default: 2)
	RHat       float64 `yaml:"r_hat" json:"r_hat"`             // Max potential scale reduction (default: 1.1)
	MinESS     float64 `yaml:"min_ess" json:"min_ess"`         // Min effective sample size per chain (default: 100)
	PValueLow  float64 `yaml:"p_value_low" json:"p_value_low"` // Bayesian p-value band (default: 0.025..0.975)
	PValueHigh float64 `yaml:"p_value_high" json:"p_value_high"`
}

// Config holds configuration for a diagnosis run.
type Config struct {
	Geweke       stats.GewekeConfig       `yaml:"geweke" json:"geweke"`
	RafteryLewis stats.RafteryLewisConfig `yaml:"raftery_lewis" json:"raftery_lewis"`
	Spectral     string                   `yaml:"spectral" json:"spectral"`       // "bartlett", "ar" or "batch" (default: "bartlett")
	ACFLags      int                      `yaml:"acf_lags" json:"acf_lags"`       // Autocorrelation and Ljung-Box lags per chain, 0 disables (default: 10)
	Concurrency  int                      `yaml:"concurrency" json:"concurrency"` // Variables diagnosed in parallel (default: GOMAXPROCS)
	Thresholds   Thresholds               `yaml:"thresholds" json:"thresholds"`
}

// DefaultConfig returns the default diagnosis configuration.
func DefaultConfig() *Config {
	return &Config{
		Geweke:       *stats.DefaultGewekeConfig(),
		RafteryLewis: *stats.DefaultRafteryLewisConfig(),
		Spectral:     "bartlett",
		ACFLags:      10,
		Concurrency:  runtime.GOMAXPROCS(0),
		Thresholds: Thresholds{
			GewekeZ:    2,
			RHat:       1.1,
			MinESS:     100,
			PValueLow:  0.025,
			PValueHigh: 0.975,
		},
	}
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over the default configuration and validates
// the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that are not validated by the diagnostics
// themselves.
func (c *Config) Validate() error {
	if _, err := stats.NewSpectralEstimator(c.Spectral); err != nil {
		return err
	}
	if c.ACFLags < 0 {
		return fmt.Errorf("%w: acf_lags=%d", stats.ErrInvalidArgument, c.ACFLags)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency=%d", stats.ErrInvalidArgument, c.Concurrency)
	}
	t := c.Thresholds
	if t.GewekeZ <= 0 || t.RHat < 1 || t.MinESS < 0 {
		return fmt.Errorf("%w: thresholds geweke_z=%g r_hat=%g min_ess=%g",
			stats.ErrInvalidArgument, t.GewekeZ, t.RHat, t.MinESS)
	}
	if !(t.PValueLow >= 0 && t.PValueLow < t.PValueHigh && t.PValueHigh <= 1) {
		return fmt.Errorf("%w: p-value band [%g, %g]", stats.ErrInvalidArgument, t.PValueLow, t.PValueHigh)
	}
	return nil
}

// YAML returns the configuration encoded as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
