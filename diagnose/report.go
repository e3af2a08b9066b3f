package diagnose

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sartorproj/gomcdiag/chain"
	"github.com/sartorproj/gomcdiag/stats"
	"gopkg.in/yaml.v3"
)

// Verdict is the outcome of a diagnosis.
type Verdict string

const (
	// Converged means every diagnostic ran and none crossed a threshold.
	Converged Verdict = "converged"
	// NotConverged means at least one diagnostic crossed a threshold.
	NotConverged Verdict = "not_converged"
	// Inconclusive means no threshold was crossed but a diagnostic failed
	// to run.
	Inconclusive Verdict = "inconclusive"

	// Adequate means the Bayesian p-value lies inside the configured band.
	Adequate Verdict = "adequate"
	// Misfit means the model does not reproduce the observed data.
	Misfit Verdict = "misfit"
)

// worse returns the more severe of two verdicts.
func worse(a, b Verdict) Verdict {
	if a == NotConverged || b == NotConverged {
		return NotConverged
	}
	if a == Inconclusive || b == Inconclusive {
		return Inconclusive
	}
	return Converged
}

// ChainReport holds the single-chain diagnostics of one run of a variable.
type ChainReport struct {
	Run          int                       `json:"run" yaml:"run"`
	Summary      *chain.Summary            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Effective    *stats.EffectiveResult    `json:"effective,omitempty" yaml:"effective,omitempty"`
	ACF          []float64                 `json:"acf,omitempty" yaml:"acf,omitempty,flow"`
	LjungBox     *stats.PortmanteauResult  `json:"ljung_box,omitempty" yaml:"ljung_box,omitempty"`
	Geweke       *stats.GewekeResult       `json:"geweke,omitempty" yaml:"geweke,omitempty"`
	RafteryLewis *stats.RafteryLewisResult `json:"raftery_lewis,omitempty" yaml:"raftery_lewis,omitempty"`
	Errors       map[string]string         `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func (c *ChainReport) fail(diagnostic string, err error) {
	if c.Errors == nil {
		c.Errors = make(map[string]string)
	}
	c.Errors[diagnostic] = err.Error()
}

// VariableReport holds every diagnostic computed for one scalar variable.
type VariableReport struct {
	Name        string                   `json:"name" yaml:"name"`
	Chains      []ChainReport            `json:"chains" yaml:"chains"`
	GelmanRubin *stats.GelmanRubinResult `json:"gelman_rubin,omitempty" yaml:"gelman_rubin,omitempty"`
	Errors      map[string]string        `json:"errors,omitempty" yaml:"errors,omitempty"`
	Verdict     Verdict                  `json:"verdict" yaml:"verdict"`
	Reasons     []string                 `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}

// Report is the result of a diagnosis run.
type Report struct {
	RunID     string           `json:"run_id" yaml:"run_id"`
	Created   time.Time        `json:"created" yaml:"created"`
	Runs      int              `json:"runs" yaml:"runs"`
	Spectral  string           `json:"spectral" yaml:"spectral"`
	Variables []VariableReport `json:"variables" yaml:"variables"`
	Verdict   Verdict          `json:"verdict" yaml:"verdict"`
}

// Variable returns the report of the named variable, or nil.
func (r *Report) Variable(name string) *VariableReport {
	for i := range r.Variables {
		if r.Variables[i].Name == name {
			return &r.Variables[i]
		}
	}
	return nil
}

// FitReport is the result of a posterior predictive check.
type FitReport struct {
	RunID       string                   `json:"run_id" yaml:"run_id"`
	Created     time.Time                `json:"created" yaml:"created"`
	Discrepancy *stats.DiscrepancyResult `json:"discrepancy" yaml:"discrepancy"`
	Verdict     Verdict                  `json:"verdict" yaml:"verdict"`
}

// Encode writes v as indented JSON or as YAML.
func Encode(w io.Writer, v any, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
