package diagnose

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sartorproj/gomcdiag/chain"
	"github.com/sartorproj/gomcdiag/stats"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Diagnostic names used as keys of the Errors maps in a report.
const (
	DiagSummary      = "summary"
	DiagEffective    = "effective"
	DiagLjungBox     = "ljung_box"
	DiagGeweke       = "geweke"
	DiagRafteryLewis = "raftery_lewis"
	DiagGelmanRubin  = "gelman_rubin"
)

// Run diagnoses every variable of the set: summary, ESS, ACF with a
// Ljung-Box test, Geweke and Raftery-Lewis for each run, and Gelman-Rubin
// across runs when the set holds at least two. Variables are diagnosed
// concurrently.
//
// A diagnostic that fails is recorded in the report and never counts as
// converged. Run itself fails only for an invalid configuration or a
// cancelled context. A nil config uses DefaultConfig; a nil logger
// disables logging.
func Run(ctx context.Context, set *chain.Set, config *Config, logger *zap.Logger) (*Report, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	est, err := stats.NewSpectralEstimator(config.Spectral)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     uuid.NewString(),
		Created:   time.Now().UTC(),
		Spectral:  config.Spectral,
		Variables: make([]VariableReport, set.Len()),
	}
	logger = logger.With(zap.String("run_id", report.RunID))

	names := set.Variables()
	logger.Info("diagnosing chains",
		zap.Int("variables", len(names)),
		zap.String("spectral", config.Spectral),
		zap.Int("concurrency", config.Concurrency))

	runs := make([][]*chain.Chain, len(names))
	for i, name := range names {
		if runs[i], err = set.Chains(name); err != nil {
			return nil, err
		}
		report.Runs = max(report.Runs, len(runs[i]))
	}

	g, gCtx := errgroup.WithContext(ctx)
	if config.Concurrency > 0 {
		g.SetLimit(config.Concurrency)
	}

	d := &diagnoser{config: config, estimator: est, logger: logger}
	for i, name := range names {
		g.Go(func() error {
			vr, err := d.variable(gCtx, name, runs[i])
			if err != nil {
				return err
			}
			report.Variables[i] = *vr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Warn("diagnosis interrupted", zap.Error(err))
		return nil, err
	}

	report.Verdict = Converged
	for _, vr := range report.Variables {
		report.Verdict = worse(report.Verdict, vr.Verdict)
	}

	logger.Info("diagnosis complete", zap.String("verdict", string(report.Verdict)))
	return report, nil
}

type diagnoser struct {
	config    *Config
	estimator stats.SpectralEstimator
	logger    *zap.Logger
}

// variable runs every diagnostic for one variable. It returns an error only
// when ctx is cancelled.
func (d *diagnoser) variable(ctx context.Context, name string, chains []*chain.Chain) (*VariableReport, error) {
	logger := d.logger.With(zap.String("variable", name))
	logger.Debug("diagnosing variable", zap.Int("chains", len(chains)))

	vr := &VariableReport{
		Name:   name,
		Chains: make([]ChainReport, len(chains)),
	}

	gewekeConfig := d.config.Geweke
	gewekeConfig.Estimator = d.estimator
	rlConfig := d.config.RafteryLewis

	for j, c := range chains {
		cr := &vr.Chains[j]
		cr.Run = j

		if summary, err := c.Summary(); err != nil {
			cr.fail(DiagSummary, err)
		} else {
			cr.Summary = summary
		}

		if d.config.ACFLags > 0 {
			cr.ACF = stats.ACF(c, d.config.ACFLags)
			if lb, err := stats.LjungBox(c, d.config.ACFLags); err != nil {
				cr.fail(DiagLjungBox, err)
			} else {
				cr.LjungBox = lb
			}
		}

		if eff, err := stats.EffectiveSampleSize(c, d.estimator); err != nil {
			cr.fail(DiagEffective, err)
		} else {
			cr.Effective = eff
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if gw, err := stats.Geweke(c, &gewekeConfig); err != nil {
			cr.fail(DiagGeweke, err)
		} else {
			cr.Geweke = gw
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if rl, err := stats.RafteryLewis(c, &rlConfig); err != nil {
			cr.fail(DiagRafteryLewis, err)
		} else {
			cr.RafteryLewis = rl
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for diag, msg := range cr.Errors {
			logger.Warn("diagnostic failed",
				zap.Int("run", j), zap.String("diagnostic", diag), zap.String("error", msg))
		}
	}

	if len(chains) >= 2 {
		if gr, err := stats.GelmanRubin(chains); err != nil {
			vr.Errors = map[string]string{DiagGelmanRubin: err.Error()}
			logger.Warn("diagnostic failed", zap.String("diagnostic", DiagGelmanRubin), zap.Error(err))
		} else {
			vr.GelmanRubin = gr
		}
	}

	vr.Verdict, vr.Reasons = judge(vr, d.config.Thresholds)
	logger.Debug("variable diagnosed", zap.String("verdict", string(vr.Verdict)), zap.Strings("reasons", vr.Reasons))
	return vr, nil
}

// judge applies the thresholds to a variable report.
func judge(vr *VariableReport, t Thresholds) (Verdict, []string) {
	var reasons []string
	failed := len(vr.Errors) > 0

	if gr := vr.GelmanRubin; gr != nil && gr.RHat > t.RHat {
		reasons = append(reasons, fmt.Sprintf("r-hat %.4f exceeds %g", gr.RHat, t.RHat))
	}

	var firstZ []float64
	for _, cr := range vr.Chains {
		if len(cr.Errors) > 0 {
			failed = true
		}
		if cr.Geweke != nil && len(cr.Geweke.Scores) > 0 {
			firstZ = append(firstZ, math.Abs(cr.Geweke.Scores[0].ZScore))
		}
		if cr.Effective != nil && cr.Effective.ESS < t.MinESS {
			reasons = append(reasons, fmt.Sprintf("run %d: effective sample size %.1f below %g",
				cr.Run, cr.Effective.ESS, t.MinESS))
		}
		if rl := cr.RafteryLewis; rl != nil && cr.Summary != nil && rl.TotalIterations > cr.Summary.N {
			reasons = append(reasons, fmt.Sprintf("run %d: raftery-lewis needs %d iterations, have %d",
				cr.Run, rl.TotalIterations, cr.Summary.N))
		}
	}
	if len(firstZ) > 0 {
		if worst := floats.Max(firstZ); worst > t.GewekeZ {
			reasons = append(reasons, fmt.Sprintf("geweke |z| %.3f exceeds %g", worst, t.GewekeZ))
		}
	}

	switch {
	case len(reasons) > 0:
		return NotConverged, reasons
	case failed:
		return Inconclusive, nil
	default:
		return Converged, nil
	}
}

// Fit runs a Freeman-Tukey posterior predictive check and judges the
// Bayesian p-value against the configured band.
func Fit(observed []float64, simulated, expected [][]float64, config *Config, logger *zap.Logger) (*FitReport, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	result, err := stats.Discrepancy(observed, simulated, expected)
	if err != nil {
		return nil, err
	}

	report := &FitReport{
		RunID:       uuid.NewString(),
		Created:     time.Now().UTC(),
		Discrepancy: result,
		Verdict:     Adequate,
	}
	t := config.Thresholds
	if result.PValue < t.PValueLow || result.PValue > t.PValueHigh {
		report.Verdict = Misfit
	}

	logger.Info("posterior predictive check",
		zap.String("run_id", report.RunID),
		zap.Int("observations", len(observed)),
		zap.Int("draws", len(simulated)),
		zap.Float64("p_value", result.PValue),
		zap.String("verdict", string(report.Verdict)))
	return report, nil
}
