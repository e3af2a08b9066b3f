// Package diagnose runs the full set of convergence diagnostics over a
// chain.Set and condenses them into a report with a verdict per variable.
//
// # Running a Diagnosis
//
//	set, err := chain.Collect(run1, run2, run3)
//	report, err := diagnose.Run(ctx, set, nil, logger) // nil config: defaults
//	for _, v := range report.Variables {
//	    fmt.Println(v.Name, v.Verdict, v.Reasons)
//	}
//
// Variables are diagnosed concurrently, bounded by Config.Concurrency.
// A diagnostic that cannot run (a chain too short for Raftery-Lewis, say)
// is recorded in the report and makes the verdict inconclusive rather than
// converged.
//
// # Configuration
//
// Config mirrors the per-diagnostic settings of package stats plus the
// thresholds used for verdicts. It loads from YAML; missing fields keep
// their defaults:
//
//	spectral: ar
//	raftery_lewis:
//	  q: 0.975
//	  r: 0.01
//	thresholds:
//	  r_hat: 1.05
//
// # Posterior Predictive Checks
//
//	fit, err := diagnose.Fit(observed, replicates, expected, cfg, logger)
//	if fit.Verdict == diagnose.Misfit { ... }
package diagnose
