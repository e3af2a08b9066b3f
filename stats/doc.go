// Package stats provides convergence and goodness-of-fit diagnostics for
// Markov chain Monte Carlo output.
//
// Every function is a pure computation over immutable chains and is safe
// for concurrent use. Preconditions are checked before any work is done and
// failures are reported through the sentinel errors in this package, which
// callers match with errors.Is.
//
// # Single-Chain Diagnostics
//
// Geweke compares early windows of a chain with its final half:
//
//	result, err := stats.Geweke(c, nil) // first=0.1, last=0.5, 20 intervals
//	if result.MaxAbsZ() > 2 {
//	    // early samples look unlike the late ones: discard more burn-in
//	}
//
// Raftery-Lewis estimates the run length needed for a quantile:
//
//	config := stats.DefaultRafteryLewisConfig()
//	config.Q, config.R = 0.975, 0.01
//	rl, err := stats.RafteryLewis(c, config)
//	fmt.Printf("burn-in %d, thin %d, total %d (I=%.2f)\n",
//	    rl.BurnIn, rl.ThinningInterval, rl.TotalIterations, rl.DependenceFactor)
//
// Effective sample size and Monte Carlo standard error:
//
//	eff, err := stats.EffectiveSampleSize(c, nil)
//
// Ljung-Box and Box-Pierce tests tell whether the draws pass for
// independent ones:
//
//	lb, err := stats.LjungBox(c, 10)
//	if lb.PValue < 0.05 {
//	    // serial correlation remains: thin further
//	}
//
// # Multi-Chain Diagnostics
//
// Gelman-Rubin compares between- and within-chain variance:
//
//	results, err := stats.GelmanRubinSet(set)
//	for name, gr := range results {
//	    if gr.RHat > 1.1 {
//	        fmt.Println(name, "has not converged")
//	    }
//	}
//
// # Posterior Predictive Checks
//
// Freeman-Tukey discrepancies and the Bayesian p-value:
//
//	d, err := stats.Discrepancy(observed, replicates, stats.ExpectedShared(expected))
//	if d.PValue < 0.025 || d.PValue > 0.975 {
//	    // the model does not reproduce the data
//	}
//
// # Spectral Density at Zero
//
// Geweke and the effective sample size need the long-run variance of a
// sequence. Three estimators are provided:
//
//	stats.BartlettEstimator{}    // Newey-West, default
//	stats.ARSpectralEstimator{}  // Yule-Walker AR fit, order by AIC
//	stats.BatchMeansEstimator{}  // non-overlapping batch means
//
// # Errors
//
//	errors.Is(err, stats.ErrInvalidArgument)    // bad parameters
//	errors.Is(err, stats.ErrInsufficientData)   // chain too short
//	errors.Is(err, stats.ErrShapeMismatch)      // inconsistent dimensions
//	errors.Is(err, stats.ErrDegenerateVariance) // zero-variance edge case
package stats
