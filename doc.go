// Package gomcdiag provides convergence and goodness-of-fit diagnostics for
// Markov chain Monte Carlo output.
//
// A sampler run only approximates its target distribution once the chain
// has forgotten its starting point and has been run long enough. gomcdiag
// answers both questions from the samples alone, and checks whether the
// fitted model reproduces the observed data.
//
// # Features
//
//   - Geweke early-versus-late mean comparison
//   - Raftery-Lewis run length, burn-in and thinning for a quantile
//   - Gelman-Rubin potential scale reduction across parallel chains
//   - Freeman-Tukey discrepancy and Bayesian p-value
//   - Spectral density at zero (Bartlett, AR and batch-means estimators)
//   - Effective sample size, Monte Carlo error and Ljung-Box tests
//
// # Quick Start
//
// Diagnose a single chain:
//
//	c, _ := chain.New("theta", samples)
//	gw, _ := stats.Geweke(c, nil)
//	rl, _ := stats.RafteryLewis(c, nil)
//
// Diagnose every variable of several runs loaded from CSV:
//
//	run1, _ := chain.LoadCSV("run1.csv", nil)
//	run2, _ := chain.LoadCSV("run2.csv", nil)
//	set, _ := chain.Collect(run1, run2)
//	report, _ := diagnose.Run(ctx, set, nil, nil)
//
// Or from the command line:
//
//	mcdiag check run1.csv run2.csv
//
// # Packages
//
//   - chain: chain, vector and set containers, CSV trace loading
//   - stats: the diagnostics and spectral estimators
//   - diagnose: configuration, concurrent diagnosis and reports
//   - cmd/mcdiag: command-line interface
//
// # References
//
//   - Geweke, J. (1992). Evaluating the accuracy of sampling-based approaches
//     to the calculation of posterior moments
//   - Raftery, A.E., & Lewis, S.M. (1992). How many iterations in the Gibbs sampler?
//   - Gelman, A., & Rubin, D.B. (1992). Inference from iterative simulation
//     using multiple sequences
//   - Gelman, A., Meng, X.-L., & Stern, H. (1996). Posterior predictive
//     assessment of model fitness via realized discrepancies
package gomcdiag
