package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sartorproj/gomcdiag/diagnose"
)

// render writes a diagnosis report in the requested format.
func render(w io.Writer, report *diagnose.Report, format string) error {
	if format != "text" {
		return diagnose.Encode(w, report, format)
	}

	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "%s\nMCMC diagnostics  run %s\n%d run(s), spectral estimator: %s\n%s\n",
		rule, report.RunID, report.Runs, report.Spectral, rule)

	for _, vr := range report.Variables {
		fmt.Fprintf(w, "\n%s  [%s]\n", vr.Name, vr.Verdict)
		if gr := vr.GelmanRubin; gr != nil {
			fmt.Fprintf(w, "   Gelman-Rubin: R-hat=%.4f (B=%.4g, W=%.4g)\n", gr.RHat, gr.B, gr.W)
		}
		for _, cr := range vr.Chains {
			fmt.Fprintf(w, "   run %d:", cr.Run)
			if s := cr.Summary; s != nil {
				fmt.Fprintf(w, " n=%d mean=%.4g sd=%.4g 95%%=[%.4g, %.4g]", s.N, s.Mean, s.Std, s.Q025, s.Q975)
			}
			if e := cr.Effective; e != nil {
				fmt.Fprintf(w, " ESS=%.1f MCSE=%.4g", e.ESS, e.MCSE)
			}
			fmt.Fprintln(w)
			if lb := cr.LjungBox; lb != nil {
				fmt.Fprintf(w, "      Ljung-Box: Q(%d)=%.2f p=%.4f\n", lb.Lags, lb.Statistic, lb.PValue)
			}
			if g := cr.Geweke; g != nil && len(g.Scores) > 0 {
				fmt.Fprintf(w, "      Geweke: z=%.3f (max |z| %.3f over %d windows)\n",
					g.Scores[0].ZScore, g.MaxAbsZ(), len(g.Scores))
			}
			if rl := cr.RafteryLewis; rl != nil {
				fmt.Fprintf(w, "      Raftery-Lewis: burn-in=%d thin=%d total=%d I=%.2f\n",
					rl.BurnIn, rl.ThinningInterval, rl.TotalIterations, rl.DependenceFactor)
			}
			writeErrors(w, "      ", cr.Errors)
		}
		writeErrors(w, "   ", vr.Errors)
		for _, reason := range vr.Reasons {
			fmt.Fprintf(w, "   ! %s\n", reason)
		}
	}

	fmt.Fprintf(w, "\n%s\nVerdict: %s\n", rule, report.Verdict)
	return nil
}

// renderFit writes a posterior predictive check in the requested format.
func renderFit(w io.Writer, report *diagnose.FitReport, format string) error {
	if format != "text" {
		return diagnose.Encode(w, report, format)
	}

	d := report.Discrepancy
	fmt.Fprintf(w, "Freeman-Tukey discrepancy over %d draws\n", len(d.Simulated))
	for t := range d.Simulated {
		fmt.Fprintf(w, "   %4d  observed=%.4f  simulated=%.4f\n", t, d.Observed[t], d.Simulated[t])
	}
	fmt.Fprintf(w, "Bayesian p-value: %.4f [%s]\n", d.PValue, report.Verdict)
	return nil
}

func writeErrors(w io.Writer, indent string, errs map[string]string) {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s%s failed: %s\n", indent, name, errs[name])
	}
}
