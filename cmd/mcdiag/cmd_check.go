package main

import (
	"fmt"

	"github.com/sartorproj/gomcdiag/chain"
	"github.com/sartorproj/gomcdiag/diagnose"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type checkOptions struct {
	columns   []string
	skipRows  int
	delimiter string
	strict    bool
}

func newCheckCmd(opts *options) *cobra.Command {
	check := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check run1.csv [run2.csv ...]",
		Short: "Diagnose convergence of one or more sampler runs",
		Long: `Load one trace file per run and diagnose every variable the runs have in
common: summary, effective sample size, autocorrelation, Geweke and
Raftery-Lewis per run, and Gelman-Rubin across runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, check, args)
		},
	}

	cmd.Flags().StringSliceVar(&check.columns, "columns", nil, "Variables to diagnose (default: all)")
	cmd.Flags().IntVar(&check.skipRows, "skip-rows", 0, "Rows to skip before the header")
	cmd.Flags().StringVar(&check.delimiter, "delimiter", ",", "Field delimiter")
	cmd.Flags().BoolVar(&check.strict, "strict", false, "Exit with an error unless every variable converged")
	return cmd
}

func runCheck(cmd *cobra.Command, opts *options, check *checkOptions, files []string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	csvOpts := chain.DefaultCSVOptions()
	csvOpts.Columns = check.columns
	csvOpts.SkipRows = check.skipRows
	delim := []rune(check.delimiter)
	if len(delim) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", check.delimiter)
	}
	csvOpts.Delimiter = delim[0]

	runs := make([]chain.Source, 0, len(files))
	for _, file := range files {
		trace, err := chain.LoadCSV(file, csvOpts)
		if err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
		opts.logger.Info("loaded trace",
			zap.String("file", file),
			zap.Int("samples", trace.Len()),
			zap.Strings("variables", trace.Variables()))
		runs = append(runs, trace)
	}

	set, err := chain.Collect(runs...)
	if err != nil {
		return err
	}
	if set.Len() == 0 {
		return fmt.Errorf("no variable is present in all %d runs", len(files))
	}

	report, err := diagnose.Run(cmd.Context(), set, cfg, opts.logger)
	if err != nil {
		return err
	}

	if err := render(cmd.OutOrStdout(), report, opts.format); err != nil {
		return err
	}
	if check.strict && report.Verdict != diagnose.Converged {
		return fmt.Errorf("verdict: %s", report.Verdict)
	}
	return nil
}
