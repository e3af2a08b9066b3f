package main

import (
	"fmt"

	"github.com/sartorproj/gomcdiag/chain"
	"github.com/sartorproj/gomcdiag/diagnose"
	"github.com/spf13/cobra"
)

type discrepancyOptions struct {
	observed  string
	simulated string
	expected  string
}

func newDiscrepancyCmd(opts *options) *cobra.Command {
	disc := &discrepancyOptions{}

	cmd := &cobra.Command{
		Use:   "discrepancy",
		Short: "Posterior predictive check with the Freeman-Tukey discrepancy",
		Long: `Compare observed counts with replicates simulated from posterior draws.

  --observed   n values (one row, or one value per line)
  --simulated  one row of n values per posterior draw
  --expected   one row per draw or a single shared row; each row holds n
               values or a single value used for every observation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscrepancy(cmd, opts, disc)
		},
	}

	cmd.Flags().StringVar(&disc.observed, "observed", "", "CSV file of observed values")
	cmd.Flags().StringVar(&disc.simulated, "simulated", "", "CSV file of simulated replicates")
	cmd.Flags().StringVar(&disc.expected, "expected", "", "CSV file of expected values")
	for _, name := range []string{"observed", "simulated", "expected"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runDiscrepancy(cmd *cobra.Command, opts *options, disc *discrepancyOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	observedRows, err := chain.LoadMatrixCSV(disc.observed)
	if err != nil {
		return fmt.Errorf("load %s: %w", disc.observed, err)
	}
	simulated, err := chain.LoadMatrixCSV(disc.simulated)
	if err != nil {
		return fmt.Errorf("load %s: %w", disc.simulated, err)
	}
	expected, err := chain.LoadMatrixCSV(disc.expected)
	if err != nil {
		return fmt.Errorf("load %s: %w", disc.expected, err)
	}

	var observed []float64
	for _, row := range observedRows {
		observed = append(observed, row...)
	}

	report, err := diagnose.Fit(observed, simulated, expected, cfg, opts.logger)
	if err != nil {
		return err
	}
	return renderFit(cmd.OutOrStdout(), report, opts.format)
}
