package main

import (
	"fmt"

	"github.com/sartorproj/gomcdiag/diagnose"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options holds the flags shared by all commands.
type options struct {
	verbosity  int
	configFile string
	format     string
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "mcdiag",
		Short: "Convergence and goodness-of-fit diagnostics for MCMC output",
		Long: `mcdiag reads sampler traces from CSV files, one file per run, and
reports Geweke, Raftery-Lewis and Gelman-Rubin diagnostics together with
effective sample sizes and posterior predictive p-values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := initializeLogger(opts.verbosity)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v",
		"Increase log verbosity (-v development logs, -vv debug)")
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"YAML configuration file (defaults apply to missing fields)")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "text",
		"Output format: text, json or yaml")

	rootCmd.AddCommand(
		newCheckCmd(opts),
		newDiscrepancyCmd(opts),
		newConfigCmd(opts),
	)
	return rootCmd
}

// loadConfig returns the configuration named by --config, or the defaults.
func (o *options) loadConfig() (*diagnose.Config, error) {
	if o.configFile == "" {
		return diagnose.DefaultConfig(), nil
	}
	return diagnose.LoadConfig(o.configFile)
}
