package main

import (
	"go.uber.org/zap"
)

// initializeLogger builds a zap logger for the given verbosity. Logs go to
// stderr so that reports on stdout stay machine-readable.
func initializeLogger(verbosity int) (*zap.Logger, error) {
	var zapConfig zap.Config

	switch verbosity {
	case 0:
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level.SetLevel(zap.WarnLevel)
	case 1:
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level.SetLevel(zap.InfoLevel)
	default: // 2+
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level.SetLevel(zap.DebugLevel)
	}

	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	zapConfig.InitialFields = map[string]interface{}{
		"service": "mcdiag",
	}

	return zapConfig.Build()
}
