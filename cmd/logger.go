package cmd

import (
	"github.com/sirupsen/logrus"
)

// newLogger returns the shared logger, raised to DebugLevel when verbose is true.
func newLogger(verbose bool) *logrus.Logger {
	if Logger == nil {
		InitLogger()
	}

	if verbose {
		Logger.SetLevel(logrus.DebugLevel)
	}

	return Logger
}
