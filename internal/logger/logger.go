// Package logger builds the process logger
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to stderr at level. An unknown level
// falls back to info.
func New(level string) *logrus.Logger {
	logLvl, err := logrus.ParseLevel(level)
	if err != nil {
		logLvl = logrus.InfoLevel
	}
	return &logrus.Logger{
		Out:       os.Stderr,
		Formatter: &logrus.TextFormatter{FullTimestamp: true},
		Hooks:     make(logrus.LevelHooks),
		Level:     logLvl,
	}
}
