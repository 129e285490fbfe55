// Package logging constructs the structured logger used by the CLIs.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields represents structured logging fields.
type Fields = logrus.Fields

// New creates a JSON-formatted logger with its level taken from the
// SHIELD_LOG_LEVEL environment variable (default info).
func New() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	logger.SetLevel(levelFromEnv())
	return logger
}

func levelFromEnv() logrus.Level {
	switch strings.ToLower(os.Getenv("SHIELD_LOG_LEVEL")) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
