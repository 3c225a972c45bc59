package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger. JSON to stdout so log
// shippers can pick it up without extra parsing.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	level := logrus.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	logger.SetLevel(level)

	return logger
}
