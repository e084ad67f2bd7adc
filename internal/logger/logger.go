package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/emilianohg/staffboard/internal/config"
)

// New builds a logger that appends to the staffboard error log.
// The returned closer releases the log file.
func New(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	logPath, err := config.ErrorLogPath()
	if err != nil {
		return nil, nil, err
	}
	if err := config.EnsureDirectories(); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	return NewWithWriter(cfg, f), f, nil
}

// NewWithWriter builds a logger writing to w using the configured level and format.
func NewWithWriter(cfg *config.Config, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	switch cfg.LogLevel {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
