// Package logging builds the application logger.
//
// The terminal belongs to the UI while it runs, so log output goes to a file
// or is discarded.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kk-code-lab/regexfu/internal/config"
	"github.com/sirupsen/logrus"
)

// New returns a logger writing to cfg.LogFile at cfg.LogLevel. An empty
// LogFile discards output. The returned closer releases the file.
func New(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	logFile := cfg.LogFile
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if logFile == "" {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}

	if dir := filepath.Dir(logFile); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
