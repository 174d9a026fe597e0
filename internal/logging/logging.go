// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options controls where and how verbosely the logger writes
type Options struct {
	// Level comes from the config file. SHARPEN_LOG_LEVEL beats it and
	// Override (the --log-level flag) beats both.
	Level    string
	Override string
	// File, when set, receives log output instead of Output. Used by the TUI
	// so log lines don't draw over the alt screen.
	File   string
	Output io.Writer
}

// New returns a configured logger and a function that releases its file, if any
func New(opts Options) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	name := opts.Level
	if env := os.Getenv("SHARPEN_LOG_LEVEL"); env != "" {
		name = env
	}
	if opts.Override != "" {
		name = opts.Override
	}
	level, levelErr := parseLevel(name)
	logger.SetLevel(level)

	closer := func() error { return nil }

	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, err
		}
		logger.SetOutput(f)
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
		closer = f.Close
	case opts.Output != nil:
		logger.SetOutput(opts.Output)
	default:
		logger.SetOutput(os.Stderr)
	}

	if levelErr != nil {
		logger.WithError(levelErr).Warn("unknown log level, using info")
	}
	return logger, closer, nil
}

func parseLevel(s string) (logrus.Level, error) {
	if s == "" {
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return logrus.InfoLevel, err
	}
	return level, nil
}
