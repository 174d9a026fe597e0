package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToOutput(t *testing.T) {
	t.Setenv("SHARPEN_LOG_LEVEL", "")

	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWritesToFile(t *testing.T) {
	t.Setenv("SHARPEN_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "logs", "sharpen.log")

	logger, closeFn, err := New(Options{File: path})
	require.NoError(t, err)

	logger.Info("to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("SHARPEN_LOG_LEVEL", "DEBUG")

	logger, _, err := New(Options{Level: "error", Output: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestLevelPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		level    string
		override string
		want     logrus.Level
	}{
		{"config only", "", "error", "", logrus.ErrorLevel},
		{"env beats config", "debug", "error", "", logrus.DebugLevel},
		{"flag beats env", "debug", "error", "warn", logrus.WarnLevel},
		{"flag without env", "", "error", "trace", logrus.TraceLevel},
		{"nothing set", "", "", "", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHARPEN_LOG_LEVEL", tt.env)

			logger, _, err := New(Options{Level: tt.level, Override: tt.override, Output: &bytes.Buffer{}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestUnknownLevelIsReported(t *testing.T) {
	t.Setenv("SHARPEN_LOG_LEVEL", "")

	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "loud", Output: &buf})
	require.NoError(t, err)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
	assert.Contains(t, buf.String(), "loud")
}

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, level)

	level, err = parseLevel(" ERROR ")
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, level)

	level, err = parseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, logrus.InfoLevel, level)
}
