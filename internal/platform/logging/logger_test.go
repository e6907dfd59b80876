package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_KeyValueFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core)).Named("espn").With("year", 2023)

	logger.Warn("list events failed", "date", "20230107", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "list events failed", entry.Message)
	assert.Equal(t, "espn", entry.LoggerName)

	fields := entry.ContextMap()
	assert.EqualValues(t, 2023, fields["year"])
	assert.Equal(t, "20230107", fields["date"])
	assert.Equal(t, "boom", fields["error"])
	assert.Contains(t, fields, "dangling")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestDefault_NilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("nothing happens")
	assert.NotNil(t, logger.With("k", "v"))
	assert.NoError(t, logger.Sync())
}
