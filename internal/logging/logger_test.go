package logging

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud"))
}

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	require.NoError(t, Initialize(""))
	assert.False(t, GetLogger().Core().Enabled(zapcore.ErrorLevel))
}

func TestInitializeFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	require.NoError(t, Initialize(""))
	core := GetLogger().Core()
	assert.True(t, core.Enabled(zapcore.WarnLevel))
	assert.False(t, core.Enabled(zapcore.InfoLevel))
}

func withObserver(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	prev := logger
	logger = zap.New(core)
	t.Cleanup(func() { logger = prev })
	return logs
}

func TestLogDeviceCommand(t *testing.T) {
	logs := withObserver(t, zapcore.DebugLevel)

	LogDeviceCommand("hid", "Huntsman", "setCustom", nil)
	LogDeviceCommand("hid", "Huntsman", "setKeyRow", errors.New("pipe"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "setKeyRow", entries[1].ContextMap()["command"])
}

func TestLogRawBytesTruncates(t *testing.T) {
	logs := withObserver(t, zapcore.DebugLevel)

	LogRawBytes("report", make([]byte, 300))

	entries := logs.All()
	require.Len(t, entries, 1)
	dump := entries[0].ContextMap()["hex"].(string)
	assert.True(t, strings.HasSuffix(dump, "..."))
	assert.Equal(t, int64(300), entries[0].ContextMap()["length"])
}

func TestLogRawBytesSkippedAboveDebug(t *testing.T) {
	logs := withObserver(t, zapcore.InfoLevel)
	LogRawBytes("report", []byte{1, 2, 3})
	assert.Zero(t, logs.Len())
}
