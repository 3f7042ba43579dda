package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got, s)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestFromContext_FallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestContextHelpers checks that WithName and WithKV decorate the scoped logger.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	ctx = WithName(ctx, "monitor")
	ctx = WithKV(ctx, "source", "acpi")

	InfoKV(ctx, "Power query failed", "attempt", 1)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "monitor", entries[0].LoggerName)
	require.Equal(t, "Power query failed", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "acpi", fields["source"])
	require.EqualValues(t, 1, fields["attempt"])
}
