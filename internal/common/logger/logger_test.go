package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestZapAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "respond-to-query"})

	log.Info("processing job", map[string]interface{}{"jobKey": int64(42), "cause": errors.New("boom")})
	log.WithError(errors.New("lookup failed")).Warn("retrying", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "processing job", entries[0].Message)
	assert.Equal(t, "respond-to-query", first["taskType"])
	assert.Equal(t, int64(42), first["jobKey"])
	assert.Equal(t, "boom", first["cause"])

	assert.Equal(t, "lookup failed", entries[1].ContextMap()["error"])
}

func TestNew_BadOutputFallsBackToNop(t *testing.T) {
	l := New("info", "json", "/nonexistent-dir/for/sure/log.txt")
	assert.NotNil(t, l)
}
