package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Error, ParseLevel(" error "))
	assert.Equal(t, Info, ParseLevel("verbose"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("logfmt"))
}

func TestZapLogger_WithMergesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core)).With(map[string]any{"component": "deploy"})

	l.Info("sync done", map[string]any{"took_ms": 12, "": "ignored"})

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "sync done", entries[0].Message)
	assert.Equal(t, "deploy", ctx["component"])
	assert.EqualValues(t, 12, ctx["took_ms"])
	assert.NotContains(t, ctx, "")
}

func TestNew_BuildsBothFormats(t *testing.T) {
	for _, f := range []Format{FormatText, FormatJSON} {
		l, err := New(Options{Level: Warn, Format: f, App: "bear-tracker"})
		require.NoError(t, err)
		l.Debug("hidden", nil)
	}
}
