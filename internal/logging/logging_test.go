// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/lmittmann/tint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturedHandler(buf *bytes.Buffer, level slog.Level) slog.Handler {
	return tint.NewHandler(buf, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	})
}

func TestMultiLevelHandlerRoutesByLevel(t *testing.T) {
	var file, console bytes.Buffer

	handler := &MultiLevelHandler{
		fileHandler:    newCapturedHandler(&file, slog.LevelDebug),
		consoleHandler: newCapturedHandler(&console, slog.LevelWarn),
	}
	logger := slog.New(handler)

	logger.Debug("zone cache refreshed")
	logger.Warn("chrony unavailable")

	assert.Contains(t, file.String(), "zone cache refreshed")
	assert.Contains(t, file.String(), "chrony unavailable")
	assert.NotContains(t, console.String(), "zone cache refreshed")
	assert.Contains(t, console.String(), "chrony unavailable")
}

func TestMultiLevelHandlerEnabled(t *testing.T) {
	var file, console bytes.Buffer

	handler := &MultiLevelHandler{
		fileHandler:    newCapturedHandler(&file, slog.LevelInfo),
		consoleHandler: newCapturedHandler(&console, slog.LevelError),
	}

	assert.False(t, handler.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, handler.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, handler.Enabled(t.Context(), slog.LevelError))
}

func TestMultiLevelHandlerWithAttrs(t *testing.T) {
	var file bytes.Buffer

	handler := &MultiLevelHandler{
		fileHandler: newCapturedHandler(&file, slog.LevelDebug),
	}
	logger := slog.New(handler.WithAttrs([]slog.Attr{slog.String("component", "api")}))

	logger.Info("started")

	assert.Contains(t, file.String(), "component=api")
}

func TestSlogWriterRoutesPrefixedLines(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(newCapturedHandler(&buf, slog.LevelDebug)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	w := &slogWriter{}

	n, err := w.Write([]byte("ERROR broker connection lost"))
	require.NoError(t, err)
	assert.Equal(t, len("ERROR broker connection lost"), n)

	_, err = w.Write([]byte("INFO listener ready"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ERR")
	assert.Contains(t, out, "broker connection lost")
	assert.Contains(t, out, "listener ready")
}
