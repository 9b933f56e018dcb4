package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestSetup_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer

	logger, closers, err := setup("warn", "", &console)
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Info("hidden")
	logger.Warn("shown", "n", 1)

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "msg=shown n=1")
}

func TestSetup_FileAndErrorEcho(t *testing.T) {
	var console bytes.Buffer

	path := filepath.Join(t.TempDir(), "gen.log")

	logger, closers, err := setup("debug", path, &console)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("details")
	logger.Error("broken")

	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), "msg=details")
	assert.Contains(t, string(data), "msg=broken")
	assert.NotContains(t, console.String(), "details")
	assert.Contains(t, console.String(), "msg=broken")
}

func TestLogf_TraceOnly(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	Logf(logger)("loaded %d packages", 3)
	assert.Contains(t, buf.String(), `msg="loaded 3 packages"`)

	buf.Reset()

	quiet := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	Logf(quiet)("dropped")
	assert.Empty(t, buf.String())
}
