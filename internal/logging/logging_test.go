package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_PlainLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false)

	logger.Debug("hidden")
	logger.Info("listed lights", slog.Int("count", 3))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INF listed lights count=3")
	assert.NotContains(t, out, "\x1b[", "file output must not carry ANSI escapes")
}

func TestNewWithWriter_Debug(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, true).Debug("bridge_request", slog.String("method", "GET"))
	assert.Contains(t, buf.String(), "DBG bridge_request method=GET")
}

func TestNew_CreatesFileAndDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "lumen", "lumen.log")

	logger, closer, err := New(Options{Path: path})
	require.NoError(t, err)
	logger.Warn("flush failed", slog.String("light", "3"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "WRN flush failed light=3"), "log = %q", data)
}

func TestNew_RotatesLargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.log")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), maxFileSize), 0o644))

	_, closer, err := New(Options{Path: path})
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
	_, err = os.Stat(path + ".1")
	assert.NoError(t, err)
}

func TestNew_EmptyPath(t *testing.T) {
	_, _, err := New(Options{})
	assert.Error(t, err)
}

func TestNewConsole_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(&buf, false)
	logger.Debug("hidden")
	logger.Info("paired with bridge", slog.String("host", "192.168.1.2"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "paired with bridge")
	assert.Contains(t, out, "192.168.1.2")
}
