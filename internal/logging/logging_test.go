package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndRedirect(t *testing.T) {
	Init()
	require.NotNil(t, Diagnostic())

	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("skipping malformed row", "line", 3)

	out := buf.String()
	assert.Contains(t, out, "skipping malformed row")
	assert.Contains(t, out, "line=3")
	assert.Contains(t, out, "WARN")
}

func TestSetLevelFiltersDebug(t *testing.T) {
	Init()
	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden")
	assert.Empty(t, buf.String(), "debug should be filtered at the default level")

	SetLevel(slog.LevelDebug)
	Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	SetLevel(slog.LevelInfo)
}

func TestForService(t *testing.T) {
	Init()
	var buf bytes.Buffer
	SetOutput(&buf)

	logger := ForService("slmlog")
	require.NotNil(t, logger)
	logger.Info("unit mismatch", "expected", "dBA", "got", "dBC")

	out := buf.String()
	assert.Contains(t, out, "service=slmlog")
	assert.Contains(t, out, "expected=dBA")
}

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "analysis.log")

	logger, closeFunc, err := NewFileLogger(logPath, "analysis", slog.LevelInfo)
	require.NoError(t, err)
	require.NotNil(t, logger)
	defer func() { require.NoError(t, closeFunc()) }()

	logger.Info("run complete", "results", 4)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "run complete", entry["msg"])
	assert.Equal(t, "analysis", entry["service"])
	assert.EqualValues(t, 4, entry["results"])
}
