package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, slog.LevelInfo)
	logger.Error("lookup failed", "error", errors.New("boom"))
	logger.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["err"])
	assert.NotContains(t, line, "error")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFormat(t *testing.T) {
	_, err := NewFormat("json", slog.LevelInfo)
	assert.NoError(t, err)
	_, err = NewFormat("xml", slog.LevelInfo)
	assert.Error(t, err)
}
