package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	logger.Debug().Str("scene", "title").Msg("entered")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "title", line["scene"])
	assert.Equal(t, "entered", line["message"])
	assert.Contains(t, line, "time")
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "WARN", Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNew_ConsoleByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Output: &buf})
	require.NoError(t, err)

	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "{")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Options{Format: "xml"})
	assert.Error(t, err)
}
