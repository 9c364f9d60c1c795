package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", FormatAuto, false)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("subdomain", "cardiology").Msg("subdomain loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "cardiology", entry["subdomain"])
	assert.Equal(t, "subdomain loaded", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "DEBUG", FormatConsole, false)
	require.NoError(t, err)

	logger.Debug().Int("topics", 3).Msg("registry built")

	out := buf.String()
	assert.Contains(t, out, "registry built")
	assert.Contains(t, out, "topics=3")
	assert.NotContains(t, out, "\x1b[", "console output without a terminal has no color")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", FormatJSON, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing log level")

	_, err = New(&bytes.Buffer{}, "info", "xml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}
