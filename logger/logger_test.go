package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/capfloor/config"
	"github.com/meenmo/capfloor/logger"
)

func TestNew_JSONLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := config.DefaultConfig
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	log := logger.New(cfg, &buf)
	log.Info().Msg("hidden")
	log.Warn().Str("trade", "cap-1").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "cap-1", entry["trade"])
	assert.Equal(t, "shown", entry["message"])
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel("warning"))
	assert.Equal(t, zerolog.Disabled, logger.ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("bogus"))
}
