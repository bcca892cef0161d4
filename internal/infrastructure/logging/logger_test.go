package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/ateema-proposal-engine/internal/infrastructure/config"
)

func TestMavenHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithSystem(&buf, config.LoggingConfig{Level: "info"}, "allocator")

	logger.Info("pool allocated", "pool", "tourist", "subtotal", 26995.5)

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "[INFO] [allocator] ["), line)
	assert.Contains(t, line, "pool allocated pool=tourist subtotal=26995.5")
	assert.NotContains(t, line, "system=")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestMavenHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggingConfig{Level: "warn"})

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN]")
}

func TestMavenHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggingConfig{}).WithGroup("request")

	logger.Info("handled", "status", 200)

	assert.Contains(t, buf.String(), "request.status=200")
}

func TestMavenHandler_Values(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggingConfig{})

	logger.Info("line priced",
		"product", "Summit Booth",
		"option", "Booth",
		"total", decimal.RequireFromString("1500"),
		"note", "",
		slog.Group("pool", "name", "tourist", "budget", 3000),
	)

	line := buf.String()
	assert.Contains(t, line, `product="Summit Booth"`)
	assert.Contains(t, line, "option=Booth")
	assert.Contains(t, line, "total=1500.00")
	assert.Contains(t, line, `note=""`)
	assert.Contains(t, line, "pool.name=tourist pool.budget=3000")
}

func TestMavenHandler_GroupsBindAtAttachTime(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggingConfig{}).
		With("proposal", "p1").
		WithGroup("pool").
		With("name", "industry")

	logger.Info("allocated", "upgrades", 2)

	line := buf.String()
	assert.Contains(t, line, "proposal=p1 pool.name=industry pool.upgrades=2")
	assert.NotContains(t, line, "pool.proposal")
}

func TestNewLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggingConfig{Level: "debug", Format: "json"})

	logger.Debug("proposal generated", "id", "abc")

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "proposal generated", rec["msg"])
	assert.Equal(t, "abc", rec["id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
