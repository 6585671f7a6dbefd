package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComponent_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev); logger.Store(nil) })

	var buf bytes.Buffer
	InitWithWriter(&buf, slog.LevelInfo, true)

	Component("shard").Info("loaded", "shards", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "shard", rec["component"])
	require.Equal(t, "loaded", rec["msg"])
	require.InDelta(t, 3, rec["shards"], 0)
}

func TestInit_LevelFilters(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev); logger.Store(nil) })

	var buf bytes.Buffer
	InitWithWriter(&buf, slog.LevelWarn, false)

	Component("decode").Info("hidden")
	require.Empty(t, buf.String())

	Component("decode").Warn("shown")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "component=decode")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestDiscard(t *testing.T) {
	require.NotPanics(t, func() { Discard().Error("dropped") })
}
