package testutils

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogCapture(t *testing.T) {
	t.Parallel()

	h, log := NewLogCapture()
	log.With("component", "test").Warn("first", "n", 1)
	log.Info("second")

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, slog.LevelWarn, entries[0].Level)
	assert.Equal(t, "test", entries[0].Attrs["component"])
	assert.EqualValues(t, 1, entries[0].Attrs["n"])

	entry, ok := h.Find("second")
	require.True(t, ok)
	assert.NotContains(t, entry.Attrs, "component")

	_, ok = h.Find("missing")
	assert.False(t, ok)
}
