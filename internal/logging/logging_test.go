package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn")
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown", "n", 10)
	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "n=10")
	require.NotContains(t, out, "\x1b[", "no color for non-terminal writers")
}

func TestNewDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "")
	require.NoError(t, err)
	log.Debug("dbg")
	log.Info("inf")
	require.NotContains(t, buf.String(), "dbg")
	require.Contains(t, buf.String(), "inf")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	require.Error(t, err)
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
}
