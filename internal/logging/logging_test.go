package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, false)
	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "WARN")
}

func TestNewWriterDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, true)
	log.Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestNew(t *testing.T) {
	log, err := New(true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(-1))

	log, err = New(false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(0))
}
