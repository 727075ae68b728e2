package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/Ayesha0000000/local-camera-stream/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	log.WithFields(Fields{"camera": "camera_1"}).Warning("queue full for %s", "person_3")

	out := buf.String()
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, "queue full for person_3")
	assert.Contains(t, out, "camera=camera_1")
}

func TestNewLogger_CreatesFileAndCleans(t *testing.T) {
	cfg := &config.Config{LogDirectory: t.TempDir()}

	log, err := NewLogger(cfg)
	require.NoError(t, err)

	log.Info("hello %d", 1)
	_, err = os.Stat(log.Path())
	require.NoError(t, err)

	require.NoError(t, log.CleanLogs())
}

func TestDiscard_NoFile(t *testing.T) {
	log := Discard()
	assert.Empty(t, log.Path())
	assert.NoError(t, log.CleanLogs())
}
