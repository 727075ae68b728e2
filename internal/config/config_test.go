package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "CAMERA_INDEX", "CAMERA_ID", "INGEST_URL", "TRACKER_THRESHOLD", "TRACKER_MAX_AGE_SEC", "REPORT_TIMEOUT_MS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 0, cfg.CameraIndex)
	assert.Equal(t, "camera_1", cfg.CameraID)
	assert.Equal(t, "http://127.0.0.1:8000/api/emotion-detect/", cfg.IngestURL)
	assert.InDelta(t, 100.0, cfg.TrackerThreshold, 0.0001)
	assert.Equal(t, 60*time.Second, cfg.TrackerMaxAge)
	assert.Equal(t, 2*time.Second, cfg.ReportTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CAMERA_INDEX", "2")
	t.Setenv("TRACKER_THRESHOLD", "42.5")
	t.Setenv("INGEST_URL", "")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 2, cfg.CameraIndex)
	assert.InDelta(t, 42.5, cfg.TrackerThreshold, 0.0001)
	assert.Equal(t, "http://127.0.0.1:9090/api/emotion-detect/", cfg.IngestURL)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("CAMERA_INDEX", "front")
	t.Setenv("TRACKER_THRESHOLD", "near")

	cfg := Load()

	assert.Equal(t, 0, cfg.CameraIndex)
	assert.InDelta(t, 100.0, cfg.TrackerThreshold, 0.0001)
}
